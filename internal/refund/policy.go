// Package refund implements the cancellation refund policy as a pure
// function of lead time before check-in.
package refund

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staywell/reservation-service/internal/models"
)

var partialRate = decimal.RequireFromString("0.80")

// Amount returns the refundable share of total for a cancellation happening
// at now: 7+ days before check-in refunds everything, 1-6 days refunds 80%,
// same-day or later refunds nothing.
func Amount(total decimal.Decimal, checkIn, now time.Time) decimal.Decimal {
	days := DaysUntil(checkIn, now)
	switch {
	case days >= 7:
		return total
	case days >= 1:
		return total.Mul(partialRate).Round(2)
	default:
		return decimal.Zero
	}
}

// DaysUntil counts whole calendar days from now's date to checkIn's date.
func DaysUntil(checkIn, now time.Time) int {
	return int(models.DateOnly(checkIn).Sub(models.DateOnly(now)).Hours() / 24)
}
