// Package pricing computes the total cost of a stay. All arithmetic is
// fixed-point via shopspring/decimal; the weekend-surcharge division is the
// only intermediate rounding point, everything else rounds once at the end.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	peakSummer  = decimal.RequireFromString("1.20") // July, August
	peakHoliday = decimal.RequireFromString("1.15") // December, January
	weekendRate = decimal.RequireFromString("0.10")
	taxRate     = decimal.RequireFromString("0.06")
	one         = decimal.NewFromInt(1)
)

// CalculateTotalPrice prices a stay at the given nightly base rate.
// Deterministic and side-effect free:
//
//	base     = rate x nights
//	seasonal = base x multiplier(check-in month)
//	weekend  = seasonal x 0.10 x (fri/sat nights / nights), rounded 2dp half-up
//	total    = (seasonal + weekend) x 1.06, rounded 2dp
func CalculateTotalPrice(baseRate decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights <= 0 {
		return decimal.Zero
	}

	base := baseRate.Mul(decimal.NewFromInt(int64(nights)))
	seasonal := base.Mul(seasonMultiplier(checkIn.Month()))

	weekend := weekendNights(checkIn, nights)
	surcharge := decimal.Zero
	if weekend > 0 {
		surcharge = seasonal.
			Mul(weekendRate).
			Mul(decimal.NewFromInt(int64(weekend))).
			Div(decimal.NewFromInt(int64(nights))).
			Round(2)
	}

	subtotal := seasonal.Add(surcharge)
	return subtotal.Mul(one.Add(taxRate)).Round(2)
}

func seasonMultiplier(m time.Month) decimal.Decimal {
	switch m {
	case time.July, time.August:
		return peakSummer
	case time.December, time.January:
		return peakHoliday
	default:
		return one
	}
}

// weekendNights counts stay nights whose date falls on Friday or Saturday.
func weekendNights(checkIn time.Time, nights int) int {
	count := 0
	for i := 0; i < nights; i++ {
		switch checkIn.AddDate(0, 0, i).Weekday() {
		case time.Friday, time.Saturday:
			count++
		}
	}
	return count
}
