package refund

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var total = decimal.RequireFromString("328.60")

func TestAmount_FullRefundAtSevenDays(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	checkIn := now.AddDate(0, 0, 10)

	assert.Equal(t, "328.60", Amount(total, checkIn, now).StringFixed(2))
}

func TestAmount_PartialRefundInsideWeek(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	checkIn := now.AddDate(0, 0, 3)

	assert.Equal(t, "262.88", Amount(total, checkIn, now).StringFixed(2))
}

func TestAmount_NoRefundSameDay(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)

	assert.True(t, Amount(total, now, now).IsZero())
}

func TestAmount_NoRefundAfterCheckIn(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	checkIn := now.AddDate(0, 0, -2)

	assert.True(t, Amount(total, checkIn, now).IsZero())
}

func TestDaysUntil_IgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2026, time.March, 1, 23, 59, 0, 0, time.UTC)
	checkIn := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 7, DaysUntil(checkIn, now))
}
