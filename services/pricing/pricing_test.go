package pricing

import (
	"testing"
	"time"

	"rentify/models"
	"rentify/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2030, 3, 10, 8, 0, 0, 0, time.UTC)

func TestCalculateRentalDuration(t *testing.T) {
	tests := []struct {
		name     string
		span     time.Duration
		wantType models.PriceType
		units    int64
		label    string
	}{
		{"exactly one day", 24 * time.Hour, models.PriceDaily, 1, "1 day"},
		{"two days", 48 * time.Hour, models.PriceDaily, 2, "2 days"},
		{"ninety minutes", 90 * time.Minute, models.PriceHourly, 1, "1 hour 30 minutes"},
		{"under a day", 8 * time.Hour, models.PriceHourly, 8, "8 hours"},
		{"day and a half hour", 24*time.Hour + 30*time.Minute, models.PriceHourly, 24, "1 day 30 minutes"},
		{"two and a half days", 60 * time.Hour, models.PriceHourly, 60, "2 days 12 hours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := CalculateRentalDuration(start, start.Add(tt.span))
			assert.Equal(t, tt.wantType, calc.PriceType)
			assert.Equal(t, tt.units, calc.BillableUnits)
			assert.Equal(t, tt.label, FormatRentalDuration(calc))
		})
	}
}

func TestCalculateRentalPrice(t *testing.T) {
	rate := models.AmountFromUnits(1_200_000)

	twoDays := CalculateRentalDuration(start, start.Add(48*time.Hour))
	assert.Equal(t, rate.Times(2), CalculateRentalPrice(twoDays, rate))

	ninety := CalculateRentalDuration(start, start.Add(90*time.Minute))
	price := CalculateRentalPrice(ninety, rate)
	assert.Less(t, int64(price), int64(rate))
	// 1,200,000 * 90 / 1440 = 75,000
	assert.Equal(t, models.AmountFromUnits(75_000), price)

	assert.Equal(t, models.AmountFromUnits(50_000), HourlyRate(rate))
}

func TestApplyCoupon(t *testing.T) {
	now := start
	total := models.MustParseAmount("1234.55")

	valid := &models.Coupon{ID: "c1", Discount: models.MustParseAmount("10"), Status: models.CouponValid, TimeExpired: now.Add(time.Hour)}
	discount, err := ApplyCoupon(total, valid, now)
	require.NoError(t, err)
	// 123.455 rounds half-up to 123.46
	assert.Equal(t, models.MustParseAmount("123.46"), discount)

	expired := &models.Coupon{ID: "c2", Discount: models.MustParseAmount("10"), Status: models.CouponValid, TimeExpired: now}
	_, err = ApplyCoupon(total, expired, now)
	assert.True(t, utils.IsKind(err, utils.KindCouponInvalid))

	disabled := &models.Coupon{ID: "c3", Discount: models.MustParseAmount("10"), Status: models.CouponExpired, TimeExpired: now.Add(time.Hour)}
	_, err = ApplyCoupon(total, disabled, now)
	assert.True(t, utils.IsKind(err, utils.KindCouponInvalid))

	none, err := ApplyCoupon(total, nil, now)
	require.NoError(t, err)
	assert.True(t, none.IsZero())
}

func TestCalculatePenalty(t *testing.T) {
	total := models.AmountFromUnits(1_000_000)

	percent := &models.Booking{TotalCost: total, PenaltyType: models.PenaltyPercent, PenaltyValue: models.MustParseAmount("20")}
	assert.Equal(t, models.AmountFromUnits(200_000), CalculatePenalty(percent))

	fixed := &models.Booking{TotalCost: total, PenaltyType: models.PenaltyFixed, PenaltyValue: models.AmountFromUnits(50_000)}
	assert.Equal(t, models.AmountFromUnits(50_000), CalculatePenalty(fixed))

	unset := &models.Booking{TotalCost: total}
	assert.True(t, CalculatePenalty(unset).IsZero())

	// 33.33% of 100.01 = 33.333333 -> 33.33
	odd := &models.Booking{TotalCost: models.MustParseAmount("100.01"), PenaltyType: models.PenaltyPercent, PenaltyValue: models.MustParseAmount("33.33")}
	assert.Equal(t, models.MustParseAmount("33.33"), CalculatePenalty(odd))
}

func TestSettleConservesTotal(t *testing.T) {
	total := models.AmountFromUnits(1_000_000)
	for _, penalty := range []models.Amount{0, models.AmountFromUnits(200_000), total, total + 1, -5} {
		refund, charged := Settle(total, penalty)
		assert.Equal(t, total, refund+charged)
		assert.GreaterOrEqual(t, int64(charged), int64(0))
		assert.LessOrEqual(t, int64(charged), int64(total))
	}
}
