// Package pricing computes rental cost, coupon discounts and cancellation
// penalties. Every function is pure; rounding is half-up to the cent.
package pricing

import (
	"fmt"
	"strings"
	"time"

	"rentify/models"
	"rentify/utils"
)

const minutesPerDay = 24 * 60

// CalculateRentalDuration picks the pricing band for [start, end). Whole-day
// spans of at least one day are billed daily; anything else is billed by the
// hour, keeping the minute remainder.
func CalculateRentalDuration(start, end time.Time) models.RentalCalculation {
	total := int64(end.Sub(start) / time.Minute)
	if total < 0 {
		total = 0
	}

	if total >= minutesPerDay && total%minutesPerDay == 0 {
		days := total / minutesPerDay
		return models.RentalCalculation{
			PriceType:     models.PriceDaily,
			BillableUnits: days,
			TotalMinutes:  total,
			BillingDays:   days,
		}
	}

	return models.RentalCalculation{
		PriceType:      models.PriceHourly,
		BillableUnits:  total / 60,
		TotalMinutes:   total,
		BillingDays:    total / minutesPerDay,
		BillingHours:   total / 60,
		BillingMinutes: total % 60,
	}
}

// CalculateRentalPrice prices a calculation against a vehicle's daily rate.
// Hourly rentals pro-rate the daily rate by elapsed minutes.
func CalculateRentalPrice(calc models.RentalCalculation, dailyRate models.Amount) models.Amount {
	if calc.PriceType == models.PriceDaily {
		return dailyRate.Times(calc.BillingDays)
	}
	return dailyRate.MulDiv(calc.TotalMinutes, minutesPerDay)
}

// HourlyRate is the per-hour price implied by a daily rate.
func HourlyRate(dailyRate models.Amount) models.Amount {
	return dailyRate.MulDiv(1, 24)
}

// ApplyCoupon returns the discount a coupon grants on preDiscountTotal.
func ApplyCoupon(preDiscountTotal models.Amount, coupon *models.Coupon, now time.Time) (models.Amount, error) {
	if coupon == nil {
		return 0, nil
	}
	if coupon.Status != models.CouponValid {
		return 0, utils.NewAppError(utils.KindCouponInvalid, "coupon %s is not valid (status %s)", coupon.ID, coupon.Status)
	}
	if !coupon.TimeExpired.IsZero() && !now.Before(coupon.TimeExpired) {
		return 0, utils.NewAppError(utils.KindCouponInvalid, "coupon %s expired on %s", coupon.ID, coupon.TimeExpired.Format(time.RFC3339))
	}
	discount := preDiscountTotal.Percent(coupon.Discount)
	if discount > preDiscountTotal {
		discount = preDiscountTotal
	}
	return discount, nil
}

// CalculatePenalty returns the cancellation penalty a booking's policy implies.
func CalculatePenalty(b *models.Booking) models.Amount {
	switch b.PenaltyType {
	case models.PenaltyFixed:
		return b.PenaltyValue
	case models.PenaltyPercent:
		return b.TotalCost.Percent(b.PenaltyValue)
	default:
		return 0
	}
}

// Settle splits totalCost into the renter's refund and the provider's penalty
// share. The penalty is clamped to [0, totalCost] so refund+penalty==totalCost.
func Settle(totalCost, penalty models.Amount) (refund, charged models.Amount) {
	if penalty < 0 {
		penalty = 0
	}
	if penalty > totalCost {
		penalty = totalCost
	}
	return totalCost - penalty, penalty
}

// FormatRentalDuration renders a calculation for display, e.g. "2 days" or
// "1 day 3 hours 30 minutes".
func FormatRentalDuration(calc models.RentalCalculation) string {
	if calc.PriceType == models.PriceDaily {
		return plural(calc.BillingDays, "day")
	}

	days := calc.TotalMinutes / minutesPerDay
	hours := (calc.TotalMinutes % minutesPerDay) / 60
	minutes := calc.TotalMinutes % 60

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 || len(parts) == 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	return strings.Join(parts, " ")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
