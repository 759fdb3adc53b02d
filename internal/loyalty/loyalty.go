// Package loyalty computes point accrual and redemption for the store's
// loyalty program. Points are earned on the post-discount order total and
// redeemed as a capped discount on a future order; they never transfer or
// expire.
package loyalty

import (
	"github.com/shopspring/decimal"

	"mokha/internal/domain"
)

// PointsEarned is floor(total * pointsPerDollar), never negative.
func PointsEarned(total decimal.Decimal, settings domain.LoyaltySettings) int64 {
	earned := total.Mul(settings.PointsPerDollar).Floor().IntPart()
	if earned < 0 {
		return 0
	}
	return earned
}

// Redemption caps the points a customer may burn on an order: never more
// than the balance, and never more than would cover the pre-discount total.
// The returned discount is points * dollarsPerPoint, so the order total can
// reach exactly zero but never go negative.
func Redemption(balance int64, preDiscountTotal decimal.Decimal, settings domain.LoyaltySettings) (points int64, discount decimal.Decimal) {
	if balance <= 0 || settings.DollarsPerPoint.Sign() <= 0 || preDiscountTotal.Sign() <= 0 {
		return 0, decimal.Zero
	}
	maxUsable := preDiscountTotal.Div(settings.DollarsPerPoint).Floor().IntPart()
	points = balance
	if maxUsable < points {
		points = maxUsable
	}
	return points, decimal.NewFromInt(points).Mul(settings.DollarsPerPoint)
}

// NewBalance applies a completed order to a customer balance. Redemption is
// capped at the balance upstream, but the result is clamped at zero anyway.
func NewBalance(old, redeemed, earned int64) int64 {
	b := old - redeemed + earned
	if b < 0 {
		return 0
	}
	return b
}
