// Package pricing turns a cart plus store configuration into checkout
// totals. Everything here is a pure function over snapshots; degenerate
// inputs (empty cart, zero tax rate, missing shipping method) produce
// zero-valued results, not errors.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"mokha/internal/domain"
	"mokha/internal/loyalty"
)

// RedeemIntent is the customer's wish to burn loyalty points at checkout.
type RedeemIntent struct {
	Requested bool
	Balance   int64
}

// Quote is the priced outcome for a candidate cart.
type Quote struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	PointsToRedeem int64           `json:"pointsToRedeem"`
	PointsDiscount decimal.Decimal `json:"pointsDiscount"`
	Total          decimal.Decimal `json:"total"`
}

// Subtotal is the sum of effective unit price times quantity over all lines.
func Subtotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice().Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}

// AvailableMethods filters the configured shipping methods to those enabled
// and whose threshold (if any) the subtotal meets, sorted ascending by cost.
// Callers must re-evaluate whenever the subtotal changes: crossing a
// free-shipping threshold makes or unmakes that method available.
func AvailableMethods(methods []domain.ShippingMethod, subtotal decimal.Decimal) []domain.ShippingMethod {
	out := make([]domain.ShippingMethod, 0, len(methods))
	for _, m := range methods {
		if !m.IsEnabled() {
			continue
		}
		if m.Threshold != nil && subtotal.LessThan(*m.Threshold) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Cost.LessThan(out[j].Cost)
	})
	return out
}

// Compute prices a cart against the current settings. A nil method means no
// shipping selected (cost zero). Redemption is applied only when requested
// and the balance is positive, capped so the total never goes negative.
func Compute(items []domain.CartItem, settings domain.AppSettings, method *domain.ShippingMethod, redeem RedeemIntent) Quote {
	q := Quote{
		Subtotal:       Subtotal(items),
		PointsDiscount: decimal.Zero,
		ShippingCost:   decimal.Zero,
	}
	q.Tax = q.Subtotal.Mul(settings.TaxRate)
	if method != nil {
		q.ShippingCost = method.Cost
	}

	before := q.Subtotal.Add(q.Tax).Add(q.ShippingCost)
	if redeem.Requested {
		q.PointsToRedeem, q.PointsDiscount = loyalty.Redemption(redeem.Balance, before, settings.LoyaltySettings)
	}
	q.Total = before.Sub(q.PointsDiscount)
	return q
}
