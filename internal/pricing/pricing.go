// Package pricing computes sale discounts: sale-activity checks, discounted
// unit prices, and whole-cart discount totals including combo bundles.
//
// All functions are pure and never fail: missing numeric fields count as
// zero, out-of-range percentages are clamped, and negative results are
// clamped to zero. Amounts are integer minor units (cents).
package pricing

import (
	"math"
	"time"

	"github.com/sibabeauty/storefront/internal/model"
)

// AppliedDiscount is the result of a cart-level discount computation.
// BundlesApplied and AppliedDeals are populated only for combo sales.
type AppliedDiscount struct {
	DiscountCents  int64             `json:"discount_cents"`
	BundlesApplied int64             `json:"bundles_applied,omitempty"`
	AppliedDeals   []model.ComboDeal `json:"applied_deals,omitempty"`
}

// IsSaleActiveAt reports whether the sale is in effect at the given
// instant. A nil sale or a sale with Active false is never in effect.
// Date bounds are inclusive; a missing bound is unbounded on that side.
func IsSaleActiveAt(sale *model.Sale, now time.Time) bool {
	if sale == nil || !sale.Active {
		return false
	}
	ms := now.UnixMilli()
	if sale.StartDate != nil && ms < *sale.StartDate {
		return false
	}
	if sale.EndDate != nil && ms > *sale.EndDate {
		return false
	}
	return true
}

// IsSaleActive evaluates the sale against the current wall clock. The
// result is not cached; two calls at different instants may disagree.
func IsSaleActive(sale *model.Sale) bool {
	return IsSaleActiveAt(sale, time.Now())
}

// DiscountedUnitPriceAt returns the price of one unit of the product
// under the sale at the given instant. Combo sales never change a unit
// price; bundle economics only show up in cart totals.
func DiscountedUnitPriceAt(p model.Product, sale *model.Sale, now time.Time) int64 {
	if !IsSaleActiveAt(sale, now) {
		return p.PriceCents
	}
	switch sale.Type {
	case model.SaleFixed:
		v := p.PriceCents - sale.AmountCents
		if v < 0 {
			v = 0
		}
		return v
	case model.SalePercent:
		factor := clampPercent(sale.Percent) / 100
		return int64(math.Round(float64(p.PriceCents) * (1 - factor)))
	default:
		return p.PriceCents
	}
}

// DiscountedUnitPrice is DiscountedUnitPriceAt at the current wall clock.
func DiscountedUnitPrice(p model.Product, sale *model.Sale) int64 {
	return DiscountedUnitPriceAt(p, sale, time.Now())
}

// CartDiscountAt computes the total discount the sale applies to the
// cart at the given instant.
//
// Fixed and percent sales discount every line: per-unit discount times
// quantity, summed. Combo sales process each deal in order and
// independently: the number of bundles is the minimum cart quantity
// across the deal's product IDs (zero if any is absent), and a deal only
// applies when the bundle price actually undercuts the sum of the
// original unit prices. Deals do not reserve units from each other; a
// product in two deals counts fully toward both.
func CartDiscountAt(items []model.CartItem, sale *model.Sale, now time.Time) AppliedDiscount {
	if !IsSaleActiveAt(sale, now) {
		return AppliedDiscount{}
	}

	if sale.Type == model.SaleFixed || sale.Type == model.SalePercent {
		var total int64
		for _, it := range items {
			per := it.PriceCents - DiscountedUnitPriceAt(it.Product, sale, now)
			if per < 0 {
				per = 0
			}
			total += per * it.Quantity
		}
		return AppliedDiscount{DiscountCents: total}
	}

	byID := make(map[string]model.CartItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	var out AppliedDiscount
	for _, deal := range sale.ComboDeals {
		if len(deal.ProductIDs) == 0 {
			continue
		}
		bundles := int64(math.MaxInt64)
		var fullPrice int64
		for _, pid := range deal.ProductIDs {
			it, ok := byID[pid]
			if !ok {
				bundles = 0
				break
			}
			if it.Quantity < bundles {
				bundles = it.Quantity
			}
			fullPrice += it.PriceCents
		}
		if bundles <= 0 {
			continue
		}
		perBundle := fullPrice - deal.BundlePriceCents
		if perBundle <= 0 {
			continue
		}
		out.DiscountCents += perBundle * bundles
		out.BundlesApplied += bundles
		out.AppliedDeals = append(out.AppliedDeals, deal)
	}
	return out
}

// CartDiscount is CartDiscountAt at the current wall clock.
func CartDiscount(items []model.CartItem, sale *model.Sale) AppliedDiscount {
	return CartDiscountAt(items, sale, time.Now())
}

func clampPercent(p float64) float64 {
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
