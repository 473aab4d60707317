// Package checkout turns carts into quotes and orders.
package checkout

import (
	"time"

	"github.com/sibabeauty/storefront/internal/model"
)

// PaymentMethod is one of the storefront's payment paths.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentEFT  PaymentMethod = "eft"
	PaymentCash PaymentMethod = "cash"
)

// Address is the delivery address collected at checkout.
type Address struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postal_code"`
}

func (a Address) complete() bool {
	return a.FullName != "" && a.Phone != "" && a.Email != "" &&
		a.StreetAddress != "" && a.City != "" && a.Province != "" && a.PostalCode != ""
}

// CardDetails are collected only for card payments. They are validated
// for presence and discarded after the simulated capture; nothing stores
// them.
type CardDetails struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

func (c *CardDetails) complete() bool {
	return c != nil && c.Number != "" && c.Name != "" && c.Expiry != "" && c.CVV != ""
}

// QuoteItem is one priced cart line. SalePriceCents is the discounted
// unit price under the active sale; it equals UnitPriceCents when no
// flat sale applies.
type QuoteItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SalePriceCents int64  `json:"sale_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
}

// Quote is the priced view of a cart: what the cart drawer and the
// checkout summary render.
type Quote struct {
	Items            []QuoteItem       `json:"items"`
	SubtotalCents    int64             `json:"subtotal_cents"`
	DiscountCents    int64             `json:"discount_cents"`
	DeliveryFeeCents int64             `json:"delivery_fee_cents"`
	TotalCents       int64             `json:"total_cents"`
	BundlesApplied   int64             `json:"bundles_applied,omitempty"`
	AppliedDeals     []model.ComboDeal `json:"applied_deals,omitempty"`
}

// Order is a placed order.
type Order struct {
	ID            string        `json:"id"`
	Items         []QuoteItem   `json:"items"`
	Address       Address       `json:"address"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	SaleID        string        `json:"sale_id,omitempty"`

	SubtotalCents    int64 `json:"subtotal_cents"`
	DiscountCents    int64 `json:"discount_cents"`
	DeliveryFeeCents int64 `json:"delivery_fee_cents"`
	TotalCents       int64 `json:"total_cents"`

	CreatedAt time.Time `json:"created_at"`
}
