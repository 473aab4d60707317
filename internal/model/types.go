// Package model defines domain types used by the storefront.
package model

// Product is a catalog entry. Prices are integer minor units (cents).
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category"`
	Size        string   `json:"size"`
	Badge       string   `json:"badge,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Benefits    []string `json:"benefits,omitempty"`
	Stock       *int64   `json:"stock,omitempty"`
}

// CartItem is one line in a shopping cart: a product with a quantity.
type CartItem struct {
	Product
	Quantity int64 `json:"quantity"`
}

// SaleType selects which discount mode a Sale applies.
type SaleType string

const (
	SaleFixed   SaleType = "fixed"
	SalePercent SaleType = "percent"
	SaleCombo   SaleType = "combo"
)

// ComboDeal is one bundle rule within a combo sale: one unit of every
// listed product unlocks the bundle price.
type ComboDeal struct {
	ProductIDs       []string `json:"product_ids"`
	BundlePriceCents int64    `json:"bundle_price_cents"`
}

// Sale is a promotional rule. The Type tag selects which of AmountCents,
// Percent, or ComboDeals is authoritative; the others are ignored.
// StartDate/EndDate are inclusive epoch-millisecond bounds; a missing
// bound leaves the sale unbounded on that side.
type Sale struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	BannerImage  string      `json:"banner_image,omitempty"`
	Active       bool        `json:"active"`
	PopupEnabled bool        `json:"popup_enabled,omitempty"`
	Type         SaleType    `json:"type"`
	AmountCents  int64       `json:"amount_cents,omitempty"`
	Percent      float64     `json:"percent,omitempty"`
	ComboDeals   []ComboDeal `json:"combo_deals,omitempty"`
	StartDate    *int64      `json:"start_date,omitempty"`
	EndDate      *int64      `json:"end_date,omitempty"`
	CreatedAt    int64       `json:"created_at,omitempty"`
}
