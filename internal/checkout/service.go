package checkout

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sibabeauty/storefront/internal/catalog"
	"github.com/sibabeauty/storefront/internal/model"
	"github.com/sibabeauty/storefront/internal/pricing"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidQuantity     = errors.New("quantity must be > 0")
	ErrAddressIncomplete   = errors.New("all address fields are required")
	ErrInvalidPayment      = errors.New("unknown payment method")
	ErrCardDetailsRequired = errors.New("all card details are required")
)

// ReceiptQueue accepts placed orders for asynchronous receipt delivery.
// Enqueue returns false when intake is closed (service shutting down).
type ReceiptQueue interface {
	Enqueue(ord Order) bool
}

// Service prices carts and places orders. The active sale is always an
// explicit parameter; the service never consults promotion state itself.
type Service struct {
	Catalog  *catalog.Store
	Orders   *Orders
	Receipts ReceiptQueue

	DeliveryFeeCents           int64
	FreeDeliveryThresholdCents int64
}

// OrderRequest is a checkout submission.
type OrderRequest struct {
	Lines         []catalog.Line `json:"items"`
	Address       Address        `json:"address"`
	PaymentMethod PaymentMethod  `json:"payment_method"`
	Card          *CardDetails   `json:"card,omitempty"`
}

// Quote prices the cart under the given sale at the given instant.
func (s *Service) Quote(lines []catalog.Line, sale *model.Sale, now time.Time) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, ErrEmptyCart
	}
	for _, ln := range lines {
		if ln.Quantity <= 0 {
			return Quote{}, ErrInvalidQuantity
		}
	}
	items, err := s.Catalog.Resolve(lines)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{Items: make([]QuoteItem, 0, len(items))}
	for _, it := range items {
		q.SubtotalCents += it.PriceCents * it.Quantity
		q.Items = append(q.Items, QuoteItem{
			ProductID:      it.ID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: it.PriceCents,
			SalePriceCents: pricing.DiscountedUnitPriceAt(it.Product, sale, now),
			LineTotalCents: it.PriceCents * it.Quantity,
		})
	}

	d := pricing.CartDiscountAt(items, sale, now)
	q.DiscountCents = d.DiscountCents
	q.BundlesApplied = d.BundlesApplied
	q.AppliedDeals = d.AppliedDeals

	// Free delivery above the threshold, judged on the pre-discount subtotal.
	if q.SubtotalCents <= s.FreeDeliveryThresholdCents {
		q.DeliveryFeeCents = s.DeliveryFeeCents
	}
	q.TotalCents = q.SubtotalCents - q.DiscountCents + q.DeliveryFeeCents
	return q, nil
}

// PlaceOrder validates the submission, prices the cart under the given
// sale, records the order, and queues receipt delivery. Card capture is
// simulated; card details are checked for presence and dropped.
func (s *Service) PlaceOrder(req OrderRequest, sale *model.Sale, now time.Time) (Order, error) {
	if !req.Address.complete() {
		return Order{}, ErrAddressIncomplete
	}
	switch req.PaymentMethod {
	case PaymentCard:
		if !req.Card.complete() {
			return Order{}, ErrCardDetailsRequired
		}
	case PaymentEFT, PaymentCash:
	default:
		return Order{}, ErrInvalidPayment
	}

	q, err := s.Quote(req.Lines, sale, now)
	if err != nil {
		return Order{}, err
	}

	ord := Order{
		ID:               NewOrderID(),
		Items:            q.Items,
		Address:          req.Address,
		PaymentMethod:    req.PaymentMethod,
		SubtotalCents:    q.SubtotalCents,
		DiscountCents:    q.DiscountCents,
		DeliveryFeeCents: q.DeliveryFeeCents,
		TotalCents:       q.TotalCents,
		CreatedAt:        now,
	}
	if sale != nil && q.DiscountCents > 0 {
		ord.SaleID = sale.ID
	}

	s.Orders.add(ord)
	if s.Receipts != nil {
		s.Receipts.Enqueue(ord)
	}
	return ord, nil
}

// NewOrderID returns a short customer-facing order reference.
func NewOrderID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}
