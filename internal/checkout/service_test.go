package checkout

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibabeauty/storefront/internal/catalog"
	"github.com/sibabeauty/storefront/internal/model"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type recordingQueue struct {
	orders []Order
}

func (r *recordingQueue) Enqueue(ord Order) bool {
	r.orders = append(r.orders, ord)
	return true
}

func newService(t *testing.T) (*Service, *recordingQueue) {
	t.Helper()
	cat := catalog.New()
	cat.Seed()
	rq := &recordingQueue{}
	return &Service{
		Catalog:                    cat,
		Orders:                     NewOrders(),
		Receipts:                   rq,
		DeliveryFeeCents:           8000,
		FreeDeliveryThresholdCents: 50000,
	}, rq
}

func validAddress() Address {
	return Address{
		FullName: "Thandi M", Phone: "0820000000", Email: "thandi@example.com",
		StreetAddress: "12 Protea Rd", City: "Durban", Province: "KZN", PostalCode: "4001",
	}
}

func TestQuote(t *testing.T) {
	svc, _ := newService(t)

	t.Run("empty cart", func(t *testing.T) {
		_, err := svc.Quote(nil, nil, now)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := svc.Quote([]catalog.Line{{ProductID: "1", Quantity: 0}}, nil, now)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Quote([]catalog.Line{{ProductID: "nope", Quantity: 1}}, nil, now)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("no sale", func(t *testing.T) {
		q, err := svc.Quote([]catalog.Line{{ProductID: "1", Quantity: 1}}, nil, now)
		require.NoError(t, err)
		assert.Equal(t, int64(45000), q.SubtotalCents)
		assert.Equal(t, int64(0), q.DiscountCents)
		assert.Equal(t, int64(8000), q.DeliveryFeeCents, "below free-delivery threshold")
		assert.Equal(t, int64(53000), q.TotalCents)
		require.Len(t, q.Items, 1)
		assert.Equal(t, int64(45000), q.Items[0].SalePriceCents)
	})

	t.Run("free delivery above threshold", func(t *testing.T) {
		q, err := svc.Quote([]catalog.Line{{ProductID: "1", Quantity: 2}}, nil, now)
		require.NoError(t, err)
		assert.Equal(t, int64(90000), q.SubtotalCents)
		assert.Equal(t, int64(0), q.DeliveryFeeCents)
		assert.Equal(t, int64(90000), q.TotalCents)
	})

	// 2x R450 and 1x R650 with R50 off each unit discounts R150.
	t.Run("fixed sale across lines", func(t *testing.T) {
		sale := &model.Sale{ID: "s1", Title: "Fifty off", Active: true, Type: model.SaleFixed, AmountCents: 5000}
		q, err := svc.Quote([]catalog.Line{{ProductID: "1", Quantity: 2}, {ProductID: "2", Quantity: 1}}, sale, now)
		require.NoError(t, err)
		assert.Equal(t, int64(155000), q.SubtotalCents)
		assert.Equal(t, int64(15000), q.DiscountCents)
		assert.Equal(t, int64(140000), q.TotalCents)
		assert.Equal(t, int64(40000), q.Items[0].SalePriceCents)
		assert.Equal(t, int64(60000), q.Items[1].SalePriceCents)
	})

	t.Run("combo sale populates bundle metadata", func(t *testing.T) {
		sale := &model.Sale{ID: "s2", Title: "Duo", Active: true, Type: model.SaleCombo, ComboDeals: []model.ComboDeal{
			{ProductIDs: []string{"1", "2"}, BundlePriceCents: 90000},
		}}
		q, err := svc.Quote([]catalog.Line{{ProductID: "1", Quantity: 2}, {ProductID: "2", Quantity: 3}}, sale, now)
		require.NoError(t, err)
		assert.Equal(t, int64(40000), q.DiscountCents)
		assert.Equal(t, int64(2), q.BundlesApplied)
		require.Len(t, q.AppliedDeals, 1)
		// Unit prices stay at base under a combo sale.
		assert.Equal(t, int64(45000), q.Items[0].SalePriceCents)
	})
}

func TestPlaceOrder(t *testing.T) {
	t.Run("address required", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.PlaceOrder(OrderRequest{
			Lines:         []catalog.Line{{ProductID: "1", Quantity: 1}},
			PaymentMethod: PaymentCash,
		}, nil, now)
		assert.ErrorIs(t, err, ErrAddressIncomplete)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.PlaceOrder(OrderRequest{
			Lines:         []catalog.Line{{ProductID: "1", Quantity: 1}},
			Address:       validAddress(),
			PaymentMethod: "crypto",
		}, nil, now)
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})

	t.Run("card requires details", func(t *testing.T) {
		svc, _ := newService(t)
		req := OrderRequest{
			Lines:         []catalog.Line{{ProductID: "1", Quantity: 1}},
			Address:       validAddress(),
			PaymentMethod: PaymentCard,
		}
		_, err := svc.PlaceOrder(req, nil, now)
		assert.ErrorIs(t, err, ErrCardDetailsRequired)

		req.Card = &CardDetails{Number: "4111111111111111", Name: "T M", Expiry: "12/27"}
		_, err = svc.PlaceOrder(req, nil, now)
		assert.ErrorIs(t, err, ErrCardDetailsRequired)

		req.Card.CVV = "123"
		_, err = svc.PlaceOrder(req, nil, now)
		assert.NoError(t, err)
	})

	t.Run("order recorded and receipt queued", func(t *testing.T) {
		svc, rq := newService(t)
		sale := &model.Sale{ID: "s1", Title: "Fifty off", Active: true, Type: model.SaleFixed, AmountCents: 5000}
		ord, err := svc.PlaceOrder(OrderRequest{
			Lines:         []catalog.Line{{ProductID: "1", Quantity: 2}, {ProductID: "2", Quantity: 1}},
			Address:       validAddress(),
			PaymentMethod: PaymentEFT,
		}, sale, now)
		require.NoError(t, err)

		assert.Len(t, ord.ID, 8)
		assert.Equal(t, ord.ID, strings.ToUpper(ord.ID))
		assert.Equal(t, int64(155000), ord.SubtotalCents)
		assert.Equal(t, int64(15000), ord.DiscountCents)
		assert.Equal(t, int64(0), ord.DeliveryFeeCents)
		assert.Equal(t, int64(140000), ord.TotalCents)
		assert.Equal(t, "s1", ord.SaleID)

		stored, ok := svc.Orders.Get(ord.ID)
		require.True(t, ok)
		assert.Equal(t, ord.TotalCents, stored.TotalCents)
		assert.Equal(t, 1, svc.Orders.Count())

		require.Len(t, rq.orders, 1)
		assert.Equal(t, ord.ID, rq.orders[0].ID)
	})

	t.Run("no sale id without discount", func(t *testing.T) {
		svc, _ := newService(t)
		ord, err := svc.PlaceOrder(OrderRequest{
			Lines:         []catalog.Line{{ProductID: "1", Quantity: 1}},
			Address:       validAddress(),
			PaymentMethod: PaymentCash,
		}, nil, now)
		require.NoError(t, err)
		assert.Empty(t, ord.SaleID)
	})
}

func TestNewOrderID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewOrderID()
		require.Len(t, id, 8)
		assert.False(t, seen[id], "order IDs should not repeat")
		seen[id] = true
	}
}
