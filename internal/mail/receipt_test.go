package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibabeauty/storefront/internal/checkout"
)

func sampleOrder() checkout.Order {
	return checkout.Order{
		ID: "A1B2C3D4",
		Address: checkout.Address{
			FullName: "Thandi M", Email: "thandi@example.com", Phone: "0820000000",
			StreetAddress: "12 Protea Rd", City: "Durban", Province: "KZN", PostalCode: "4001",
		},
		PaymentMethod: checkout.PaymentEFT,
		Items: []checkout.QuoteItem{
			{ProductID: "1", Name: "Radiance Moisturizer", Quantity: 2, UnitPriceCents: 45000, SalePriceCents: 40000, LineTotalCents: 90000},
			{ProductID: "2", Name: "Rose Gold Serum", Quantity: 1, UnitPriceCents: 65000, SalePriceCents: 60000, LineTotalCents: 65000},
		},
		SubtotalCents:    155000,
		DiscountCents:    15000,
		DeliveryFeeCents: 0,
		TotalCents:       140000,
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "R450.00", FormatCents(45000))
	assert.Equal(t, "R0.05", FormatCents(5))
	assert.Equal(t, "R1234.50", FormatCents(123450))
}

func TestPaymentLabel(t *testing.T) {
	assert.Equal(t, "Credit/Debit Card", PaymentLabel(checkout.PaymentCard))
	assert.Equal(t, "EFT/Bank Transfer", PaymentLabel(checkout.PaymentEFT))
	assert.Equal(t, "Cash on Delivery", PaymentLabel(checkout.PaymentCash))
	assert.Equal(t, "other", PaymentLabel(checkout.PaymentMethod("other")))
}

func TestCustomerReceipt(t *testing.T) {
	msg, err := CustomerReceipt(sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, "thandi@example.com", msg.To)
	assert.Contains(t, msg.Subject, "A1B2C3D4")
	assert.Equal(t, "A1B2C3D4", msg.OrderID)

	for _, want := range []string{
		"Radiance Moisturizer",
		"Rose Gold Serum",
		"R450.00",          // unit price
		"R900.00",          // line total 2x450
		"R1550.00",         // subtotal
		"-R150.00",         // discount
		"R1400.00",         // total
		"EFT/Bank Transfer",
		"12 Protea Rd",
		"Free", // delivery fee of zero renders as Free
	} {
		assert.Contains(t, msg.HTML, want)
	}
}

func TestAdminNotification(t *testing.T) {
	msg, err := AdminNotification(sampleOrder(), "orders@sibabeauty.example")
	require.NoError(t, err)
	assert.Equal(t, "orders@sibabeauty.example", msg.To)
	assert.Contains(t, msg.Subject, "R1400.00")
	assert.True(t, strings.Contains(msg.HTML, "thandi@example.com"))
}

func TestReceiptOmitsDiscountRowWhenZero(t *testing.T) {
	ord := sampleOrder()
	ord.DiscountCents = 0
	msg, err := CustomerReceipt(ord)
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "Discount")
}
