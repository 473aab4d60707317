// Package mail renders and delivers order receipt emails.
package mail

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/pkg/errors"

	"github.com/sibabeauty/storefront/internal/checkout"
)

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
	OrderID string
}

// FormatCents renders an amount of minor units as display currency.
func FormatCents(cents int64) string {
	return fmt.Sprintf("R%.2f", float64(cents)/100)
}

var paymentLabels = map[checkout.PaymentMethod]string{
	checkout.PaymentCard: "Credit/Debit Card",
	checkout.PaymentEFT:  "EFT/Bank Transfer",
	checkout.PaymentCash: "Cash on Delivery",
}

// PaymentLabel returns the customer-facing name of a payment method.
func PaymentLabel(m checkout.PaymentMethod) string {
	if l, ok := paymentLabels[m]; ok {
		return l
	}
	return string(m)
}

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"cents":   FormatCents,
	"payment": PaymentLabel,
	"mul":     func(a, b int64) int64 { return a * b },
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; margin: 0; padding: 24px;">
  <h1 style="color: #be185d;">{{.Heading}}</h1>
  <p>{{.Intro}}</p>
  <p><strong>Order {{.Order.ID}}</strong></p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr>
      <th style="padding: 10px; text-align: left; border-bottom: 2px solid #e5e7eb;">Item</th>
      <th style="padding: 10px; text-align: center; border-bottom: 2px solid #e5e7eb;">Qty</th>
      <th style="padding: 10px; text-align: right; border-bottom: 2px solid #e5e7eb;">Price</th>
      <th style="padding: 10px; text-align: right; border-bottom: 2px solid #e5e7eb;">Total</th>
    </tr>
    {{range .Order.Items}}
    <tr>
      <td style="padding: 10px; border-bottom: 1px solid #e5e7eb;">{{.Name}}</td>
      <td style="padding: 10px; border-bottom: 1px solid #e5e7eb; text-align: center;">{{.Quantity}}</td>
      <td style="padding: 10px; border-bottom: 1px solid #e5e7eb; text-align: right;">{{cents .UnitPriceCents}}</td>
      <td style="padding: 10px; border-bottom: 1px solid #e5e7eb; text-align: right;">{{cents (mul .UnitPriceCents .Quantity)}}</td>
    </tr>
    {{end}}
  </table>
  <table style="width: 100%; margin-top: 16px;">
    <tr><td>Subtotal</td><td style="text-align: right;">{{cents .Order.SubtotalCents}}</td></tr>
    {{if gt .Order.DiscountCents 0}}<tr><td>Discount</td><td style="text-align: right;">-{{cents .Order.DiscountCents}}</td></tr>{{end}}
    <tr><td>Delivery</td><td style="text-align: right;">{{if eq .Order.DeliveryFeeCents 0}}Free{{else}}{{cents .Order.DeliveryFeeCents}}{{end}}</td></tr>
    <tr><td><strong>Total</strong></td><td style="text-align: right;"><strong>{{cents .Order.TotalCents}}</strong></td></tr>
  </table>
  <p style="margin-top: 16px;">Payment method: {{payment .Order.PaymentMethod}}</p>
  <p>Delivery address:<br/>
    {{.Order.Address.FullName}}<br/>
    {{.Order.Address.StreetAddress}}<br/>
    {{.Order.Address.City}}, {{.Order.Address.Province}} {{.Order.Address.PostalCode}}</p>
  <p style="color: #6b7280; font-size: 12px;">Siba Beauty &middot; Thank you for supporting local skincare.</p>
</body>
</html>`))

type receiptData struct {
	Heading string
	Intro   string
	Order   checkout.Order
}

func render(data receiptData) (string, error) {
	var b strings.Builder
	if err := receiptTmpl.Execute(&b, data); err != nil {
		return "", errors.Wrap(err, "render receipt")
	}
	return b.String(), nil
}

// CustomerReceipt renders the order confirmation sent to the customer.
func CustomerReceipt(ord checkout.Order) (Message, error) {
	html, err := render(receiptData{
		Heading: "Thank you for your order!",
		Intro:   fmt.Sprintf("Hi %s, we've received your order and will be in touch once it ships.", ord.Address.FullName),
		Order:   ord,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      ord.Address.Email,
		Subject: fmt.Sprintf("Your Siba Beauty order %s", ord.ID),
		HTML:    html,
		OrderID: ord.ID,
	}, nil
}

// AdminNotification renders the new-order alert sent to the store owner.
func AdminNotification(ord checkout.Order, adminEmail string) (Message, error) {
	html, err := render(receiptData{
		Heading: "New order received",
		Intro:   fmt.Sprintf("Order from %s (%s, %s).", ord.Address.FullName, ord.Address.Email, ord.Address.Phone),
		Order:   ord,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      adminEmail,
		Subject: fmt.Sprintf("New order %s - %s", ord.ID, FormatCents(ord.TotalCents)),
		HTML:    html,
		OrderID: ord.ID,
	}, nil
}
