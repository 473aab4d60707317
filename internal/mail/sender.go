package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/sibabeauty/storefront/internal/obs"
)

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

const sendGridURL = "https://api.sendgrid.com/v3/mail/send"

// SendGridSender delivers messages through the SendGrid v3 mail API.
type SendGridSender struct {
	APIKey    string
	FromEmail string
	FromName  string
	Client    *http.Client
}

func NewSendGridSender(apiKey, fromEmail, fromName string) *SendGridSender {
	return &SendGridSender{
		APIKey:    apiKey,
		FromEmail: fromEmail,
		FromName:  fromName,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgPayload struct {
	Personalizations []struct {
		To []sgAddress `json:"to"`
	} `json:"personalizations"`
	From    sgAddress `json:"from"`
	Subject string    `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	var p sgPayload
	p.Personalizations = make([]struct {
		To []sgAddress `json:"to"`
	}, 1)
	p.Personalizations[0].To = []sgAddress{{Email: msg.To}}
	p.From = sgAddress{Email: s.FromEmail, Name: s.FromName}
	p.Subject = msg.Subject
	p.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{{Type: "text/html", Value: msg.HTML}}

	body, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshal sendgrid payload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendGridURL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build sendgrid request")
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send mail")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("sendgrid status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// LogSender logs messages instead of delivering them. Used when no
// SendGrid API key is configured, and in tests.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	obs.Logger.Info("receipt_logged",
		"to", msg.To,
		"subject", msg.Subject,
		"order_id", msg.OrderID,
	)
	return nil
}
