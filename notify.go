package siteapi

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/sethvargo/go-retry"
)

// ContactMessage is the payload handed to the Notifier when a contact form
// is submitted.
type ContactMessage struct {
	FullName string
	Email    string
	Phone    string
	Message  string
}

// Notifier delivers a contact notification to the site operator. Delivery is
// best-effort: the submission row is the durable record, email is not.
type Notifier interface {
	Notify(ctx context.Context, m ContactMessage) error
}

// EmailNotifier sends contact notifications through Resend.
type EmailNotifier struct {
	client *resend.Client
	from   string
	to     string
}

// NewEmailNotifier creates an EmailNotifier for the given sender and
// recipient.
func NewEmailNotifier(apiKey, from, to string) *EmailNotifier {
	return &EmailNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

// Notify sends the notification email, retrying transient provider failures
// with Fibonacci backoff until ctx expires or the attempts are exhausted.
func (n *EmailNotifier) Notify(ctx context.Context, m ContactMessage) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: "New contact form submission",
		Text: fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s",
			m.FullName, m.Email, m.Phone, m.Message),
	}
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// notifyAsync fires the notifier in the background with a bounded deadline,
// so a stalled email provider can never hold a contact response open.
func (a *App) notifyAsync(m ContactMessage) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.notifier.Notify(ctx, m); err != nil {
			a.log.Error().Err(err).Str("email", m.Email).Msg("contact notification failed")
		}
	}()
}
