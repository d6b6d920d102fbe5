// Package notify sends verification lifecycle mail to organisation
// administrators. Delivery failures are reported as a false result, never an
// error: the scanner records them in the batch report and carries on.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/go-mail"

	"supportdir/internal/platform/config"
	"supportdir/pkg/email"
)

// Dispatcher sends reminder and expiry notifications for one organisation.
type Dispatcher interface {
	// SendReminder notifies the selected administrator that the listing is
	// approaching its verification deadline. True only on confirmed
	// acceptance by the mail transport.
	SendReminder(ctx context.Context, email, orgName string, elapsedDays int) bool

	// SendExpiry notifies the selected administrator that the listing has
	// been demoted to unverified.
	SendExpiry(ctx context.Context, email, orgName string) bool
}

// sender abstracts the SMTP transport so dispatch logic is testable without a
// mail server.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPDispatcher delivers lifecycle mail over SMTP.
type SMTPDispatcher struct {
	from   string
	client sender
	logger *slog.Logger
}

// SMTPOption configures an SMTPDispatcher.
type SMTPOption func(*SMTPDispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(logger *slog.Logger) SMTPOption {
	return func(d *SMTPDispatcher) {
		d.logger = logger
	}
}

// withSender swaps the SMTP client; used by tests.
func withSender(s sender) SMTPOption {
	return func(d *SMTPDispatcher) {
		d.client = s
	}
}

// NewSMTPDispatcher constructs a dispatcher from SMTP configuration.
func NewSMTPDispatcher(cfg config.SMTP, opts ...SMTPOption) (*SMTPDispatcher, error) {
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}

	d := &SMTPDispatcher{
		from:   cfg.From,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.client == nil {
		clientOpts := []mail.Option{
			mail.WithPort(cfg.Port),
			mail.WithTimeout(cfg.Timeout),
			mail.WithTLSPolicy(mail.TLSOpportunistic),
		}
		if cfg.Username != "" {
			clientOpts = append(clientOpts,
				mail.WithSMTPAuth(mail.SMTPAuthPlain),
				mail.WithUsername(cfg.Username),
				mail.WithPassword(cfg.Password),
			)
		}
		client, err := mail.NewClient(cfg.Host, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("build smtp client: %w", err)
		}
		d.client = client
	}

	return d, nil
}

func (d *SMTPDispatcher) SendReminder(ctx context.Context, recipient, orgName string, elapsedDays int) bool {
	subject := fmt.Sprintf("Action needed: verify %s", orgName)
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"The listing for %s was last updated %d days ago. Listings that go "+
			"unreviewed for 100 days lose their verified status.\n\n"+
			"Please sign in and confirm the details are still accurate.\n",
		email.GreetingName(recipient), orgName, elapsedDays)

	return d.send(ctx, recipient, subject, body, "reminder")
}

func (d *SMTPDispatcher) SendExpiry(ctx context.Context, recipient, orgName string) bool {
	subject := fmt.Sprintf("%s is no longer marked as verified", orgName)
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"The listing for %s has not been reviewed for over 100 days and has "+
			"been moved to unverified.\n\n"+
			"Updating the listing will make it eligible for verification again.\n",
		email.GreetingName(recipient), orgName)

	return d.send(ctx, recipient, subject, body, "expiry")
}

func (d *SMTPDispatcher) send(ctx context.Context, recipient, subject, body, kind string) bool {
	if strings.TrimSpace(recipient) == "" {
		d.logger.Error("notification dropped: blank recipient", "kind", kind)
		return false
	}

	msg := mail.NewMsg()
	if err := msg.From(d.from); err != nil {
		d.logger.Error("notification dropped: invalid sender", "kind", kind, "error", err)
		return false
	}
	if err := msg.To(recipient); err != nil {
		d.logger.Error("notification dropped: invalid recipient",
			"kind", kind, "recipient", recipient, "error", err)
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := d.client.DialAndSendWithContext(ctx, msg); err != nil {
		d.logger.Warn("notification delivery failed",
			"kind", kind, "recipient", recipient, "error", err)
		return false
	}
	return true
}
