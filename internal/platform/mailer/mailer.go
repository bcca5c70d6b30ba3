// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

/*
Package mailer provides outbound transactional email delivery.

It is used by the auth domain to deliver password reset tokens and by the
lifecycle engine to notify writers about chapter approval outcomes.

Core Responsibilities:

  - Delivery: SMTP submission via wneessen/go-mail.
  - Degradation: A no-op implementation when SMTP is not configured, so
    local development does not require a mail server.
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Mailer delivers transactional emails.
type Mailer interface {
	// Send delivers a plain-text email to a single recipient.
	Send(ctx context.Context, to string, subject string, body string) error
}

// # SMTP Implementation

// SMTPMailer sends email through an authenticated SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
	logger *slog.Logger
}

// NewSMTP creates a Mailer backed by an SMTP relay.
//
// # Parameters
//   - host, port: SMTP relay endpoint.
//   - username, password: SMTP AUTH credentials (PLAIN).
//   - from: the envelope sender address.
//   - logger: structured logger for delivery events.
func NewSMTP(host string, port int, username, password, from string, logger *slog.Logger) (*SMTPMailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("mailer: failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, from: from, logger: logger}, nil
}

// Send implements [Mailer].
func (m *SMTPMailer) Send(ctx context.Context, to string, subject string, body string) error {
	message := mail.NewMsg()
	if err := message.From(m.from); err != nil {
		return fmt.Errorf("mailer: invalid sender address: %w", err)
	}
	if err := message.To(to); err != nil {
		return fmt.Errorf("mailer: invalid recipient address: %w", err)
	}

	message.Subject(subject)
	message.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("mailer: delivery failed: %w", err)
	}

	m.logger.InfoContext(ctx, "email_sent",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}

// # No-op Implementation

// NoopMailer logs emails instead of sending them. Used when SMTP_HOST is
// not configured (local development, CI).
type NoopMailer struct {
	logger *slog.Logger
}

// NewNoop creates a Mailer that only logs.
func NewNoop(logger *slog.Logger) *NoopMailer {
	return &NoopMailer{logger: logger}
}

// Send implements [Mailer] by logging the message and discarding it.
func (m *NoopMailer) Send(ctx context.Context, to string, subject string, body string) error {
	m.logger.InfoContext(ctx, "email_discarded_no_smtp",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}
