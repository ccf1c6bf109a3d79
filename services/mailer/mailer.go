// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package mailer relays contact-form messages to the site admins over SMTP.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Settings is the SMTP configuration, built once at startup.
type Settings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Admins   []string
}

// Sender delivers a contact message. Implemented by Mailer; handlers depend
// on the interface so tests can capture sends.
type Sender interface {
	SendContact(ctx context.Context, name, email, subject, message string) error
}

// Mailer is the SMTP-backed Sender.
type Mailer struct {
	settings *Settings
}

// New builds a Mailer around the given settings.
func New(settings *Settings) *Mailer {
	return &Mailer{settings: settings}
}

// SendContact mails the admins one contact-form submission. The visitor's
// address goes into the body, not the envelope, so the relay never sends on
// behalf of an address it doesn't own.
func (m *Mailer) SendContact(ctx context.Context, name, email, subject, message string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.settings.From); err != nil {
		return fmt.Errorf("invalid from address %q: %w", m.settings.From, err)
	}
	if err := msg.To(m.settings.Admins...); err != nil {
		return fmt.Errorf("invalid admin address list: %w", err)
	}
	msg.Subject("[contact] " + subject)
	msg.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("From: %s\nEmail: %s\nMessage:\n\n%s", name, email, message))

	client, err := mail.NewClient(m.settings.Host,
		mail.WithPort(m.settings.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.settings.Username),
		mail.WithPassword(m.settings.Password),
	)
	if err != nil {
		return fmt.Errorf("failed to build SMTP client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send contact mail: %w", err)
	}
	slog.Info("Relayed contact message", "subject", subject)
	return nil
}
