// Package mailer sends transactional email over SMTP
package mailer

import (
	"fmt"

	"github.com/bootcampfinder/backend/internal/config"
	mail "gopkg.in/mail.v2"
)

// Mailer sends email through the configured SMTP server
type Mailer struct {
	dialer *mail.Dialer
	from   string
}

// New creates a mailer from SMTP configuration
func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers a plain-text message to a single recipient. The call blocks
// until the SMTP server accepts or rejects the message; callers rely on a
// synchronous failure signal to roll back state tied to the email.
func (m *Mailer) Send(to, subject, body string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
