// Package mail sends agency notifications over SMTP.
package mail

import (
	"gopkg.in/gomail.v2"

	"github.com/build-with-chris/pepe-api/pkg/config"
)

// Sender delivers plain-text notification mail.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer constructs a mailer from config.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send composes and delivers a single message. Callers treat failures as
// non-fatal; a lost notification must never fail the booking itself.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	return d.DialAndSend(msg)
}

// NopMailer discards mail; used when MAIL_ENABLED is off and in tests.
type NopMailer struct{}

// Send implements Sender.
func (NopMailer) Send(string, string, string) error { return nil }
