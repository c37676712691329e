// Package mail delivers one-time codes over SMTP using gomail.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/servicehub/marketplace-api/internal/core/ports"
)

// Config captures the SMTP settings for outbound mail.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements ports.Mailer over a plain SMTP dialer.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a mailer from SMTP settings. From falls back to
// the username when empty.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// SendOTP dispatches the code. The send is synchronous; callers decide
// whether a failure is fatal.
func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string, purpose ports.OTPPurpose) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("%s Code - ServiceHub", purpose))
	msg.SetBody("text/html", otpBody(code, purpose))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

func otpBody(code string, purpose ports.OTPPurpose) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>ServiceHub %s Code</h2>
  <p>Use the code below to continue. It is valid for 10 minutes.</p>
  <p style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</p>
  <p>If you did not request this, you can safely ignore this email.</p>
</div>`, purpose, code)
}
