// Package mail delivers contact form submissions over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/nivar/journey/internal/config"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// Message is a contact form submission.
type Message struct {
	Name    string
	Email   string
	Message string
}

// Sender delivers contact messages.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends through an SMTP relay with PLAIN auth.
type SMTPSender struct {
	cfg  config.SMTP
	send SendFunc
}

// NewSMTPSender returns a sender for cfg. send defaults to smtp.SendMail.
func NewSMTPSender(cfg config.SMTP, send SendFunc) *SMTPSender {
	if send == nil {
		send = smtp.SendMail
	}
	return &SMTPSender{cfg: cfg, send: send}
}

// Send delivers m to the configured recipient.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.cfg.Enabled() {
		return ErrNotConfigured
	}
	to := s.cfg.To
	if to == "" {
		to = s.cfg.User
	}
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	if err := s.send(s.cfg.Host+":"+s.cfg.Port, auth, s.cfg.User, []string{to}, Compose(s.cfg.User, to, m)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// Compose renders m as an RFC 5322 message. Header values and the
// single-line name and email fields are stripped of line breaks.
func Compose(from, to string, m Message) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, header(m.Name), header(m.Email), m.Message)

	var b strings.Builder
	b.WriteString("To: " + header(to) + "\r\n")
	b.WriteString("Subject: Portfolio Contact: " + header(m.Name) + "\r\n")
	b.WriteString("From: " + header(from) + "\r\n")
	b.WriteString("Reply-To: " + header(m.Email) + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

func header(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}
