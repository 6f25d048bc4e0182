package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/nivar/journey/internal/config"
)

func TestSendRequiresCredentials(t *testing.T) {
	t.Parallel()

	s := NewSMTPSender(config.SMTP{Host: "smtp.example.com", Port: "587"}, nil)
	if err := s.Send(context.Background(), Message{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Send() error = %v, want %v", err, ErrNotConfigured)
	}
}

func TestSendUsesRelay(t *testing.T) {
	t.Parallel()

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	send := func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}
	cfg := config.SMTP{Host: "smtp.example.com", Port: "587", User: "me@example.com", Pass: "pw"}
	s := NewSMTPSender(cfg, send)
	err := s.Send(context.Background(), Message{Name: "Ada", Email: "ada@example.com", Message: "hello"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("addr = %q", gotAddr)
	}
	if len(gotTo) != 1 || gotTo[0] != "me@example.com" {
		t.Fatalf("to = %v, want the sender when TO_EMAIL is empty", gotTo)
	}
	if !strings.Contains(gotMsg, "Reply-To: ada@example.com\r\n") || !strings.Contains(gotMsg, "hello") {
		t.Fatalf("message = %q", gotMsg)
	}
}

func TestSendWrapsRelayError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	cfg := config.SMTP{Host: "h", Port: "25", User: "u", Pass: "p", To: "t@example.com"}
	s := NewSMTPSender(cfg, func(string, smtp.Auth, string, []string, []byte) error { return boom })
	if err := s.Send(context.Background(), Message{}); !errors.Is(err, boom) {
		t.Fatalf("Send() error = %v, want wrapped %v", err, boom)
	}
}

func TestComposeStripsHeaderInjection(t *testing.T) {
	t.Parallel()

	msg := string(Compose("me@example.com", "you@example.com", Message{
		Name:    "x\r\nBcc: evil@example.com",
		Email:   "a@b.c\nCc: other@example.com",
		Message: "line one\nline two",
	}))
	head, body, ok := strings.Cut(msg, "\r\n\r\n")
	if !ok {
		t.Fatalf("Compose() has no header/body separator: %q", msg)
	}
	if strings.Contains(head, "\r\nBcc:") || strings.Contains(head, "\nCc:") {
		t.Fatalf("Compose() headers allowed injection: %q", head)
	}
	if strings.Contains(body, "\r\nBcc:") || strings.Contains(body, "\nCc:") {
		t.Fatalf("Compose() body carries injected lines: %q", body)
	}
	if !strings.Contains(body, "Name: xBcc: evil@example.com\n") {
		t.Fatalf("Compose() body name = %q, want single line", body)
	}
	if !strings.Contains(body, "line one\nline two") {
		t.Fatalf("Compose() body lost message line breaks: %q", body)
	}
}
