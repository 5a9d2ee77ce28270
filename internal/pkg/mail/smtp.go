package mail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

var (
	// ErrSMTPHostPortRequired is returned when Host/Port are missing.
	ErrSMTPHostPortRequired = errors.New("smtp host and port are required")
	// ErrSMTPNoRecipients is returned when Message.To is empty.
	ErrSMTPNoRecipients = errors.New("no recipients provided")
	// ErrSMTPNoSender is returned when both Message.From and the configured default From are empty.
	ErrSMTPNoSender = errors.New("no sender provided")
)

// SMTP is a Mail implementation backed by net/smtp.
type SMTP struct {
	addr        string
	defaultFrom string
	auth        smtp.Auth
}

// SMTPConfig configures the SMTP implementation.
type SMTPConfig struct {
	// Host is the SMTP server hostname.
	Host string
	// Port is the SMTP server port.
	Port int
	// Username is the SMTP authentication username.
	Username string
	// Password is the SMTP authentication password.
	Password string
	// From is the default sender when Message.From is empty.
	From string
}

// NewSMTP constructs an SMTP mail sender. Auth is optional; servers without
// credentials work for local development relays.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTP{
		addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		defaultFrom: cfg.From,
		auth:        auth,
	}, nil
}

// Send delivers a message over SMTP.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return ErrSMTPNoRecipients
	}

	from := msg.From
	if from == "" {
		from = s.defaultFrom
	}
	if from == "" {
		return ErrSMTPNoSender
	}

	raw := encodeMessage(from, msg)

	if err := ctx.Err(); err != nil {
		return err
	}
	return smtp.SendMail(s.addr, s.auth, from, msg.To, raw)
}

// Close implements io.Closer for interface compatibility.
func (s *SMTP) Close() error {
	return nil
}

// encodeMessage renders the RFC 5322 wire form: headers, then the body. Both
// bodies present means a multipart/alternative payload so clients pick their
// preferred rendering.
func encodeMessage(from string, msg Message) []byte {
	var b strings.Builder

	writeHeader := func(key, value string) {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	}

	body, contentType := encodeBody(msg)

	writeHeader("From", from)
	writeHeader("To", strings.Join(msg.To, ", "))
	writeHeader("Subject", msg.Subject)
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", contentType)
	b.WriteString("\r\n")
	b.WriteString(body)

	return []byte(b.String())
}

func encodeBody(msg Message) (body string, contentType string) {
	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		boundary := mimeBoundary()

		var b strings.Builder
		b.WriteString("This is a multipart message in MIME format.\r\n")
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		b.WriteString(msg.TextBody)
		b.WriteString("\r\n")
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		b.WriteString(msg.HTMLBody)
		b.WriteString("\r\n")
		fmt.Fprintf(&b, "--%s--", boundary)

		return b.String(), fmt.Sprintf("multipart/alternative; boundary=%q", boundary)

	case msg.HTMLBody != "":
		return msg.HTMLBody, "text/html; charset=UTF-8"

	default:
		return msg.TextBody, "text/plain; charset=UTF-8"
	}
}

func mimeBoundary() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "mime-boundary-fallback"
	}
	return "mime-" + hex.EncodeToString(b[:])
}
