package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"brief-service/pkg/config"
)

// SMTPChannel sends through an authenticated SMTP relay upgraded to TLS with
// STARTTLS. It is the secondary channel, used when Resend is unavailable or
// fails.
type SMTPChannel struct {
	host     string
	port     int
	user     string
	password string
}

// NewSMTPChannel builds the secondary channel from config. Returns nil when
// credentials are missing; the dispatcher skips nil channels.
func NewSMTPChannel(cfg *config.MailConfig) *SMTPChannel {
	if cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
		return nil
	}
	return &SMTPChannel{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
	}
}

func (c *SMTPChannel) Name() string { return "smtp" }

// Send delivers the message over SMTP. smtp.SendMail negotiates STARTTLS when
// the server advertises it. SendMail has no context support, so the exchange
// runs in a goroutine and the caller's deadline cuts the wait, not the socket.
func (c *SMTPChannel) Send(ctx context.Context, msg Message) error {
	addr := net.JoinHostPort(c.host, fmt.Sprintf("%d", c.port))
	auth := smtp.PlainAuth("", c.user, c.password, c.host)

	var payload strings.Builder
	fmt.Fprintf(&payload, "From: %s\r\n", c.user)
	fmt.Fprintf(&payload, "To: %s\r\n", msg.To)
	fmt.Fprintf(&payload, "Subject: %s\r\n", msg.Subject)
	payload.WriteString("MIME-Version: 1.0\r\n")
	payload.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	payload.WriteString("\r\n")
	payload.WriteString(msg.Body)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, c.user, []string{msg.To}, []byte(payload.String()))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
