// Package mail delivers rendered reports by email. Two channels exist: the
// Resend HTTPS API (primary) and authenticated SMTP with STARTTLS (secondary).
// The dispatcher tries each configured channel at most once per message.
package mail

import "context"

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Channel is a single delivery mechanism.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}
