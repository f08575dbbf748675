package ports

import "context"

// Message is an outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer delivers a message all-or-nothing. A returned error means nothing
// was sent; partial delivery does not exist at this boundary.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
