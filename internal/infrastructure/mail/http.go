package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
)

// HTTPMailer delivers mail through an HTTP delivery API via POST JSON.
// Delivery is all-or-nothing: a non-2xx response or transport error means
// nothing was sent.
type HTTPMailer struct {
	client  *http.Client
	url     string
	from    string
	headers map[string]string
}

// HTTPMailerOption configures HTTPMailer.
type HTTPMailerOption func(*HTTPMailer)

// WithClient sets the HTTP client (default: 10s timeout).
func WithClient(c *http.Client) HTTPMailerOption {
	return func(m *HTTPMailer) {
		m.client = c
	}
}

// WithHeader sets a header sent on every request (e.g. Authorization, X-API-Key).
func WithHeader(key, value string) HTTPMailerOption {
	return func(m *HTTPMailer) {
		if m.headers == nil {
			m.headers = make(map[string]string)
		}
		m.headers[key] = value
	}
}

// NewHTTPMailer returns a Mailer that POSTs the message as JSON to url.
func NewHTTPMailer(url, from string, opts ...HTTPMailerOption) *HTTPMailer {
	m := &HTTPMailer{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
		from:   from,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type outboundMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send implements ports.Mailer.
func (m *HTTPMailer) Send(ctx context.Context, msg ports.Message) error {
	body, err := json.Marshal(outboundMessage{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.Body,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range m.headers {
		req.Header.Set(k, v)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &sendError{status: resp.StatusCode}
	}
	return nil
}

type sendError struct {
	status int
}

func (e *sendError) Error() string {
	return "mail endpoint returned non-2xx status"
}

var _ ports.Mailer = (*HTTPMailer)(nil)
