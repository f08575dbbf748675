package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
)

// LogMailer writes messages to the log instead of delivering them. Used when
// MAIL_URL is not set, so the reset flow stays usable in development.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send implements ports.Mailer.
func (m *LogMailer) Send(ctx context.Context, msg ports.Message) error {
	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("mail delivery skipped (no MAIL_URL); message logged")
	m.log.Debug().Str("body", msg.Body).Msg("mail body")
	return nil
}

var _ ports.Mailer = (*LogMailer)(nil)
