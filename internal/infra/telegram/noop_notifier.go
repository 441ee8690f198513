package telegram

import (
	"context"

	"github.com/rs/zerolog"

	"study-notes-backend/internal/domain/ports/adapter"
)

var _ adapter.SupportNotifier = (*NoopNotifier)(nil)

// NoopNotifier logs instead of sending. Used in dev or when no token is set.
type NoopNotifier struct {
	log *zerolog.Logger
}

func NewNoopNotifier(logger *zerolog.Logger) *NoopNotifier {
	l := logger.With().Str("component", "NoopNotifier").Logger()
	return &NoopNotifier{log: &l}
}

func (n *NoopNotifier) NotifySupportMessage(_ context.Context, userID, sessionID, text string) error {
	n.log.Info().Str("user_id", userID).Str("session_id", sessionID).Str("text", text).
		Msg("support message (noop notifier)")
	return nil
}
