package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/ports/adapter"
)

var _ adapter.SupportNotifier = (*SupportNotifier)(nil)

// SupportNotifier forwards incoming support-chat messages into the staff
// Telegram group so agents see new questions without watching a dashboard.
type SupportNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zerolog.Logger
}

func NewSupportNotifier(token string, chatID int64, logger *zerolog.Logger) (*SupportNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, domain.ErrConfiguration
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	l := logger.With().Str("component", "SupportNotifier").Logger()
	return &SupportNotifier{bot: bot, chatID: chatID, log: &l}, nil
}

func (n *SupportNotifier) NotifySupportMessage(ctx context.Context, userID, sessionID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("New support message\nuser: %s\nsession: %s\n\n%s", userID, sessionID, text))
	if _, err := n.bot.Send(msg); err != nil {
		n.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to notify support group")
		return fmt.Errorf("telegram send: %w", err)
	}
	n.log.Debug().Str("session_id", sessionID).Msg("support group notified")
	return nil
}
