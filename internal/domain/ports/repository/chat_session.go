package repository

import (
	"context"

	"study-notes-backend/internal/domain/model"
)

type ChatSessionRepository interface {
	FindOpenByUser(ctx context.Context, tx Tx, userID string) (*model.ChatSession, error)
	SaveSession(ctx context.Context, tx Tx, s *model.ChatSession) error
	AppendMessage(ctx context.Context, tx Tx, m *model.ChatMessage) error
	ListMessages(ctx context.Context, tx Tx, sessionID string, limit int) ([]*model.ChatMessage, error)
}
