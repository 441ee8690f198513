package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/repository"
)

var _ repository.ChatSessionRepository = (*chatSessionRepo)(nil)

type chatSessionRepo struct{ pool *pgxpool.Pool }

func NewChatSessionRepo(pool *pgxpool.Pool) *chatSessionRepo {
	return &chatSessionRepo{pool: pool}
}

func (r *chatSessionRepo) FindOpenByUser(ctx context.Context, tx repository.Tx, userID string) (*model.ChatSession, error) {
	const q = `SELECT id, user_id, open, created_at, updated_at FROM chat_sessions WHERE user_id=$1 AND open ORDER BY created_at DESC LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	s := &model.ChatSession{}
	if err := row.Scan(&s.ID, &s.UserID, &s.Open, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return s, nil
}

func (r *chatSessionRepo) SaveSession(ctx context.Context, tx repository.Tx, s *model.ChatSession) error {
	const q = `
INSERT INTO chat_sessions (id, user_id, open, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET open=$3, updated_at=$5;`
	_, err := execSQL(ctx, r.pool, tx, q, s.ID, s.UserID, s.Open, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *chatSessionRepo) AppendMessage(ctx context.Context, tx repository.Tx, m *model.ChatMessage) error {
	const q = `INSERT INTO chat_messages (id, session_id, role, text, created_at) VALUES ($1,$2,$3,$4,$5);`
	_, err := execSQL(ctx, r.pool, tx, q, m.ID, m.SessionID, m.Role, m.Text, m.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *chatSessionRepo) ListMessages(ctx context.Context, tx repository.Tx, sessionID string, limit int) ([]*model.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	// Message ids are ULIDs; id ordering is chronological.
	const q = `SELECT id, session_id, role, text, created_at FROM chat_messages WHERE session_id=$1 ORDER BY id DESC LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, sessionID, limit)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.ChatMessage
	for rows.Next() {
		m := new(model.ChatMessage)
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Text, &m.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, m)
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
