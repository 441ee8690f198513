package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/adapter"
	"study-notes-backend/internal/domain/ports/repository"
)

// RateLimiter caps the number of events per key inside a rolling window.
// Allow reports false when the caller is over the limit.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

var _ ChatUseCase = (*chatUC)(nil)

type ChatUseCase interface {
	// SendMessage appends a user message to the user's open session,
	// creating the session if needed, and notifies the support staff.
	SendMessage(ctx context.Context, userID, text string) (*model.ChatMessage, error)
	// SupportReply appends a staff reply into an existing session.
	SupportReply(ctx context.Context, sessionID, text string) (*model.ChatMessage, error)
	History(ctx context.Context, userID string, limit int) (*model.ChatSession, []*model.ChatMessage, error)
	CloseSession(ctx context.Context, userID string) error
}

type chatUC struct {
	sessions repository.ChatSessionRepository
	limiter  RateLimiter
	notifier adapter.SupportNotifier
	pageSize int
	log      *zerolog.Logger
}

func NewChatUseCase(sessions repository.ChatSessionRepository, limiter RateLimiter, notifier adapter.SupportNotifier, pageSize int, logger *zerolog.Logger) *chatUC {
	l := logger.With().Str("component", "ChatUC").Logger()
	if pageSize <= 0 {
		pageSize = 50
	}
	return &chatUC{sessions: sessions, limiter: limiter, notifier: notifier, pageSize: pageSize, log: &l}
}

func (u *chatUC) SendMessage(ctx context.Context, userID, text string) (*model.ChatMessage, error) {
	if userID == "" || text == "" {
		return nil, domain.ErrInvalidArgument
	}
	if u.limiter != nil {
		ok, err := u.limiter.Allow(ctx, "chat:"+userID)
		if err != nil {
			// Limiter outage must not take chat down with it.
			u.log.Warn().Err(err).Str("user_id", userID).Msg("rate limiter unavailable, allowing message")
		} else if !ok {
			return nil, domain.ErrRateLimited
		}
	}

	sess, err := u.openSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	msg := &model.ChatMessage{
		ID:        ulid.Make().String(),
		SessionID: sess.ID,
		Role:      model.ChatRoleUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := u.sessions.AppendMessage(ctx, repository.NoTX, msg); err != nil {
		return nil, err
	}

	if u.notifier != nil {
		if err := u.notifier.NotifySupportMessage(ctx, userID, sess.ID, text); err != nil {
			u.log.Warn().Err(err).Str("session_id", sess.ID).Msg("support notification failed")
		}
	}
	return msg, nil
}

func (u *chatUC) SupportReply(ctx context.Context, sessionID, text string) (*model.ChatMessage, error) {
	if sessionID == "" || text == "" {
		return nil, domain.ErrInvalidArgument
	}
	msg := &model.ChatMessage{
		ID:        ulid.Make().String(),
		SessionID: sessionID,
		Role:      model.ChatRoleSupport,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := u.sessions.AppendMessage(ctx, repository.NoTX, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (u *chatUC) History(ctx context.Context, userID string, limit int) (*model.ChatSession, []*model.ChatMessage, error) {
	if userID == "" {
		return nil, nil, domain.ErrInvalidArgument
	}
	if limit <= 0 || limit > u.pageSize {
		limit = u.pageSize
	}
	sess, err := u.sessions.FindOpenByUser(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := u.sessions.ListMessages(ctx, repository.NoTX, sess.ID, limit)
	if err != nil {
		return nil, nil, err
	}
	return sess, msgs, nil
}

func (u *chatUC) CloseSession(ctx context.Context, userID string) error {
	sess, err := u.sessions.FindOpenByUser(ctx, repository.NoTX, userID)
	if err != nil {
		return err
	}
	sess.Open = false
	sess.UpdatedAt = time.Now()
	return u.sessions.SaveSession(ctx, repository.NoTX, sess)
}

func (u *chatUC) openSession(ctx context.Context, userID string) (*model.ChatSession, error) {
	sess, err := u.sessions.FindOpenByUser(ctx, repository.NoTX, userID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := time.Now()
	sess = &model.ChatSession{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Open:      true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.sessions.SaveSession(ctx, repository.NoTX, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
