package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/repository"
	"study-notes-backend/internal/infra/logging"
)

var _ UserUseCase = (*userUC)(nil)

type UserUseCase interface {
	// Register creates the user on first sight and refreshes the profile on
	// every subsequent call.
	Register(ctx context.Context, id, email, name, phone string) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, offset, limit int) ([]*model.User, error)
	Count(ctx context.Context) (int, error)
}

type userUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, logger *zerolog.Logger) *userUC {
	l := logger.With().Str("component", "UserUC").Logger()
	return &userUC{users: users, log: &l}
}

func (u *userUC) Register(ctx context.Context, id, email, name, phone string) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.Register")()
	existing, err := u.users.FindByID(ctx, repository.NoTX, id)
	if err == nil {
		existing.Email = email
		if name != "" {
			existing.Name = name
		}
		if phone != "" {
			existing.Phone = phone
		}
		existing.Touch()
		if err := u.users.Save(ctx, repository.NoTX, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	user, err := model.NewUser(id, email, name, phone)
	if err != nil {
		return nil, err
	}
	if err := u.users.Save(ctx, repository.NoTX, user); err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", id).Msg("user registered")
	return user, nil
}

func (u *userUC) Get(ctx context.Context, id string) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.Get")()
	return u.users.FindByID(ctx, repository.NoTX, id)
}

func (u *userUC) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	return u.users.List(ctx, repository.NoTX, offset, limit)
}

func (u *userUC) Count(ctx context.Context) (int, error) {
	defer logging.TraceDuration(u.log, "UserUC.Count")()
	return u.users.Count(ctx, repository.NoTX)
}
