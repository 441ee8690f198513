package repository

import (
	"context"

	"study-notes-backend/internal/domain/model"
)

type NotesJobRepository interface {
	Save(ctx context.Context, tx Tx, j *model.NotesJob) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.NotesJob, error)
	ListByUser(ctx context.Context, tx Tx, userID string, limit int) ([]*model.NotesJob, error)
	// FetchAndMarkProcessing atomically claims the oldest pending job.
	// Returns domain.ErrNotFound when the queue is empty.
	FetchAndMarkProcessing(ctx context.Context) (*model.NotesJob, error)
	UpdateStatus(ctx context.Context, tx Tx, id string, status model.NotesJobStatus, result, lastError string) error
}
