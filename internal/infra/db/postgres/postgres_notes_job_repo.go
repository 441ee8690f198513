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

var _ repository.NotesJobRepository = (*notesJobRepo)(nil)

type notesJobRepo struct{ pool *pgxpool.Pool }

func NewNotesJobRepo(pool *pgxpool.Pool) *notesJobRepo {
	return &notesJobRepo{pool: pool}
}

const notesJobCols = `id, user_id, subject, topic, prompt, model, status, result, prompt_tokens, retries, last_error, created_at, updated_at`

func (r *notesJobRepo) Save(ctx context.Context, tx repository.Tx, j *model.NotesJob) error {
	const q = `
INSERT INTO notes_jobs (` + notesJobCols + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (id) DO UPDATE SET
  status=$7, result=$8, prompt_tokens=$9, retries=$10, last_error=$11, updated_at=$13;`

	_, err := execSQL(ctx, r.pool, tx, q, j.ID, j.UserID, j.Subject, j.Topic, j.Prompt, j.Model, j.Status, j.Result, j.PromptTokens, j.Retries, j.LastError, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *notesJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.NotesJob, error) {
	const q = `SELECT ` + notesJobCols + ` FROM notes_jobs WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	j := &model.NotesJob{}
	if err := row.Scan(&j.ID, &j.UserID, &j.Subject, &j.Topic, &j.Prompt, &j.Model, &j.Status, &j.Result, &j.PromptTokens, &j.Retries, &j.LastError, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return j, nil
}

func (r *notesJobRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.NotesJob, error) {
	if limit <= 0 {
		limit = 20
	}
	// ULID ids sort by creation time, so ORDER BY id DESC is newest-first.
	const q = `SELECT ` + notesJobCols + ` FROM notes_jobs WHERE user_id=$1 ORDER BY id DESC LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID, limit)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.NotesJob
	for rows.Next() {
		j := new(model.NotesJob)
		if err := rows.Scan(&j.ID, &j.UserID, &j.Subject, &j.Topic, &j.Prompt, &j.Model, &j.Status, &j.Result, &j.PromptTokens, &j.Retries, &j.LastError, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, j)
	}
	return out, nil
}

func (r *notesJobRepo) FetchAndMarkProcessing(ctx context.Context) (*model.NotesJob, error) {
	// SKIP LOCKED lets multiple workers poll without fighting over one row.
	const q = `
UPDATE notes_jobs SET status='processing', updated_at=NOW()
WHERE id = (
  SELECT id FROM notes_jobs WHERE status='pending' ORDER BY id LIMIT 1
  FOR UPDATE SKIP LOCKED
)
RETURNING ` + notesJobCols + `;`

	j := &model.NotesJob{}
	err := r.pool.QueryRow(ctx, q).Scan(&j.ID, &j.UserID, &j.Subject, &j.Topic, &j.Prompt, &j.Model, &j.Status, &j.Result, &j.PromptTokens, &j.Retries, &j.LastError, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return j, nil
}

func (r *notesJobRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.NotesJobStatus, result, lastError string) error {
	const q = `UPDATE notes_jobs SET status=$2, result=$3, last_error=$4, updated_at=NOW() WHERE id=$1;`
	_, err := execSQL(ctx, r.pool, tx, q, id, status, result, lastError)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}
