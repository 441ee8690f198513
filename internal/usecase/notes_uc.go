package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/adapter"
	"study-notes-backend/internal/domain/ports/repository"
	"study-notes-backend/internal/infra/metrics"
)

const maxNotesRetries = 2

// Compile-time check
var _ NotesUseCase = (*notesUC)(nil)

type NotesUseCase interface {
	// Submit queues a notes-generation job and returns it in pending state.
	Submit(ctx context.Context, userID, subject, topic, prompt, modelName string) (*model.NotesJob, error)
	// ProcessNext claims the oldest pending job and runs it to completion
	// (or failure). Reports false when the queue was empty. Called by the
	// worker pool, never by request handlers.
	ProcessNext(ctx context.Context) (bool, error)
	Get(ctx context.Context, jobID string) (*model.NotesJob, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.NotesJob, error)
}

type notesUC struct {
	jobs         repository.NotesJobRepository
	ai           adapter.AIServiceAdapter
	defaultModel string
	log          *zerolog.Logger
}

func NewNotesUseCase(jobs repository.NotesJobRepository, ai adapter.AIServiceAdapter, defaultModel string, logger *zerolog.Logger) *notesUC {
	l := logger.With().Str("component", "NotesUC").Logger()
	return &notesUC{jobs: jobs, ai: ai, defaultModel: defaultModel, log: &l}
}

func (u *notesUC) Submit(ctx context.Context, userID, subject, topic, prompt, modelName string) (*model.NotesJob, error) {
	if userID == "" || topic == "" {
		return nil, domain.ErrInvalidArgument
	}
	if modelName == "" {
		modelName = u.defaultModel
	}

	now := time.Now()
	job := &model.NotesJob{
		ID:           ulid.Make().String(),
		UserID:       userID,
		Subject:      subject,
		Topic:        topic,
		Prompt:       prompt,
		Model:        modelName,
		Status:       model.NotesJobStatusPending,
		PromptTokens: countPromptTokens(ctx, u.ai, modelName, buildNotesMessages(subject, topic, prompt)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.jobs.Save(ctx, repository.NoTX, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (u *notesUC) ProcessNext(ctx context.Context) (bool, error) {
	job, err := u.jobs.FetchAndMarkProcessing(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, u.run(ctx, job)
}

func (u *notesUC) run(ctx context.Context, job *model.NotesJob) error {
	messages := buildNotesMessages(job.Subject, job.Topic, job.Prompt)

	var lastErr error
	for attempt := 0; attempt <= maxNotesRetries; attempt++ {
		start := time.Now()
		text, usage, err := u.ai.GenerateWithUsage(ctx, job.Model, messages)
		latency := int(time.Since(start).Milliseconds())
		if err == nil {
			metrics.ObserveNotesUsage("ai", job.Model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens, latency, true)
			metrics.IncNotesJob(string(model.NotesJobStatusCompleted))
			return u.jobs.UpdateStatus(ctx, repository.NoTX, job.ID, model.NotesJobStatusCompleted, text, "")
		}
		metrics.ObserveNotesUsage("ai", job.Model, 0, 0, 0, latency, false)
		lastErr = err
		u.log.Warn().Err(err).Str("job_id", job.ID).Int("attempt", attempt+1).Msg("notes generation attempt failed")
	}

	metrics.IncNotesJob(string(model.NotesJobStatusFailed))
	return u.jobs.UpdateStatus(ctx, repository.NoTX, job.ID, model.NotesJobStatusFailed, "", lastErr.Error())
}

func (u *notesUC) Get(ctx context.Context, jobID string) (*model.NotesJob, error) {
	return u.jobs.FindByID(ctx, repository.NoTX, jobID)
}

func (u *notesUC) ListByUser(ctx context.Context, userID string, limit int) ([]*model.NotesJob, error) {
	return u.jobs.ListByUser(ctx, repository.NoTX, userID, limit)
}

func buildNotesMessages(subject, topic, prompt string) []adapter.Message {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write structured revision notes on %q", topic)
	if subject != "" {
		fmt.Fprintf(&sb, " for the subject %q", subject)
	}
	sb.WriteString(". Use headings, short bullet points and worked examples where relevant.")
	if prompt != "" {
		sb.WriteString(" Additional instructions: ")
		sb.WriteString(prompt)
	}
	return []adapter.Message{
		{Role: "system", Content: "You are a study-notes author for exam preparation. Be concise and factual."},
		{Role: "user", Content: sb.String()},
	}
}

// countPromptTokens prefers exact local counting via tiktoken and falls back
// to the provider's counter for models tiktoken does not know.
func countPromptTokens(ctx context.Context, ai adapter.AIServiceAdapter, modelName string, messages []adapter.Message) int {
	if enc, err := tiktoken.EncodingForModel(modelName); err == nil {
		n := 0
		for _, m := range messages {
			n += len(enc.Encode(m.Content, nil, nil))
		}
		return n
	}
	if n, err := ai.CountTokens(ctx, modelName, messages); err == nil {
		return n
	}
	return 0
}
