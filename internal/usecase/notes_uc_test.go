//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/adapter"
	"study-notes-backend/internal/usecase"
)

type notesUCTestDeps struct {
	jobs *MockNotesJobRepo
	ai   *MockAI
	uc   usecase.NotesUseCase
}

func newNotesUCDeps() *notesUCTestDeps {
	d := &notesUCTestDeps{
		jobs: NewMockNotesJobRepo(),
		ai:   &MockAI{},
	}
	d.uc = usecase.NewNotesUseCase(d.jobs, d.ai, "gpt-4o-mini", newTestLogger())
	return d
}

func TestNotesUC_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("queues a pending job with the default model", func(t *testing.T) {
		d := newNotesUCDeps()
		job, err := d.uc.Submit(ctx, "user-1", "Mathematics", "Limits", "", "")
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if job.Status != model.NotesJobStatusPending {
			t.Errorf("status = %s, want pending", job.Status)
		}
		if job.Model != "gpt-4o-mini" {
			t.Errorf("model = %q, want the default", job.Model)
		}
		if job.ID == "" {
			t.Errorf("job id must be assigned on submit")
		}
		if d.jobs.Get(job.ID) == nil {
			t.Errorf("job was not persisted")
		}
	})

	t.Run("missing topic is rejected", func(t *testing.T) {
		d := newNotesUCDeps()
		if _, err := d.uc.Submit(ctx, "user-1", "Mathematics", "", "", ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("err = %v, want ErrInvalidArgument", err)
		}
	})
}

func TestNotesUC_ProcessNext(t *testing.T) {
	ctx := context.Background()

	t.Run("empty queue reports false", func(t *testing.T) {
		d := newNotesUCDeps()
		processed, err := d.uc.ProcessNext(ctx)
		if err != nil {
			t.Fatalf("ProcessNext: %v", err)
		}
		if processed {
			t.Errorf("processed = true on an empty queue")
		}
	})

	t.Run("completes the job and stores the result", func(t *testing.T) {
		d := newNotesUCDeps()
		job, err := d.uc.Submit(ctx, "user-1", "Mathematics", "Limits", "", "")
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}

		processed, err := d.uc.ProcessNext(ctx)
		if err != nil {
			t.Fatalf("ProcessNext: %v", err)
		}
		if !processed {
			t.Fatalf("processed = false with a pending job queued")
		}
		stored := d.jobs.Get(job.ID)
		if stored.Status != model.NotesJobStatusCompleted {
			t.Errorf("status = %s, want completed", stored.Status)
		}
		if stored.Result == "" {
			t.Errorf("result is empty after completion")
		}
	})

	t.Run("claims jobs oldest first", func(t *testing.T) {
		d := newNotesUCDeps()
		first, _ := d.uc.Submit(ctx, "user-1", "", "Limits", "", "")
		second, _ := d.uc.Submit(ctx, "user-1", "", "Derivatives", "", "")

		if _, err := d.uc.ProcessNext(ctx); err != nil {
			t.Fatalf("ProcessNext: %v", err)
		}
		if d.jobs.Get(first.ID).Status != model.NotesJobStatusCompleted {
			t.Errorf("oldest job was not processed first")
		}
		if d.jobs.Get(second.ID).Status != model.NotesJobStatusPending {
			t.Errorf("newer job should still be pending")
		}
	})

	t.Run("retries transient failures before succeeding", func(t *testing.T) {
		d := newNotesUCDeps()
		job, _ := d.uc.Submit(ctx, "user-1", "", "Limits", "", "")

		attempts := 0
		d.ai.GenerateWithUsageFunc = func(ctx context.Context, model string, msgs []adapter.Message) (string, adapter.Usage, error) {
			attempts++
			if attempts < 2 {
				return "", adapter.Usage{}, errors.New("upstream timeout")
			}
			return "# Notes", adapter.Usage{TotalTokens: 30}, nil
		}

		if _, err := d.uc.ProcessNext(ctx); err != nil {
			t.Fatalf("ProcessNext: %v", err)
		}
		if attempts != 2 {
			t.Errorf("attempts = %d, want 2", attempts)
		}
		if d.jobs.Get(job.ID).Status != model.NotesJobStatusCompleted {
			t.Errorf("job should complete after a retry")
		}
	})

	t.Run("exhausted retries fail the job with the last error", func(t *testing.T) {
		d := newNotesUCDeps()
		job, _ := d.uc.Submit(ctx, "user-1", "", "Limits", "", "")

		genErr := errors.New("model overloaded")
		d.ai.GenerateWithUsageFunc = func(ctx context.Context, model string, msgs []adapter.Message) (string, adapter.Usage, error) {
			return "", adapter.Usage{}, genErr
		}

		if _, err := d.uc.ProcessNext(ctx); err != nil {
			t.Fatalf("ProcessNext: %v", err)
		}
		stored := d.jobs.Get(job.ID)
		if stored.Status != model.NotesJobStatusFailed {
			t.Errorf("status = %s, want failed", stored.Status)
		}
		if stored.LastError != genErr.Error() {
			t.Errorf("last error = %q, want %q", stored.LastError, genErr.Error())
		}
	})
}

func TestNotesUC_ListByUser(t *testing.T) {
	ctx := context.Background()
	d := newNotesUCDeps()
	if _, err := d.uc.Submit(ctx, "user-1", "", "Limits", "", ""); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := d.uc.Submit(ctx, "user-2", "", "Optics", "", ""); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	jobs, err := d.uc.ListByUser(ctx, "user-1", 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(jobs) != 1 || jobs[0].UserID != "user-1" {
		t.Errorf("unexpected listing: %+v", jobs)
	}
}
