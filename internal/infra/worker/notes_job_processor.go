package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"study-notes-backend/internal/usecase"
)

// NotesJobProcessor polls for pending notes jobs and hands them to the pool.
type NotesJobProcessor struct {
	notes    usecase.NotesUseCase
	interval time.Duration
	log      *zerolog.Logger
}

func NewNotesJobProcessor(notes usecase.NotesUseCase, interval time.Duration, logger *zerolog.Logger) *NotesJobProcessor {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	l := logger.With().Str("component", "NotesJobProcessor").Logger()
	return &NotesJobProcessor{notes: notes, interval: interval, log: &l}
}

// Start runs the polling loop. Should be run in a goroutine.
func (p *NotesJobProcessor) Start(ctx context.Context, pool *Pool) {
	p.log.Info().Msg("notes job processor started")
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("notes job processor stopping")
			return
		case <-ticker.C:
			_ = pool.Submit(func(ctx context.Context) error {
				// Drain the queue so a burst of submissions does not wait
				// one tick per job.
				for {
					processed, err := p.notes.ProcessNext(ctx)
					if err != nil {
						return err
					}
					if !processed {
						return nil
					}
				}
			})
		}
	}
}
