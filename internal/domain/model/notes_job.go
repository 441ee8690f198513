package model

import "time"

type NotesJobStatus string

const (
	NotesJobStatusPending    NotesJobStatus = "pending"
	NotesJobStatusProcessing NotesJobStatus = "processing"
	NotesJobStatusCompleted  NotesJobStatus = "completed"
	NotesJobStatusFailed     NotesJobStatus = "failed"
)

// NotesJob is one AI notes-generation request. IDs are ULIDs so job listings
// sort by creation time.
type NotesJob struct {
	ID           string
	UserID       string
	Subject      string
	Topic        string
	Prompt       string
	Model        string
	Status       NotesJobStatus
	Result       string
	PromptTokens int
	Retries      int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
