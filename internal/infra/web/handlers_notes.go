package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"study-notes-backend/internal/usecase"
)

type notesSubmitRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Subject string `json:"subject"`
	Topic   string `json:"topic" validate:"required"`
	Prompt  string `json:"prompt"`
	Model   string `json:"model"`
}

func notesSubmitHandler(notesUC usecase.NotesUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req notesSubmitRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		job, err := notesUC.Submit(r.Context(), req.UserID, req.Subject, req.Topic, req.Prompt, req.Model)
		if err != nil {
			writeError(w, err)
			return
		}
		// 202: the job completes asynchronously, poll GET /api/notes/{id}.
		writeJSON(w, http.StatusAccepted, job)
	}
}

func notesGetHandler(notesUC usecase.NotesUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := notesUC.Get(r.Context(), chi.URLParam(r, "jobID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, job)
	}
}

func notesListHandler(notesUC usecase.NotesUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, limit := pageParams(r, 20)
		jobs, err := notesUC.ListByUser(r.Context(), chi.URLParam(r, "userID"), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, jobs)
	}
}
