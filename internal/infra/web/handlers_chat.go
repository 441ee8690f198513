package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/usecase"
)

type chatSendRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

func chatSendHandler(chatUC usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatSendRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		msg, err := chatUC.SendMessage(r.Context(), chi.URLParam(r, "userID"), req.Text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	}
}

func chatHistoryHandler(chatUC usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, limit := pageParams(r, 50)
		sess, msgs, err := chatUC.History(r.Context(), chi.URLParam(r, "userID"), limit)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// No open session yet reads as an empty history.
				writeJSON(w, http.StatusOK, struct {
					Messages []*model.ChatMessage `json:"messages"`
				}{Messages: []*model.ChatMessage{}})
				return
			}
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			SessionID string               `json:"session_id"`
			Messages  []*model.ChatMessage `json:"messages"`
		}{SessionID: sess.ID, Messages: msgs})
	}
}

type chatReplyRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Text      string `json:"text" validate:"required,max=4000"`
}

// chatReplyHandler is the staff-side endpoint, admin only.
func chatReplyHandler(chatUC usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatReplyRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		msg, err := chatUC.SupportReply(r.Context(), req.SessionID, req.Text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	}
}

func chatCloseHandler(chatUC usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := chatUC.CloseSession(r.Context(), chi.URLParam(r, "userID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
