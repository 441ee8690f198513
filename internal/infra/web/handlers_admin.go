package web

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/repository"
	"study-notes-backend/internal/usecase"
)

type adminLoginRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

func adminLoginHandler(auth *AuthManager, apiKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminLoginRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(apiKey)) != 1 {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		token, err := auth.Mint(w)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Token string `json:"token"`
		}{Token: token})
	}
}

func adminLogoutHandler(auth *AuthManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth.Clear(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// adminStatsHandler consolidates the admin dashboard numbers.
func adminStatsHandler(payUC usecase.PaymentUseCase, userUC usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		users, err := userUC.Count(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		week, err := payUC.SumByPeriod(ctx, repository.NoTX, "week")
		if err != nil {
			writeError(w, err)
			return
		}
		month, err := payUC.SumByPeriod(ctx, repository.NoTX, "month")
		if err != nil {
			writeError(w, err)
			return
		}
		year, err := payUC.SumByPeriod(ctx, repository.NoTX, "year")
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, struct {
			TotalUsers int `json:"total_users"`
			RevenueINR struct {
				Week  int64 `json:"week"`
				Month int64 `json:"month"`
				Year  int64 `json:"year"`
			} `json:"revenue_inr"`
		}{
			TotalUsers: users,
			RevenueINR: struct {
				Week  int64 `json:"week"`
				Month int64 `json:"month"`
				Year  int64 `json:"year"`
			}{Week: week, Month: month, Year: year},
		})
	}
}

func adminUsersListHandler(userUC usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := pageParams(r, 50)
		users, err := userUC.List(r.Context(), offset, limit)
		if err != nil {
			writeError(w, err)
			return
		}
		total, err := userUC.Count(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data   []*model.User `json:"data"`
			Total  int           `json:"total"`
			Limit  int           `json:"limit"`
			Offset int           `json:"offset"`
		}{Data: users, Total: total, Limit: limit, Offset: offset})
	}
}

type subjectCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Position int    `json:"position"`
}

func subjectCreateHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req subjectCreateRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		s, err := catUC.CreateSubject(r.Context(), req.Name, req.Position)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, s)
	}
}

type topicCreateRequest struct {
	SubjectID string `json:"subject_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Position  int    `json:"position"`
}

func topicCreateHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req topicCreateRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		t, err := catUC.CreateTopic(r.Context(), req.SubjectID, req.Name, req.Position)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

type folderCreateRequest struct {
	TopicID  string `json:"topic_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Position int    `json:"position"`
}

func folderCreateHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req folderCreateRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		f, err := catUC.CreateFolder(r.Context(), req.TopicID, req.Name, req.Position)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, f)
	}
}

type pdfSaveRequest struct {
	ID         string `json:"id"`
	FolderID   string `json:"folder_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	FileURL    string `json:"file_url" validate:"required,url"`
	AccessType string `json:"access_type" validate:"required,oneof=Free Paid"`
	Price      string `json:"price"`
}

func pdfSaveHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pdfSaveRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		price, err := parsePrice(req.Price)
		if err != nil {
			writeError(w, err)
			return
		}
		doc := &model.PdfDocument{
			ID:         req.ID,
			FolderID:   req.FolderID,
			Name:       req.Name,
			FileURL:    req.FileURL,
			AccessType: model.AccessType(req.AccessType),
			Price:      price,
		}
		if err := catUC.SavePDF(r.Context(), doc); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, doc)
	}
}

type comboSaveRequest struct {
	ID         string   `json:"id"`
	Name       string   `json:"name" validate:"required"`
	PdfIDs     []string `json:"pdf_ids" validate:"required,min=1"`
	AccessType string   `json:"access_type" validate:"required,oneof=Free Paid"`
	Price      string   `json:"price"`
}

func comboSaveHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req comboSaveRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		price, err := parsePrice(req.Price)
		if err != nil {
			writeError(w, err)
			return
		}
		combo := &model.Combo{
			ID:         req.ID,
			Name:       req.Name,
			PdfIDs:     req.PdfIDs,
			AccessType: model.AccessType(req.AccessType),
			Price:      price,
		}
		if err := catUC.SaveCombo(r.Context(), combo); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, combo)
	}
}

func pdfDeleteHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := catUC.DeletePDF(r.Context(), chi.URLParam(r, "pdfID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func comboDeleteHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := catUC.DeleteCombo(r.Context(), chi.URLParam(r, "comboID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.ErrValidation
	}
	return d, nil
}

func pageParams(r *http.Request, defaultLimit int) (offset, limit int) {
	q := r.URL.Query()
	offset = atoiOrZero(q.Get("offset"))
	limit = atoiOrZero(q.Get("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
