package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/usecase"
)

func subjectsListHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjects, err := catUC.ListSubjects(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data []*model.Subject `json:"data"`
		}{Data: subjects})
	}
}

func topicsListHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics, err := catUC.ListTopics(r.Context(), chi.URLParam(r, "subjectID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data []*model.Topic `json:"data"`
		}{Data: topics})
	}
}

func foldersListHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folders, err := catUC.ListFolders(r.Context(), chi.URLParam(r, "topicID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data []*model.Folder `json:"data"`
		}{Data: folders})
	}
}

func pdfsListHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pdfs, err := catUC.ListPDFs(r.Context(), chi.URLParam(r, "folderID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data []*model.PdfDocument `json:"data"`
		}{Data: pdfs})
	}
}

func combosListHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		combos, err := catUC.ListCombos(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data []*model.Combo `json:"data"`
		}{Data: combos})
	}
}

func itemGetHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemType := model.ItemType(r.URL.Query().Get("type"))
		if itemType == "" {
			itemType = model.ItemTypePDF
		}
		item, err := catUC.GetItem(r.Context(), chi.URLParam(r, "itemID"), itemType)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func libraryHandler(catUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := catUC.Library(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if items == nil {
			items = []string{}
		}
		writeJSON(w, http.StatusOK, struct {
			PurchasedItems []string `json:"purchased_items"`
		}{PurchasedItems: items})
	}
}

type registerUserRequest struct {
	ID    string `json:"id"`
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func userRegisterHandler(userUC usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerUserRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		user, err := userUC.Register(r.Context(), req.ID, req.Email, req.Name, req.Phone)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

func userGetHandler(userUC usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := userUC.Get(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
