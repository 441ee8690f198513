package web

import (
	"net/http"
	"net/url"

	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/usecase"
)

type createOrderRequest struct {
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id" validate:"required"`
	UserEmail string `json:"user_email" validate:"required,email"`
	UserPhone string `json:"user_phone"`
	UserName  string `json:"user_name"`
	ItemID    string `json:"item_id" validate:"required"`
	ItemType  string `json:"item_type" validate:"required,oneof=combo pdf"`
}

func createOrderHandler(payUC usecase.PaymentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}

		orderID, sessionID, err := payUC.CreateOrder(r.Context(), usecase.CreateOrderInput{
			OrderID:   req.OrderID,
			UserID:    req.UserID,
			UserEmail: req.UserEmail,
			UserPhone: req.UserPhone,
			UserName:  req.UserName,
			ItemID:    req.ItemID,
			ItemType:  model.ItemType(req.ItemType),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			OrderID          string `json:"order_id"`
			PaymentSessionID string `json:"payment_session_id"`
		}{OrderID: orderID, PaymentSessionID: sessionID})
	}
}

// getPaymentStatusHandler is the client polling endpoint. It reconciles
// against the gateway before answering, so the reported status is
// authoritative even when the webhook never arrived.
func getPaymentStatusHandler(payUC usecase.PaymentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.URL.Query().Get("order_id")
		if orderID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "order_id is required"})
			return
		}

		intent, err := payUC.Reconcile(r.Context(), orderID, usecase.PathPoll)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, struct {
			OrderID string `json:"order_id"`
			Status  string `json:"status"`
		}{OrderID: intent.OrderID, Status: string(intent.Status)})
	}
}

// paymentReturnHandler serves both the gateway webhook (POST) and the browser
// redirect (GET) on the same path. Either way the order is reconciled
// server-side and the browser is bounced to the home page; any
// client-supplied status parameter is ignored.
func paymentReturnHandler(payUC usecase.PaymentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.URL.Query().Get("order_id")
		if orderID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "order_id is required"})
			return
		}

		path := usecase.PathRedirect
		if r.Method == http.MethodPost {
			path = usecase.PathWebhook
		}

		intent, err := payUC.Reconcile(r.Context(), orderID, path)
		if err != nil {
			if path == usecase.PathWebhook {
				writeError(w, err)
				return
			}
			http.Redirect(w, r, "/home?payment=error", http.StatusSeeOther)
			return
		}

		if path == usecase.PathWebhook {
			writeJSON(w, http.StatusOK, struct {
				Status string `json:"status"`
			}{Status: string(intent.Status)})
			return
		}
		http.Redirect(w, r, "/home?payment="+url.QueryEscape(string(intent.Status)), http.StatusSeeOther)
	}
}

func syncTransactionsHandler(payUC usecase.PaymentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := payUC.SyncTransactions(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			SyncedCount int `json:"syncedCount"`
		}{SyncedCount: n})
	}
}
