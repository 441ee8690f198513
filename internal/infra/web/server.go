package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"study-notes-backend/internal/config"
	"study-notes-backend/internal/usecase"
)

// Server owns the HTTP surface: the public API, the payment return/webhook
// path, and the JWT-guarded admin API.
type Server struct {
	cfg     *config.Config
	payUC   usecase.PaymentUseCase
	catUC   usecase.CatalogUseCase
	userUC  usecase.UserUseCase
	notesUC usecase.NotesUseCase
	chatUC  usecase.ChatUseCase
	auth    *AuthManager
	log     *zerolog.Logger

	srv *http.Server
}

func NewServer(
	cfg *config.Config,
	payUC usecase.PaymentUseCase,
	catUC usecase.CatalogUseCase,
	userUC usecase.UserUseCase,
	notesUC usecase.NotesUseCase,
	chatUC usecase.ChatUseCase,
	logger *zerolog.Logger,
) *Server {
	l := logger.With().Str("component", "WebServer").Logger()
	return &Server{
		cfg:     cfg,
		payUC:   payUC,
		catUC:   catUC,
		userUC:  userUC,
		notesUC: notesUC,
		chatUC:  chatUC,
		auth:    NewAuthManager(cfg.Admin.JWTSecret, !cfg.Runtime.Dev, cfg.Admin.TokenTTL),
		log:     &l,
	}
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(TraceID())
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))
	r.Use(Metrics())
	r.Use(Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// payments
		r.Post("/create-order", createOrderHandler(s.payUC))
		r.Get("/get-payment-status", getPaymentStatusHandler(s.payUC))
		r.Get("/payment-status", paymentReturnHandler(s.payUC))
		r.Post("/payment-status", paymentReturnHandler(s.payUC))

		// catalog browse
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/subjects", subjectsListHandler(s.catUC))
			r.Get("/subjects/{subjectID}/topics", topicsListHandler(s.catUC))
			r.Get("/topics/{topicID}/folders", foldersListHandler(s.catUC))
			r.Get("/folders/{folderID}/pdfs", pdfsListHandler(s.catUC))
			r.Get("/combos", combosListHandler(s.catUC))
			r.Get("/items/{itemID}", itemGetHandler(s.catUC))
		})

		// users
		r.Post("/users", userRegisterHandler(s.userUC))
		r.Get("/users/{userID}", userGetHandler(s.userUC))
		r.Get("/users/{userID}/library", libraryHandler(s.catUC))

		// notes generation
		r.Post("/notes", notesSubmitHandler(s.notesUC))
		r.Get("/notes/{jobID}", notesGetHandler(s.notesUC))
		r.Get("/users/{userID}/notes", notesListHandler(s.notesUC))

		// support chat
		r.Post("/chat/{userID}/messages", chatSendHandler(s.chatUC))
		r.Get("/chat/{userID}/messages", chatHistoryHandler(s.chatUC))

		// admin
		r.Post("/admin/login", adminLoginHandler(s.auth, s.cfg.Admin.APIKey))
		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAdmin)
			r.Post("/sync-transactions", syncTransactionsHandler(s.payUC))
			r.Post("/admin/logout", adminLogoutHandler(s.auth))
			r.Get("/admin/stats", adminStatsHandler(s.payUC, s.userUC))
			r.Get("/admin/users", adminUsersListHandler(s.userUC))
			r.Post("/admin/subjects", subjectCreateHandler(s.catUC))
			r.Post("/admin/topics", topicCreateHandler(s.catUC))
			r.Post("/admin/folders", folderCreateHandler(s.catUC))
			r.Post("/admin/pdfs", pdfSaveHandler(s.catUC))
			r.Delete("/admin/pdfs/{pdfID}", pdfDeleteHandler(s.catUC))
			r.Post("/admin/combos", comboSaveHandler(s.catUC))
			r.Delete("/admin/combos/{comboID}", comboDeleteHandler(s.catUC))
			r.Post("/admin/chat/reply", chatReplyHandler(s.chatUC))
			r.Post("/admin/chat/{userID}/close", chatCloseHandler(s.chatUC))
		})
	})

	return r
}

func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Int("port", s.cfg.Server.Port).Msg("http server listening")
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
