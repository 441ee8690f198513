package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"study-notes-backend/internal/config"
	"study-notes-backend/internal/domain/ports/adapter"
	aiAdapters "study-notes-backend/internal/infra/ai"
	pg "study-notes-backend/internal/infra/db/postgres"
	"study-notes-backend/internal/infra/logging"
	"study-notes-backend/internal/infra/metrics"
	payAdapters "study-notes-backend/internal/infra/payment"
	red "study-notes-backend/internal/infra/redis"
	"study-notes-backend/internal/infra/sched"
	tele "study-notes-backend/internal/infra/telegram"
	"study-notes-backend/internal/infra/web"
	"study-notes-backend/internal/infra/worker"
	"study-notes-backend/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop gateway and AI)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, int32(cfg.Database.MaxConns))
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient, cfg.Chat.RateLimit, cfg.Chat.RateWindow)
	catalogCache := red.NewCatalogCache(redisClient, logger)
	locker := red.NewLocker(redisClient)

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool)
	payRepo := pg.NewPaymentIntentRepo(pool)
	catalogRepo := pg.NewCatalogRepo(pool)
	notesRepo := pg.NewNotesJobRepo(pool)
	chatRepo := pg.NewChatSessionRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Payment gateway ----
	var gateway adapter.PaymentGateway
	if cfg.Runtime.Dev {
		gateway = payAdapters.NewNoopGateway()
		logger.Warn().Msg("payment gateway: noop (dev)")
	} else {
		gateway, err = payAdapters.NewCashfreeGateway(cfg.Gateway.ClientID, cfg.Gateway.ClientSecret, cfg.Gateway.Sandbox)
		if err != nil {
			logger.Fatal().Err(err).Msg("cashfree gateway init failed")
		}
	}

	// ---- AI adapter (OpenAI -> Gemini -> noop in dev) ----
	var ai adapter.AIServiceAdapter
	switch {
	case cfg.AI.OpenAIKey != "":
		ai, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai adapter init failed")
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: openai")
	case cfg.AI.GeminiKey != "":
		ai, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini adapter init failed")
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: gemini")
	case cfg.Runtime.Dev:
		ai = aiAdapters.NewNoopAIAdapter()
		logger.Warn().Msg("AI adapter: noop (dev)")
	default:
		logger.Fatal().Msg("no AI provider configured: set ai.openai_key or ai.gemini_key")
	}
	ai = aiAdapters.NewLimitedAI(ai, cfg.AI.ConcurrentLimit)

	// ---- Support notifier ----
	var notifier adapter.SupportNotifier
	if cfg.Chat.TelegramToken != "" && cfg.Chat.TelegramChatID != 0 {
		notifier, err = tele.NewSupportNotifier(cfg.Chat.TelegramToken, cfg.Chat.TelegramChatID, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram notifier init failed")
		}
	} else {
		notifier = tele.NewNoopNotifier(logger)
	}

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo, logger)
	catUC := usecase.NewCatalogUseCase(catalogRepo, userRepo, catalogCache, logger)
	payUC := usecase.NewPaymentUseCase(payRepo, userRepo, catUC, gateway, tm,
		cfg.Server.BaseURL, cfg.Gateway.ReturnPath, cfg.Gateway.NotifyPath,
		cfg.Reconciler.Lookback, logger)
	notesUC := usecase.NewNotesUseCase(notesRepo, ai, cfg.AI.DefaultModel, logger)
	chatUC := usecase.NewChatUseCase(chatRepo, rateLimiter, notifier, cfg.Chat.HistoryPageSize, logger)

	// ---- Background workers ----
	pool2 := worker.NewPool(cfg.AI.Workers, logger)
	pool2.Start(ctx)
	defer pool2.Stop()
	go worker.NewNotesJobProcessor(notesUC, 0, logger).Start(ctx, pool2)
	go sched.NewPaymentReconciler(payUC, payRepo, locker, cfg.Reconciler.Interval, cfg.Reconciler.StaleAfter, logger).Start(ctx)
	go sched.NewSyncWorker(payUC, locker, cfg.Reconciler.SyncInterval, logger).Start(ctx)

	// ---- HTTP server ----
	srv := web.NewServer(cfg, payUC, catUC, userUC, notesUC, chatUC, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
}
