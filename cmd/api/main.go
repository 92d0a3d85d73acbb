package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coinquest/coinquest-api/internal/config"
	"github.com/coinquest/coinquest-api/internal/domain/payout"
	"github.com/coinquest/coinquest-api/internal/domain/question"
	"github.com/coinquest/coinquest-api/internal/domain/session"
	"github.com/coinquest/coinquest-api/internal/domain/survey"
	"github.com/coinquest/coinquest-api/internal/domain/wallet"
	"github.com/coinquest/coinquest-api/internal/metrics"
	"github.com/coinquest/coinquest-api/internal/middleware"
	"github.com/coinquest/coinquest-api/internal/pkg/database"
	"github.com/coinquest/coinquest-api/internal/pkg/jwt"
	pkgresponse "github.com/coinquest/coinquest-api/internal/pkg/response"
	"github.com/coinquest/coinquest-api/internal/pkg/userlock"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting CoinQuest API")

	metrics.Init()

	// ---------- Stores ----------
	// Postgres when configured, in-memory otherwise. Store interfaces are
	// identical either way; business logic never sees the difference.
	var (
		walletStore   wallet.Store
		questionStore question.Store
		answerStore   survey.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer database.ClosePostgres(db)

		if err := database.Migrate(context.Background(), db); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		walletStore = wallet.NewPostgresStore(db)
		questionStore = question.NewPostgresStore(db)
		answerStore = survey.NewPostgresStore(db)
	} else {
		log.Warn().Msg("DATABASE_URL not set, using in-memory stores")
		walletStore = wallet.NewMemoryStore()
		questionStore = question.NewMemoryStore()
		answerStore = survey.NewMemoryStore()
	}

	var cursorStore session.Store
	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redisClient != nil {
		defer database.CloseRedis(redisClient)
		cursorStore = session.NewRedisStore(redisClient)
	} else {
		log.Warn().Msg("REDIS_URL not set, using in-memory cursor store")
		cursorStore = session.NewMemoryStore()
	}

	if err := question.Seed(context.Background(), questionStore); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed questions")
	}

	// ---------- Services ----------
	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	locks := userlock.New()

	walletService := wallet.NewService(walletStore)
	questionService := question.NewService(questionStore, cursorStore, locks)
	surveyService := survey.NewService(answerStore, walletService, cursorStore, locks, survey.Config{
		MinDwell:   cfg.MinAnswerDwell,
		MaxPerHour: cfg.MaxAnswersPerHour,
	})
	payoutService := payout.NewService(walletService, locks, cfg.MinWithdrawCoins)

	// ---------- Handlers ----------
	questionHandler := question.NewHandler(questionService)
	surveyHandler := survey.NewHandler(surveyService)
	walletHandler := wallet.NewHandler(walletService, wallet.Settings{
		CoinToCurrency:   cfg.CoinToCurrency,
		MinWithdrawCoins: cfg.MinWithdrawCoins,
	})
	payoutHandler := payout.NewHandler(payoutService)

	authMiddleware := middleware.Auth(jwtService)
	optionalAuthMiddleware := middleware.OptionalAuth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.HTTPMetrics)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))

		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/surveys", surveyHandler.Routes(authMiddleware))
		r.Mount("/questions", questionHandler.Routes(optionalAuthMiddleware))
		r.Mount("/wallet", walletHandler.Routes(authMiddleware))
		r.Mount("/payouts", payoutHandler.Routes(authMiddleware))
	})

	r.Mount("/api/admin", payoutHandler.AdminRoutes(authMiddleware, middleware.RequireAdmin()))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
