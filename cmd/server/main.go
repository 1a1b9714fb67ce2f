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
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dayline/internal/catalog"
	"dayline/internal/db"
	"dayline/internal/handlers"
	mw "dayline/internal/middleware"
	"dayline/internal/repository"
	"dayline/internal/service"
)

func mustGetenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func main() {
	_ = godotenv.Load()

	var logger *zap.Logger
	var err error
	if os.Getenv("APP_ENV") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	port := mustGetenv("PORT", "8080")

	dbConn, err := sqlx.Open("pgx", databaseURL)
	if err != nil {
		logger.Fatal("failed to open db", zap.Error(err))
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetConnMaxLifetime(2 * time.Hour)
	if err = dbConn.Ping(); err != nil {
		logger.Fatal("failed to ping db", zap.Error(err))
	}
	if err := db.RunMigrations(dbConn); err != nil {
		logger.Fatal("failed migrations", zap.Error(err))
	}

	cat := catalog.New()
	repo := repository.NewPostgres(dbConn)
	tracking := service.NewTrackingService(repo, cat)
	macros := service.NewMacroService(repo)

	metricsHandler := handlers.NewMetricsHandler(tracking)
	entriesHandler := handlers.NewEntriesHandler(tracking)
	quickActionsHandler := handlers.NewQuickActionsHandler(tracking)
	dayHandler := handlers.NewDayHandler(tracking)
	macrosHandler := handlers.NewMacrosHandler(macros)
	authMW := mw.NewAuthMiddleware([]byte(jwtSecret))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.ZapRequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireUser)

			pr.Get("/metrics", metricsHandler.List)
			pr.Post("/metrics", metricsHandler.Create)
			pr.Post("/metrics/from-template", metricsHandler.FromTemplate)
			pr.Get("/metrics/templates", metricsHandler.Templates)
			pr.Get("/metrics/deleted", metricsHandler.Deleted)
			pr.Put("/metrics/reorder", metricsHandler.Reorder)
			pr.Put("/metrics/{id}", metricsHandler.Update)
			pr.Delete("/metrics/{id}", metricsHandler.Delete)
			pr.Post("/metrics/{id}/restore", metricsHandler.Restore)
			pr.Get("/metrics/{id}/history", metricsHandler.History)
			pr.Get("/metrics/{id}/progress", metricsHandler.Progress)

			pr.Post("/quick-actions", quickActionsHandler.Create)
			pr.Delete("/quick-actions/{id}", quickActionsHandler.Delete)
			pr.Post("/quick-actions/{id}/entries", quickActionsHandler.Apply)

			pr.Post("/entries", entriesHandler.Add)
			pr.Put("/entries/{id}", entriesHandler.Update)
			pr.Delete("/entries/{id}", entriesHandler.Delete)
			pr.Get("/entries/recent", entriesHandler.Recent)

			pr.Get("/days/{dayKey}", dayHandler.Get)
			pr.Get("/days/{dayKey}/summary", dayHandler.Summary)
			pr.Get("/today/summary", dayHandler.TodaySummary)

			pr.Get("/macros/targets", macrosHandler.GetTargets)
			pr.Post("/macros/targets", macrosHandler.SetTargets)
			pr.Put("/macros/targets", macrosHandler.UpdateTargets)
			pr.Post("/macros/entries", macrosHandler.AddEntry)
			pr.Put("/macros/entries/{id}", macrosHandler.UpdateEntry)
			pr.Delete("/macros/entries/{id}", macrosHandler.DeleteEntry)
			pr.Get("/macros/days/{dayKey}", macrosHandler.DayTotals)
		})
	})

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		logger.Info("server starting", zap.String("addr", ":"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info("server stopped")
}
