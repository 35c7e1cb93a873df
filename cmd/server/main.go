package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecopuntos/ecoroster/internal/config"
	"github.com/ecopuntos/ecoroster/internal/db"
	"github.com/ecopuntos/ecoroster/internal/middleware"
	"github.com/ecopuntos/ecoroster/internal/repository"
	"github.com/ecopuntos/ecoroster/internal/roster"

	"github.com/charmbracelet/log"
	"github.com/rs/cors"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	conn, err := db.NewConnection(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.DB, cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	userRepo := repository.NewUserRepository(conn.Pool)
	studentRepo := repository.NewStudentRepository(conn.Pool)
	sectionRepo := repository.NewSectionRepository(conn.Pool)
	historyRepo := repository.NewImportHistoryRepository(conn.Pool)

	importer := roster.NewService(userRepo, studentRepo, sectionRepo, historyRepo, logger)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	logging := middleware.Logging(logger)

	mux := http.NewServeMux()
	mux.Handle("/roster/import", roster.NewImportHandler(importer))
	mux.Handle("/roster/template", roster.NewTemplateHandler())
	mux.Handle("/roster/history", roster.NewHistoryHandler(historyRepo))

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      corsHandler.Handler(logging(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting roster server", "addr", cfg.ServerAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
