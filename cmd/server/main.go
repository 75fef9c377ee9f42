package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clue-calendar/backend/internal/config"
	"clue-calendar/backend/internal/db"
	"clue-calendar/backend/internal/override/repository"
	"clue-calendar/backend/internal/schedule"
	"clue-calendar/backend/internal/server"
	otelsetup "clue-calendar/backend/internal/telemetry/otel"
	"clue-calendar/backend/internal/unlock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// A malformed schedule is a configuration error; fail before serving.
	sched, err := schedule.Load(cfg.ScheduleFile)
	if err != nil {
		log.Fatalf("schedule: %v", err)
	}

	var repo repository.Repository
	if cfg.DatabaseURL != "" {
		database, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer database.Close()
		repo = repository.NewPostgresRepository(database)
	} else {
		repo = repository.NewMemoryRepository()
		log.Println("DATABASE_URL not set; overrides held in memory only")
	}

	providers, err := otelsetup.NewProviders(context.Background(), cfg.OTLPEndpoint, "clue-calendar", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()

	telemetry, err := server.NewTelemetry(providers)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}

	srv := server.New(cfg, repo, unlock.New(sched))
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Handler(telemetry),
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := providers.Shutdown(ctx); err != nil {
		log.Printf("telemetry: %v", err)
	}
	log.Println("HTTP server stopped")
}
