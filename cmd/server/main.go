package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adornodavid/aybcosteo-sub000/internal/config"
	"github.com/adornodavid/aybcosteo-sub000/internal/infra"
	"github.com/adornodavid/aybcosteo-sub000/internal/repository"
	"github.com/adornodavid/aybcosteo-sub000/internal/router"
	"github.com/adornodavid/aybcosteo-sub000/internal/service"
	"github.com/adornodavid/aybcosteo-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Background workers: the snapshot queue keeps the daily historical rows
	// flowing even on days with no catalog edits. Handlers are wired here
	// (composition root) so the pool sees the same repositories as the API.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	historicoRepo := repository.NewHistoricoRepository(db)
	platilloRepo := repository.NewPlatilloRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	historicoSvc := service.NewHistoricoService(historicoRepo, platilloRepo, menuRepo)

	dispatcher := worker.NewDispatcher(rdb)
	workerHandlers := &worker.WorkerHandlers{
		Snapshot: worker.NewSnapshotWorker(historicoSvc),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)
	worker.StartSnapshotCron(ctx, worker.SnapshotCronConfig{
		Platillos:  platilloRepo,
		Dispatcher: dispatcher,
		Hour:       cfg.SnapshotHour,
	})

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("aybcosteo backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
