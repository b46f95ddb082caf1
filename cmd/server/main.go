package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/DvineConqueror/GroceryStorePOS/internal/config"
	"github.com/DvineConqueror/GroceryStorePOS/internal/infra"
	"github.com/DvineConqueror/GroceryStorePOS/internal/pos"
	"github.com/DvineConqueror/GroceryStorePOS/internal/repository"
	"github.com/DvineConqueror/GroceryStorePOS/internal/router"
	"github.com/DvineConqueror/GroceryStorePOS/internal/service"
	"github.com/DvineConqueror/GroceryStorePOS/internal/worker"
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
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	media, err := infra.NewMediaStore(cfg.MediaStoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init media storage")
	}

	// The POS store lives for the whole process: one register, one store.
	store := pos.NewStore()

	// Worker pool for async tasks (receipt PDFs, notification email).
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	txRepo := repository.NewTransactionRepository(db)
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	handlers := &worker.Handlers{
		Receipt: worker.NewReceiptWorker(txRepo, cfg.StoreName, cfg.ReceiptStoragePath),
		Email:   worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, store, media, dispatcher)

	// Rebuild the register's working state from storage before serving.
	hydrate(ctx, db, store, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("POS backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// hydrate loads catalog and history into the POS store. Failures are logged,
// not fatal: the first authenticated fetch repeats the load anyway.
func hydrate(ctx context.Context, db *gorm.DB, store *pos.Store, cfg *config.Config) {
	productRepo := repository.NewProductRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	catalog := service.NewCatalogService(productRepo, store, nil)
	history := service.NewTransactionService(txRepo, profileRepo, store, cfg.StoreName, cfg.ReceiptStoragePath)

	if _, err := catalog.FetchProducts(ctx); err != nil {
		log.Warn().Err(err).Msg("hydrate: load products")
	}
	if _, err := history.FetchTransactions(ctx); err != nil {
		log.Warn().Err(err).Msg("hydrate: load transactions")
	}
}
