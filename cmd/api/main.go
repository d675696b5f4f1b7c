package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/cashflow/internal/amount"
	"github.com/MrJamesThe3rd/cashflow/internal/app"
	"github.com/MrJamesThe3rd/cashflow/internal/config"
	cashflowHttp "github.com/MrJamesThe3rd/cashflow/internal/http"
	backupHandler "github.com/MrJamesThe3rd/cashflow/internal/http/backup"
	categoryHandler "github.com/MrJamesThe3rd/cashflow/internal/http/category"
	matchingHandler "github.com/MrJamesThe3rd/cashflow/internal/http/matching"
	summaryHandler "github.com/MrJamesThe3rd/cashflow/internal/http/summary"
	txHandler "github.com/MrJamesThe3rd/cashflow/internal/http/transaction"
	"github.com/MrJamesThe3rd/cashflow/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/cashflow/internal/matching/store"
	"github.com/MrJamesThe3rd/cashflow/internal/persist"
	"github.com/MrJamesThe3rd/cashflow/internal/slot/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slots, closeStore, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	defer func() {
		if err := closeStore(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	state := app.New(ctx, persist.New(slots, cfg.Store.Categories))
	matchingService := matching.NewService(matchingStore.New(state))

	router := cashflowHttp.New(cashflowHttp.Handlers{
		Transactions: txHandler.NewHandler(state),
		Categories:   categoryHandler.NewHandler(state),
		Summary:      summaryHandler.NewHandler(state, amount.NewFormatter(cfg.App.Locale)),
		Matching:     matchingHandler.NewHandler(matchingService),
		Backup:       backupHandler.NewHandler(state),
	}, cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "backend", cfg.Store.Backend)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
