/*
main.go - Application entry point

STARTUP SEQUENCE:
  1. Load configuration from HOTEL_* environment variables
  2. Build the logger
  3. Open the booking store (memory or sqlite)
  4. Wire stores, ledger, reservation service and reporter
  5. Optionally seed the demo scenario
  6. Start the HTTP server with graceful shutdown

ENVIRONMENT:
  HOTEL_PORT              HTTP server port (default: 8080)
  HOTEL_LOG_LEVEL         debug|info|warn|error (default: info)
  HOTEL_BOOKING_STORE     memory|sqlite (default: memory)
  HOTEL_SQLITE_DSN        SQLite path (default: ":memory:")
  HOTEL_OVERLAP_POLICY    inclusive|half_open (default: inclusive)
  HOTEL_SEED_DEMO         load the demo scenario at startup (default: false)
  HOTEL_CORS_ORIGINS      comma-separated allowed origins
  HOTEL_SHUTDOWN_TIMEOUT  graceful shutdown budget (default: 30s)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete
  3. Close the booking store
  4. Exit
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/warp/hotel-engine/api"
	"github.com/warp/hotel-engine/config"
	"github.com/warp/hotel-engine/hotel"
	"github.com/warp/hotel-engine/store/memory"
	"github.com/warp/hotel-engine/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()

	store, closer, err := openBookingStore(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := []hotel.Option{
		hotel.WithLogger(logger),
		hotel.WithOverlapPolicy(cfg.Overlap()),
	}
	ledger, err := hotel.NewBookingLedger(ctx, store, opts...)
	if err != nil {
		return err
	}
	rooms := hotel.NewRoomStore(opts...)
	users := hotel.NewUserStore(opts...)
	svc := hotel.NewReservationService(rooms, users, ledger, opts...)
	reporter := hotel.NewReporter(rooms, users, ledger, opts...)

	if cfg.SeedDemo {
		sc, _ := hotel.FindScenario("demo-run")
		if err := sc.Load(ctx, svc); err != nil {
			logger.Warn("failed to seed demo scenario", "error", err)
		}
	}

	handler := api.NewHandler(svc, reporter, logger)
	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"addr", server.Addr,
			"booking_store", cfg.BookingStore,
			"overlap_policy", string(cfg.Overlap()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return errors.Wrap(err, "listen")
		}
		return nil
	case <-quit:
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}

	logger.Info("server stopped")
	return nil
}

// openBookingStore returns the configured ledger backend and what to close
// on exit.
func openBookingStore(cfg config.Config) (hotel.BookingStore, io.Closer, error) {
	switch cfg.BookingStore {
	case config.StoreSQLite:
		store, err := sqlite.New(cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open sqlite booking store")
		}
		return store, store, nil
	default:
		return memory.NewMemory(), nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
