package main

// ingest-sink — локальная заглушка границы инжеста для разработки
// и ручной проверки пайплайна: тот же контракт (POST /api/ingest,
// секрет в заголовке, upsert по url), но хранение в памяти.

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger_adapter "github.com/stijnvandrunen98/huurkans/internal/adapters/logger"
	"github.com/stijnvandrunen98/huurkans/internal/adapters/rest"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: could not load .env file: %v\n", err)
	}

	secret := os.Getenv("INGEST_SECRET")
	if secret == "" {
		log.Println("FATAL: INGEST_SECRET environment variable is required")
		os.Exit(1)
	}

	listenPort := os.Getenv("SINK_PORT")
	if listenPort == "" {
		listenPort = "8081"
	}

	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    slog.LevelDebug,
		UseColor: true,
	}).WithFields(port.Fields{"service_name": "ingest-sink"})

	store := rest.NewListingStore()
	handler := rest.NewIngestHandler(store, secret)
	server := rest.NewServer(listenPort, handler, logger)

	serverErrors := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case receivedSignal := <-quit:
		logger.Warn("Received signal, shutting down", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		logger.Error("Server failed", err, nil)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("Graceful shutdown failed", err, nil)
	}
	logger.Info("Sink stopped", port.Fields{"stored_listings": store.Len()})
}
