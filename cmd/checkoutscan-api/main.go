package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cartsight/scanner/internal/config"
	"github.com/cartsight/scanner/internal/httpapi"
	"github.com/cartsight/scanner/internal/httpclient"
	"github.com/cartsight/scanner/internal/logging"
	"github.com/cartsight/scanner/internal/scanner"
	"github.com/cartsight/scanner/internal/service"
)

func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize logger
	logger := logging.New()
	defer logger.Sync()

	// Build the signature catalog: built-in rules plus an optional
	// operator-supplied extension file, fixed for the process lifetime.
	catalog := scanner.DefaultCatalog
	if cfg.SignaturesFile != "" {
		extra, err := scanner.LoadCatalogFile(cfg.SignaturesFile)
		if err != nil {
			logger.Error("Failed to load signatures file", "path", cfg.SignaturesFile, "error", err)
			os.Exit(1)
		}
		merged := make([]scanner.Signature, 0, len(catalog)+len(extra))
		merged = append(merged, catalog...)
		merged = append(merged, extra...)
		catalog = merged
		logger.Info("Loaded extra signatures", "path", cfg.SignaturesFile, "count", len(extra))
	}

	// Initialize HTTP client for outbound fetches
	client := httpclient.NewClient(cfg.RequestTimeout, cfg.DefaultUserAgent, cfg.RateLimit)

	// Initialize the scan engine and service layer
	sc := scanner.New(client, catalog, cfg.MaxScripts)
	svc := service.New(sc, logger, cfg.ScanTimeout)

	// Create a new HTTP server
	addr := fmt.Sprintf(":%d", cfg.Port)
	server := httpapi.NewServer(addr, logger, svc)

	// Channel to listen for OS signals (Ctrl+C, kill, etc.)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start the server in a goroutine so it doesn't block
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "signatures", len(catalog))
		if err := server.ListenAndServe(); err != nil {
			logger.Error("Server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	logger.Info("Shutting down server...")

	// Create a context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
