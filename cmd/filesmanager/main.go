package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chineduCoded/alx-files-manager/internal/auth"
	"github.com/chineduCoded/alx-files-manager/internal/files"
	"github.com/chineduCoded/alx-files-manager/internal/logger"
	"github.com/chineduCoded/alx-files-manager/internal/server"
	"github.com/chineduCoded/alx-files-manager/internal/users"
	"github.com/chineduCoded/alx-files-manager/internal/worker"
	"github.com/chineduCoded/alx-files-manager/pkg/config"
	"github.com/chineduCoded/alx-files-manager/pkg/queue"
	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
	"github.com/chineduCoded/alx-files-manager/pkg/store/session"
)

// storeWaitTimeout bounds the startup wait for the backing stores.
const storeWaitTimeout = 30 * time.Second

// waitForStores polls the session and metadata stores until both answer a
// health check, so the HTTP server never comes up in front of dead backends.
func waitForStores(ctx context.Context, sessions session.SessionStore, meta metadata.MetadataStore) error {
	deadline := time.Now().Add(storeWaitTimeout)

	for {
		sessionErr := sessions.HealthCheck(ctx)
		metaErr := meta.HealthCheck(ctx)
		if sessionErr == nil && metaErr == nil {
			return nil
		}

		if time.Now().After(deadline) {
			if sessionErr != nil {
				return fmt.Errorf("session store not ready: %w", sessionErr)
			}
			return fmt.Errorf("metadata store not ready: %w", metaErr)
		}

		logger.Warn("Waiting for stores (sessions: %v, metadata: %v)", sessionErr, metaErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config file (default: "+config.GetDefaultConfigPath()+")")
	logLevel := flag.String("log-level", "", "Override log level (DEBUG, INFO, WARN, ERROR)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure logger
	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	logger.SetLevel(level)
	if err := logger.SetOutput(cfg.Logging.Output); err != nil {
		log.Fatalf("Failed to configure log output: %v", err)
	}

	logger.Info("Log level set to: %s", level)

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create stores
	sessions, err := config.CreateSessionStore(ctx, &cfg.Sessions)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			logger.Error("Failed to close session store: %v", err)
		}
	}()

	meta, err := config.CreateMetadataStore(ctx, &cfg.Metadata)
	if err != nil {
		log.Fatalf("Failed to create metadata store: %v", err)
	}
	defer func() {
		if err := meta.Close(); err != nil {
			logger.Error("Failed to close metadata store: %v", err)
		}
	}()

	contents, err := config.CreateContentStore(ctx, &cfg.Content)
	if err != nil {
		log.Fatalf("Failed to create content store: %v", err)
	}

	logger.Info("Stores created: sessions=%s, metadata=%s, content=%s",
		cfg.Sessions.Type, cfg.Metadata.Type, cfg.Content.Type)

	if err := waitForStores(ctx, sessions, meta); err != nil {
		log.Fatalf("Stores unavailable: %v", err)
	}

	// Create the job queue and its worker
	jobs := queue.NewMemoryQueue(cfg.Queue.FileBuffer, cfg.Queue.UserBuffer)
	defer jobs.Close()

	wrk := worker.New(jobs, meta, contents)
	go wrk.Run(ctx)

	// Wire the service layer
	guard := auth.NewGuard(sessions, meta, cfg.Sessions.TTL)
	userSvc := users.NewService(meta, jobs)
	fileCtl := files.NewController(meta, contents, jobs)

	srv := server.New(cfg.Server, guard, userSvc, fileCtl, sessions, meta)

	// Start server in background
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Serve(ctx)
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running on port %d. Press Ctrl+C to stop.", cfg.Server.Port)

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received, initiating graceful shutdown...")
		cancel()

		// Wait for server to shut down gracefully
		if err := <-serverDone; err != nil && err != context.Canceled {
			logger.Error("Server shutdown error: %v", err)
			os.Exit(1)
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		if err != nil && err != context.Canceled {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
		logger.Info("Server stopped")
	}
}
