// Package server exposes the service over HTTP.
//
// The server is a thin translation layer: handlers decode requests, call the
// auth guard / user service / file controller, and map service errors to the
// stable JSON error bodies clients depend on. No business rules live here.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chineduCoded/alx-files-manager/internal/auth"
	"github.com/chineduCoded/alx-files-manager/internal/files"
	"github.com/chineduCoded/alx-files-manager/internal/logger"
	"github.com/chineduCoded/alx-files-manager/internal/users"
	"github.com/chineduCoded/alx-files-manager/pkg/config"
	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
	"github.com/chineduCoded/alx-files-manager/pkg/store/session"
)

// Server wires the service layer to an HTTP listener.
//
// Lifecycle:
//  1. Creation: New() with configuration and collaborators
//  2. Startup: Serve() binds the listener and blocks
//  3. Shutdown: Context cancellation triggers graceful shutdown, bounded
//     by the configured shutdown timeout
type Server struct {
	cfg      config.ServerConfig
	guard    *auth.Guard
	users    *users.Service
	files    *files.Controller
	sessions session.SessionStore
	meta     metadata.MetadataStore
	router   *mux.Router
}

// New creates a Server with its routes registered. Call Serve() to start
// listening.
func New(
	cfg config.ServerConfig,
	guard *auth.Guard,
	userSvc *users.Service,
	fileCtl *files.Controller,
	sessions session.SessionStore,
	meta metadata.MetadataStore,
) *Server {
	s := &Server{
		cfg:      cfg,
		guard:    guard,
		users:    userSvc,
		files:    fileCtl,
		sessions: sessions,
		meta:     meta,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// routes builds the router. Paths and methods match the public API surface.
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	// Health and counters, no auth
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)

	// Accounts and sessions
	r.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	r.HandleFunc("/connect", s.handleConnect).Methods(http.MethodGet)
	r.HandleFunc("/disconnect", s.handleDisconnect).Methods(http.MethodGet)
	r.HandleFunc("/users/me", s.withUser(s.handleCurrentUser)).Methods(http.MethodGet)

	// Files
	r.HandleFunc("/files", s.withUser(s.handleUploadFile)).Methods(http.MethodPost)
	r.HandleFunc("/files", s.withUser(s.handleListFiles)).Methods(http.MethodGet)
	r.HandleFunc("/files/{id}", s.withUser(s.handleShowFile)).Methods(http.MethodGet)
	r.HandleFunc("/files/{id}/publish", s.withUser(s.handlePublish)).Methods(http.MethodPut)
	r.HandleFunc("/files/{id}/unpublish", s.withUser(s.handleUnpublish)).Methods(http.MethodPut)

	// Content retrieval allows anonymous callers, so it resolves the
	// token itself instead of going through withUser
	r.HandleFunc("/files/{id}/data", s.handleFileData).Methods(http.MethodGet)

	return r
}

// Serve starts the HTTP server and blocks until the context is cancelled or
// the listener fails.
//
// On cancellation the server stops accepting connections and waits up to the
// configured shutdown timeout for in-flight requests to finish. Returns the
// context's error after a clean shutdown, so callers can distinguish "asked
// to stop" from "fell over".
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	// Buffered so the goroutine never leaks if we exit via ctx.Done()
	errChan := make(chan error, 1)

	go func() {
		logger.Info("HTTP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received (reason: %v)", ctx.Err())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}

		logger.Info("HTTP server stopped gracefully")
		return ctx.Err()

	case err := <-errChan:
		return fmt.Errorf("http server failed: %w", err)
	}
}
