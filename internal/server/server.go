// Package server hosts the kernel-path lookup API: the endpoint that maps
// a kernel display name to the filesystem location of its interpreter
// environment. JupyterLab front-end extensions consume it to offer
// "navigate to kernel" style actions.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/kernelspec"
)

// Config holds configuration for the API server.
type Config struct {
	Finder *kernelspec.Finder
	Port   int
	Watch  bool
	Logger *slog.Logger
}

// Server serves the kernel-path API.
type Server struct {
	finder *kernelspec.Finder
	port   int
	watch  bool
	logger *slog.Logger
}

// New creates a Server from cfg.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	finder := cfg.Finder
	if finder == nil {
		finder = kernelspec.NewFinder(logger)
	}
	return &Server{
		finder: finder,
		port:   cfg.Port,
		watch:  cfg.Watch,
		logger: logger,
	}
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting kernel-path server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.watchKernelDirs(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := eg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
	)

	r.Get("/api/kernel-path/*", s.handleKernelPath)
	r.Get("/api/status", s.handleStatus)

	return r
}

// watchKernelDirs invalidates the kernelspec cache whenever a kernel
// directory changes, so newly registered kernels show up without a
// restart.
func (s *Server) watchKernelDirs(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := 0
	for _, dir := range s.finder.KernelDirs() {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			s.logger.Debug("cannot watch kernel dir", "dir", dir, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		s.logger.Debug("no kernel directories to watch")
		<-ctx.Done()
		return ctx.Err()
	}
	s.logger.Info("watching kernel directories", "count", watched)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.logger.Debug("kernel directory changed", "event", event.String())
			s.finder.Invalidate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("kernel directory watch error", "error", err)
		}
	}
}
