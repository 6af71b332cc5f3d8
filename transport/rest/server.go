package rest

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

//go:embed static
var staticFiles embed.FS

type Server struct {
	logger *slog.Logger
	mux    *http.ServeMux
}

// New - builds the HTTP routes: health check, the game page and the WebSocket endpoint.
func New(logger *slog.Logger, ws http.Handler) (*Server, error) {
	page, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static files: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", NewPingHandler().PingHandler)
	mux.Handle("GET /ws", ws)
	mux.Handle("GET /", http.FileServerFS(page))

	return &Server{
		logger: logger.With("component", "http"),
		mux:    mux,
	}, nil
}

func (that *Server) Handler() http.Handler {
	return that.mux
}

// Start - serves until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
