package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-replay/internal/config"
	"github.com/rocketscienceinc/tictactoe-replay/internal/repository"
	"github.com/rocketscienceinc/tictactoe-replay/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-replay/transport/rest"
	"github.com/rocketscienceinc/tictactoe-replay/transport/tui"
	"github.com/rocketscienceinc/tictactoe-replay/transport/websocket"
)

var ErrUnknownMode = errors.New("unknown mode")

// RunApp - runs the application in the configured mode.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	switch conf.Mode {
	case config.ModeTUI:
		return runTUI(ctx, logger, conf)
	case config.ModeServer:
		return runServer(ctx, logger, conf)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, conf.Mode)
	}
}

func runTUI(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	program := tea.NewProgram(tui.New(logger, conf.Game.Ascending()), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal UI error: %w", err)
	}

	return nil
}

func runServer(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	sessionRepo := repository.NewSessionRepository()
	gameManager := usecase.NewGameManager(logger, sessionRepo, conf.Game.Ascending())
	wsServer := websocket.New(logger, gameManager)

	httpServer, err := rest.New(logger, wsServer)
	if err != nil {
		return fmt.Errorf("could not build HTTP server: %w", err)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := httpServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
