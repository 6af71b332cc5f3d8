package suite

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-replay/internal/repository"
	"github.com/rocketscienceinc/tictactoe-replay/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-replay/transport/rest"
	ws "github.com/rocketscienceinc/tictactoe-replay/transport/websocket"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Sessions    repository.SessionRepository
	GameManager *usecase.GameManager
	Server      *httptest.Server
}

// New - starts the full HTTP + WebSocket stack on a test server.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	sessions := repository.NewSessionRepository()
	gameManager := usecase.NewGameManager(logger, sessions, true)

	httpServer, err := rest.New(logger, ws.New(logger, gameManager))
	if err != nil {
		t.Fatalf("could not build http server: %v", err)
	}

	server := httptest.NewServer(httpServer.Handler())
	t.Cleanup(server.Close)

	return ctx, &Suite{
		T:           t,
		Logger:      logger,
		Sessions:    sessions,
		GameManager: gameManager,
		Server:      server,
	}
}

// Dial - opens a WebSocket connection to the test server.
func (that *Suite) Dial(ctx context.Context) *websocket.Conn {
	that.Helper()

	url := "ws" + strings.TrimPrefix(that.Server.URL, "http") + "/ws"

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		that.Fatalf("could not dial websocket: %v", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	that.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}
