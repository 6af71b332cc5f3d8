package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-replay/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-replay/internal/view"
)

const writeTimeout = 10 * time.Second

var (
	ErrCellIsMissing = errors.New("cell is required")
	ErrMoveIsMissing = errors.New("move is required")
)

type gameManager interface {
	StartSession(ctx context.Context) (string, *view.View, error)
	Dispatch(ctx context.Context, id string, action tictactoe.Action) (*view.View, error)
	GetView(ctx context.Context, id string) (*view.View, error)
	EndSession(ctx context.Context, id string) error
}

// connection is one browser tab; it owns exactly one game session.
type connection struct {
	conn      *websocket.Conn
	sessionID string
}

type Server struct {
	logger      *slog.Logger
	gameManager gameManager
	upgrader    websocket.Upgrader

	handlers map[string]func(ctx context.Context, conn *connection, msg *Message) error
}

func New(logger *slog.Logger, gameManager gameManager) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameManager: gameManager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]func(context.Context, *connection, *Message) error),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionPlay] = server.handlePlay
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionSort] = server.handleSort
	server.handlers[actionRestart] = server.handleRestart

	return server
}

// ServeHTTP - upgrades the connection to WebSocket and runs the session until the client leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	ctx := req.Context()

	sessionID, rendered, err := that.gameManager.StartSession(ctx)
	if err != nil {
		log.Error("failed to start session", "error", err)
		return
	}

	defer func() {
		// the request context is already done once the client is gone
		if err = that.gameManager.EndSession(context.WithoutCancel(ctx), sessionID); err != nil {
			log.Error("failed to end session", "sessionID", sessionID, "error", err)
		}
	}()

	log.Info("WebSocket connection established", "sessionID", sessionID)

	client := &connection{conn: conn, sessionID: sessionID}
	if err = that.sendMessage(client, actionConnect, ResponsePayload{SessionID: sessionID, View: rendered}); err != nil {
		log.Error("failed to send initial state", "error", err)
		return
	}

	if err = that.handleMessages(ctx, client); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, client *connection) error {
	log := that.logger.With("method", "handleMessages", "sessionID", client.sessionID)

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("client disconnected")
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = that.sendError(client, actionError, "malformed message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			if err := that.sendError(client, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, client, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			if err = that.sendError(client, message.Action, err.Error()); err != nil {
				return err
			}
		}
	}
}

func (that *Server) handleConnect(ctx context.Context, client *connection, msg *Message) error {
	rendered, err := that.gameManager.GetView(ctx, client.sessionID)
	if err != nil {
		return fmt.Errorf("failed to get view: %w", err)
	}

	return that.sendMessage(client, msg.Action, ResponsePayload{SessionID: client.sessionID, View: rendered})
}

func (that *Server) handlePlay(ctx context.Context, client *connection, msg *Message) error {
	payload, err := decodeRequest(msg)
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Cell == nil {
		return ErrCellIsMissing
	}

	return that.dispatch(ctx, client, msg.Action, tictactoe.PlayAction{Cell: *payload.Cell})
}

func (that *Server) handleJump(ctx context.Context, client *connection, msg *Message) error {
	payload, err := decodeRequest(msg)
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Move == nil {
		return ErrMoveIsMissing
	}

	return that.dispatch(ctx, client, msg.Action, tictactoe.JumpAction{Move: *payload.Move})
}

func (that *Server) handleSort(ctx context.Context, client *connection, msg *Message) error {
	return that.dispatch(ctx, client, msg.Action, tictactoe.ToggleOrderAction{})
}

func (that *Server) handleRestart(ctx context.Context, client *connection, msg *Message) error {
	return that.dispatch(ctx, client, msg.Action, tictactoe.RestartAction{})
}

func (that *Server) dispatch(ctx context.Context, client *connection, action string, gameAction tictactoe.Action) error {
	rendered, err := that.gameManager.Dispatch(ctx, client.sessionID, gameAction)
	if err != nil {
		return fmt.Errorf("failed to dispatch %s: %w", action, err)
	}

	return that.sendMessage(client, action, ResponsePayload{View: rendered})
}

func (that *Server) sendError(client *connection, action, text string) error {
	return that.sendMessage(client, action, ResponsePayload{Error: text})
}

func (that *Server) sendMessage(client *connection, action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = client.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = client.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
