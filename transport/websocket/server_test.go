package websocket_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-replay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-replay/testing/suite"
	ws "github.com/rocketscienceinc/tictactoe-replay/transport/websocket"
)

func send(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()

	msg := ws.Message{Action: action}
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		msg.Payload = body
	}

	require.NoError(t, conn.WriteJSON(msg))
}

func receive(t *testing.T, conn *websocket.Conn) (string, ws.ResponsePayload) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))

	var payload ws.ResponsePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))

	return msg.Action, payload
}

func TestServer_Session(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a connected client
	conn := st.Dial(ctx)

	// Then: the server greets it with a fresh session
	action, payload := receive(t, conn)
	require.Equal(t, "connect", action)
	require.NotEmpty(t, payload.SessionID)
	require.NotNil(t, payload.View)
	assert.Equal(t, "Next Player: X", payload.View.Status)

	t.Run("Play a winning line", func(t *testing.T) {
		var last ws.ResponsePayload
		for _, cell := range []int{0, 3, 1, 4, 2} {
			send(t, conn, "game:play", map[string]int{"cell": cell})
			action, last = receive(t, conn)
			require.Equal(t, "game:play", action)
			require.Empty(t, last.Error)
		}

		assert.Equal(t, "Winner: X", last.View.Status)
		assert.True(t, last.View.Squares[0].Highlight)
		assert.True(t, last.View.Squares[2].Highlight)
		assert.False(t, last.View.Squares[3].Highlight)
	})

	t.Run("Play after the win is ignored", func(t *testing.T) {
		send(t, conn, "game:play", map[string]int{"cell": 8})
		_, resp := receive(t, conn)

		require.Empty(t, resp.Error)
		assert.Equal(t, entity.EmptyCell, resp.View.Squares[8].Mark)
		assert.Len(t, resp.View.Moves, 6)
	})

	t.Run("Jump back and branch", func(t *testing.T) {
		send(t, conn, "game:jump", map[string]int{"move": 2})
		_, resp := receive(t, conn)
		require.Empty(t, resp.Error)
		assert.Equal(t, "Next Player: X", resp.View.Status)
		assert.Len(t, resp.View.Moves, 6)

		send(t, conn, "game:play", map[string]int{"cell": 8})
		_, resp = receive(t, conn)
		require.Empty(t, resp.Error)
		assert.Len(t, resp.View.Moves, 4)
		assert.Equal(t, entity.MarkX, resp.View.Squares[8].Mark)
	})

	t.Run("Sort toggles the move list", func(t *testing.T) {
		send(t, conn, "moves:sort", nil)
		_, resp := receive(t, conn)

		require.Empty(t, resp.Error)
		assert.False(t, resp.View.Ascending)
		assert.Equal(t, 3, resp.View.Moves[0].Move)
	})

	t.Run("Restart", func(t *testing.T) {
		send(t, conn, "game:restart", nil)
		_, resp := receive(t, conn)

		require.Empty(t, resp.Error)
		assert.Len(t, resp.View.Moves, 1)
	})

	t.Run("Connect returns the current view", func(t *testing.T) {
		send(t, conn, "connect", nil)
		_, resp := receive(t, conn)

		assert.Equal(t, payload.SessionID, resp.SessionID)
		assert.Len(t, resp.View.Moves, 1)
	})
}

func TestServer_Errors(t *testing.T) {
	ctx, st := suite.New(t)
	conn := st.Dial(ctx)
	receive(t, conn)

	t.Run("Unknown action", func(t *testing.T) {
		send(t, conn, "game:undo", nil)
		action, resp := receive(t, conn)

		assert.Equal(t, "game:undo", action)
		assert.Equal(t, "unknown action", resp.Error)
	})

	t.Run("Missing cell", func(t *testing.T) {
		send(t, conn, "game:play", map[string]int{})
		_, resp := receive(t, conn)

		assert.Contains(t, resp.Error, ws.ErrCellIsMissing.Error())
	})

	t.Run("Missing move", func(t *testing.T) {
		send(t, conn, "game:jump", nil)
		_, resp := receive(t, conn)

		assert.Contains(t, resp.Error, ws.ErrMoveIsMissing.Error())
	})

	t.Run("Malformed message keeps the connection open", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
		action, resp := receive(t, conn)
		assert.Equal(t, "error", action)
		assert.Equal(t, "malformed message", resp.Error)

		send(t, conn, "game:play", map[string]int{"cell": 4})
		_, resp = receive(t, conn)
		require.Empty(t, resp.Error)
		assert.Equal(t, entity.MarkX, resp.View.Squares[4].Mark)
	})
}

func TestServer_UndecodableFrames(t *testing.T) {
	ctx, st := suite.New(t)
	conn := st.Dial(ctx)
	_, greeting := receive(t, conn)

	frames := map[string][]byte{
		"Empty frame":     []byte(""),
		"Truncated frame": []byte(`{"action":"game:play","payload":{"cell":`),
		"Wrong type":      []byte(`{"action":42}`),
	}

	for name, frame := range frames {
		t.Run(name, func(t *testing.T) {
			// When: the client sends a frame that is not a message
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))

			// Then: the server answers with an error on the same connection
			action, resp := receive(t, conn)
			assert.Equal(t, "error", action)
			assert.Equal(t, "malformed message", resp.Error)
		})
	}

	// And: the session survives and still accepts moves
	_, err := st.Sessions.GetByID(ctx, greeting.SessionID)
	require.NoError(t, err)

	send(t, conn, "game:play", map[string]int{"cell": 0})
	_, resp := receive(t, conn)
	require.Empty(t, resp.Error)
	assert.Equal(t, entity.MarkX, resp.View.Squares[0].Mark)
}

func TestServer_SessionEndsOnDisconnect(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a connected client
	conn := st.Dial(ctx)
	_, payload := receive(t, conn)

	_, err := st.GameManager.GetView(ctx, payload.SessionID)
	require.NoError(t, err)

	// When: the client closes the connection
	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	// Then: the session is dropped
	assert.Eventually(t, func() bool {
		_, err := st.Sessions.GetByID(ctx, payload.SessionID)
		return err != nil
	}, 5*time.Second, 20*time.Millisecond)
}
