package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitea.kood.tech/petrkubec/travel-buddy/chat"
)

func dialUser(t *testing.T, s *testServer, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws/" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return s.app.relay.Registry().Online(userID) }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func getHistory(t *testing.T, h http.Handler, a, b string) []chat.Message {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat/history/"+a+"/"+b, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		ChatHistory []chat.Message `json:"chat_history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotNil(t, out.ChatHistory)
	return out.ChatHistory
}

func TestChatOverWebSocket(t *testing.T) {
	s := newTestServer(t, nil)
	h := s.server.Config.Handler

	bob := dialUser(t, s, "bob")
	alice := dialUser(t, s, "alice")

	before := time.Now()
	require.NoError(t, alice.WriteJSON(map[string]string{"receiver_id": "bob", "message": "See you in Goa?"}))

	require.NoError(t, bob.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt chat.Event
	require.NoError(t, bob.ReadJSON(&evt))
	assert.Equal(t, "message", evt.Type)
	assert.Equal(t, "alice", evt.SenderID)
	assert.Equal(t, "See you in Goa?", evt.Message)
	require.NotNil(t, evt.Timestamp)
	assert.False(t, evt.Timestamp.Before(before.Add(-time.Millisecond)))

	history := getHistory(t, h, "alice", "bob")
	require.Len(t, history, 1)
	assert.Equal(t, "alice", history[0].SenderID)
	assert.Equal(t, "bob", history[0].ReceiverID)
	assert.Equal(t, "See you in Goa?", history[0].Body)
	assert.Equal(t, history, getHistory(t, h, "bob", "alice"))
}

func TestChatMalformedFrame(t *testing.T) {
	s := newTestServer(t, nil)
	alice := dialUser(t, s, "alice")

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, alice.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt chat.Event
	require.NoError(t, alice.ReadJSON(&evt))
	assert.Equal(t, "error", evt.Type)

	// The session survives and can still send.
	require.NoError(t, alice.WriteJSON(map[string]string{"receiver_id": "bob", "message": "hello"}))
	require.Eventually(t, func() bool {
		msgs, err := s.app.relay.History(context.Background(), "alice", "bob")
		return err == nil && len(msgs) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestChatOfflineReceiver(t *testing.T) {
	s := newTestServer(t, nil)
	h := s.server.Config.Handler

	bob := dialUser(t, s, "bob")
	require.NoError(t, bob.Close())
	require.Eventually(t, func() bool { return !s.app.relay.Registry().Online("bob") }, 2*time.Second, 10*time.Millisecond)

	alice := dialUser(t, s, "alice")
	require.NoError(t, alice.WriteJSON(map[string]string{"receiver_id": "bob", "message": "are you there?"}))

	require.Eventually(t, func() bool {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat/history/bob/alice", nil))
		return strings.Contains(w.Body.String(), "are you there?")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestChatHistoryHandler(t *testing.T) {
	s := newTestServer(t, nil)
	h := s.server.Config.Handler
	ctx := context.Background()

	_, _, err := s.app.relay.Send(ctx, "u1", "u2", "first")
	require.NoError(t, err)
	_, _, err = s.app.relay.Send(ctx, "u2", "u1", "second")
	require.NoError(t, err)
	_, _, err = s.app.relay.Send(ctx, "u1", "u3", "elsewhere")
	require.NoError(t, err)

	t.Run("Both directions in order", func(t *testing.T) {
		history := getHistory(t, h, "u1", "u2")
		require.Len(t, history, 2)
		assert.Equal(t, "first", history[0].Body)
		assert.Equal(t, "second", history[1].Body)
	})

	t.Run("Empty history encodes as list", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat/history/u2/u3", nil))
		assert.JSONEq(t, `{"chat_history":[]}`, w.Body.String())
	})

	t.Run("Malformed path", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat/history/u1", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Wrong HTTP method", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat/history/u1/u2", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestServerShutdownReleasesSessions(t *testing.T) {
	s := newTestServer(t, nil)
	dialUser(t, s, "carol")

	s.cancel()
	require.Eventually(t, func() bool { return s.app.relay.Registry().Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}
