package main

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"gitea.kood.tech/petrkubec/travel-buddy/chat"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS allow-list, not here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws/{user_id}
// Sessions run under base so shutdown ends every one of them.
func wsChatHandler(base context.Context, gateway *chat.Gateway, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := pathParts(r)
		if len(parts) != 2 || parts[0] != "ws" || parts[1] == "" {
			http.NotFound(w, r)
			return
		}
		userID := parts[1]

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("ws upgrade failed")
			return
		}
		gateway.Serve(base, conn, userID)
	}
}

// GET /chat/history/{user1_id}/{user2_id}
func chatHistoryHandler(relay *chat.Relay, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		parts := pathParts(r)
		if len(parts) != 4 || parts[0] != "chat" || parts[1] != "history" || parts[2] == "" || parts[3] == "" {
			http.NotFound(w, r)
			return
		}

		msgs, err := relay.History(r.Context(), parts[2], parts[3])
		if err != nil {
			log.WithError(err).Error("history query failed")
			writeError(w, http.StatusInternalServerError, "history_error")
			return
		}
		if msgs == nil {
			msgs = []chat.Message{}
		}
		writeJSON(w, http.StatusOK, map[string][]chat.Message{"chat_history": msgs})
	}
}
