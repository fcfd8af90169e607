package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"gitea.kood.tech/petrkubec/travel-buddy/chat"
)

// GET /presence/{user_id}
func presenceHandler(presence chat.Presence, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		parts := pathParts(r)
		if len(parts) != 2 || parts[0] != "presence" || parts[1] == "" {
			http.NotFound(w, r)
			return
		}

		online, err := presence.IsOnline(r.Context(), parts[1])
		if err != nil {
			log.WithError(err).Warn("presence lookup failed")
			writeError(w, http.StatusServiceUnavailable, "presence_unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"user_id": parts[1], "online": online})
	}
}
