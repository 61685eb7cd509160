package draftws

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The REST layer's CORS policy governs browsers; the upgrade itself
	// is guarded by the API key below.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler upgrades draft-room connections. Browsers cannot set custom
// headers on a WebSocket handshake, so the key also travels as the api_key
// query parameter.
func (h *Hub) Handler(apiKeys []string) http.Handler {
	keySet := make(map[string]struct{}, len(apiKeys))
	for _, key := range apiKeys {
		if candidate := strings.TrimSpace(key); candidate != "" {
			keySet[candidate] = struct{}{}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := strings.TrimSpace(r.Header.Get("X-API-Key"))
		if provided == "" {
			provided = strings.TrimSpace(r.URL.Query().Get("api_key"))
		}
		if _, ok := keySet[provided]; !ok {
			http.Error(w, "invalid API key", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("draft room upgrade failed", "error", err)
			return
		}

		c := newClient(conn)
		select {
		case h.register <- c:
		case <-h.done:
			_ = conn.Close()
			return
		}

		go c.writePump()
		go c.readPump(h)

		// Greet directly so the welcome never races a concurrent broadcast.
		if payload, err := h.encode(EventConnected, map[string]string{"status": "ok"}); err == nil {
			select {
			case c.send <- payload:
			case <-time.After(writeWait):
			}
		}
	})
}
