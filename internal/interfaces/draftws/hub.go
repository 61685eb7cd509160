package draftws

import (
	"context"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

// Draft-room event names. The relay forwards whatever the publishers emit;
// it promises nothing about ordering or delivery.
const (
	EventConnected          = "connected"
	EventDraftUpdate        = "draft_update"
	EventScoreUpdate        = "score_update"
	EventPlayerStatusChange = "player_status_change"
)

// Event is the wire envelope for every draft-room message.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// Hub relays events to every connected draft-room client. Registration and
// broadcast flow through channels owned by the Run loop; the only lock-free
// shared state is each client's buffered send channel.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	clients    map[*client]struct{}
	logger     *logging.Logger
	now        func() time.Time
}

func NewHub(logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
		logger:     logger,
		now:        time.Now,
	}
}

// Run owns the client set until ctx is canceled. Start it once, in its own
// goroutine, before serving upgrades.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("draft room hub started")
	defer h.logger.Info("draft room hub stopped")
	// Signals the pumps that the loop is gone, so no registration send
	// can block forever after shutdown.
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				c.stop()
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.logger.Debug("draft room client joined", "clients", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				c.stop()
				delete(h.clients, c)
			}
			h.logger.Debug("draft room client left", "clients", len(h.clients))

		case payload := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					// A full buffer means the client cannot keep up;
					// dropping it beats stalling everyone else.
					c.stop()
					delete(h.clients, c)
					h.logger.Warn("draft room client dropped, send buffer full")
				}
			}
		}
	}
}

// Publish fans an event out to all connected clients. Encoding failures are
// logged and swallowed; the relay has no way to repair a bad payload.
func (h *Hub) Publish(eventType string, data any) {
	payload, err := h.encode(eventType, data)
	if err != nil {
		h.logger.Error("encode draft room event failed", "event", eventType, "error", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("draft room broadcast queue full, event dropped", "event", eventType)
	}
}

func (h *Hub) encode(eventType string, data any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	err := sonic.ConfigDefault.NewEncoder(buf).Encode(Event{
		Type:      eventType,
		Data:      data,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	raw := buf.B
	if n := len(raw); n > 0 && raw[n-1] == '\n' {
		raw = raw[:n-1]
	}
	return append([]byte(nil), raw...), nil
}
