package draftws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T, srv *httptest.Server, apiKey string) (*websocket.Conn, *http.Response) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "?api_key=" + apiKey
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, resp
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn, resp
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(payload, &event))
	return event
}

func TestHub_RejectsBadAPIKey(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(logging.NewNop())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler([]string{"good"}))
	defer srv.Close()

	conn, resp := dialTestHub(t, srv, "bad")
	require.Nil(t, conn)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHub_ConnectedGreetingAndBroadcast(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(logging.NewNop())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler([]string{"good"}))
	defer srv.Close()

	first, _ := dialTestHub(t, srv, "good")
	require.NotNil(t, first)
	second, _ := dialTestHub(t, srv, "good")
	require.NotNil(t, second)

	assert.Equal(t, EventConnected, readEvent(t, first).Type)
	assert.Equal(t, EventConnected, readEvent(t, second).Type)

	hub.Publish(EventDraftUpdate, map[string]any{"overall": 12, "teamId": 3})

	for _, conn := range []*websocket.Conn{first, second} {
		event := readEvent(t, conn)
		assert.Equal(t, EventDraftUpdate, event.Type)
		assert.NotEmpty(t, event.Timestamp)
		data, ok := event.Data.(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 12, data["overall"])
	}
}

func TestHub_SlowClientIsDroppedNotBlocked(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(logging.NewNop())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler([]string{"good"}))
	defer srv.Close()

	healthy, _ := dialTestHub(t, srv, "good")
	require.NotNil(t, healthy)
	assert.Equal(t, EventConnected, readEvent(t, healthy).Type)

	// A client with no write pump never drains its send buffer.
	slow := newClient(nil)
	hub.register <- slow

	// Reading each event off the healthy connection keeps the broadcast
	// queue from overflowing before the slow buffer does.
	for i := 0; i <= sendBufferSize; i++ {
		hub.Publish(EventScoreUpdate, map[string]any{"seq": i})
		assert.Equal(t, EventScoreUpdate, readEvent(t, healthy).Type)
	}

	// Broadcasts are processed in order, so once this one lands on the
	// healthy connection the overflowing fan-out has fully finished.
	hub.Publish(EventDraftUpdate, map[string]any{"overall": 1})
	assert.Equal(t, EventDraftUpdate, readEvent(t, healthy).Type)

	received := 0
	for closed := false; !closed; {
		select {
		case _, ok := <-slow.send:
			if ok {
				received++
			} else {
				closed = true
			}
		case <-time.After(2 * time.Second):
			t.Fatal("slow client send channel never closed")
		}
	}
	assert.Equal(t, sendBufferSize, received, "buffer drains to its capacity and then closes")
}

func TestHub_ReadPumpExitsAfterShutdown(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(logging.NewNop())
	go hub.Run(ctx)

	pumpDone := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := newClient(conn)
		go func() {
			c.readPump(hub)
			close(pumpDone)
		}()
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	cancel()
	select {
	case <-hub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub never signaled shutdown")
	}

	// With the run loop gone, the pump's unregister handoff must not
	// block once the connection drops.
	require.NoError(t, conn.Close())
	select {
	case <-pumpDone:
	case <-time.After(2 * time.Second):
		t.Fatal("read pump still blocked after hub shutdown")
	}
}

func TestHub_DisconnectedClientIsForgotten(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(logging.NewNop())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler([]string{"good"}))
	defer srv.Close()

	gone, _ := dialTestHub(t, srv, "good")
	require.NotNil(t, gone)
	stays, _ := dialTestHub(t, srv, "good")
	require.NotNil(t, stays)

	readEvent(t, gone)
	readEvent(t, stays)

	require.NoError(t, gone.Close())
	time.Sleep(100 * time.Millisecond)

	hub.Publish(EventScoreUpdate, map[string]any{"week": 3})
	event := readEvent(t, stays)
	assert.Equal(t, EventScoreUpdate, event.Type)
}
