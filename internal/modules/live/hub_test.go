package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_BroadcastReachesViewer(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub)

	for i := 0; hub.ViewerCount() == 0 && i < 100; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, hub.ViewerCount())

	completedAt := time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)
	hub.BroadcastDonation("Devotee", 501, "For Hanuman Jayanti", completedAt)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event FeedEvent
	require.NoError(t, json.Unmarshal(msg, &event))
	assert.Equal(t, "Devotee", event.DonorName)
	assert.Equal(t, int64(501), event.Amount)
	assert.Equal(t, "For Hanuman Jayanti", event.Note)
	assert.True(t, event.CompletedAt.Equal(completedAt))
}

func TestHub_UnregisterDropsViewer(t *testing.T) {
	hub := NewHub()
	_ = dialHub(t, hub)

	for i := 0; hub.ViewerCount() == 0 && i < 100; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, hub.ViewerCount())

	hub.Close()
	assert.Equal(t, 0, hub.ViewerCount())
}
