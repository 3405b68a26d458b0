package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cospace/internal/events"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsPair upgrades a loopback connection and registers the server side with
// the hub, returning the client side for assertions.
func wsPair(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
		close(registered)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	<-registered
	return client
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := wsPair(t, hub)
	require.Equal(t, 1, hub.ConnectionCount())

	hub.Broadcast(AvailabilityUpdate{AreaID: 7, Date: "2026-09-01", AvailableSpots: 3})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got AvailabilityUpdate
	require.NoError(t, client.ReadJSON(&got))

	assert.Equal(t, int64(7), got.AreaID)
	assert.Equal(t, "2026-09-01", got.Date)
	assert.Equal(t, 3, got.AvailableSpots)
}

func TestHub_RunTranslatesEvents(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := wsPair(t, hub)

	bus := events.NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		hub.Run(ctx, bus.Subscribe())
		close(done)
	}()

	// Give Run a moment to park on the channel before publishing.
	time.Sleep(10 * time.Millisecond)
	bus.Publish(events.ReservationCreated{
		ReservationID: 1,
		AreaID:        42,
		Date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		SpotsAfter:    0,
	})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got AvailabilityUpdate
	require.NoError(t, client.ReadJSON(&got))

	assert.Equal(t, int64(42), got.AreaID)
	assert.Equal(t, "2026-09-15", got.Date)
	assert.Equal(t, 0, got.AvailableSpots)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on context cancel")
	}
}

func TestHub_UnregisterDropsConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	_ = wsPair(t, hub)
	require.Equal(t, 1, hub.ConnectionCount())

	hub.Close()
	assert.Equal(t, 0, hub.ConnectionCount())
}
