package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/fitcheck/internal/models"
	"github.com/your-org/fitcheck/pkg/dto"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func readEvent(t *testing.T, conn *websocket.Conn) dto.WSEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev dto.WSEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestHub_BroadcastsToAllClients(t *testing.T) {
	hub, srv := startHub(t)
	a := dial(t, srv, "")
	b := dial(t, srv, "")
	waitForClients(t, hub, 2)

	rec := models.StyleMetricsRecord{ID: uuid.New(), Rating: 8, Style: models.StyleCasual}
	require.NoError(t, hub.PublishResult(context.Background(), rec))

	for _, conn := range []*websocket.Conn{a, b} {
		ev := readEvent(t, conn)
		assert.Equal(t, EventAnalysisCompleted, ev.Type)
		require.NotNil(t, ev.Record)
		assert.Equal(t, rec.ID, ev.Record.ID)
	}
}

func TestHub_StyleFilter(t *testing.T) {
	hub, srv := startHub(t)
	filtered := dial(t, srv, "?style=Elegant")
	waitForClients(t, hub, 1)

	hub.BroadcastRecord(models.StyleMetricsRecord{ID: uuid.New(), Style: models.StyleCasual})
	want := models.StyleMetricsRecord{ID: uuid.New(), Style: models.StyleElegant}
	hub.BroadcastRecord(want)

	ev := readEvent(t, filtered)
	assert.Equal(t, models.StyleElegant, ev.Style)
	assert.Equal(t, want.ID, ev.Record.ID)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "")
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}
