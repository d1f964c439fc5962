package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/your-org/fitcheck/internal/models"
	"github.com/your-org/fitcheck/internal/observability"
	"github.com/your-org/fitcheck/internal/queue"
	"github.com/your-org/fitcheck/pkg/dto"
)

const EventAnalysisCompleted = "analysis_completed"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a connected WebSocket client.
type Client struct {
	conn  *websocket.Conn
	send  chan []byte
	style string // optional filter, lower-case
}

type message struct {
	style string
	data  []byte
}

// Hub maintains active WebSocket clients and broadcasts completed analyses.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

var _ queue.Publisher = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub event loop until ctx is done. Call this in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.drop(client)
			}
			h.mu.Unlock()
			close(h.done)
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			observability.WSConnections.Inc()
			slog.Debug("ws client connected", "filter", client.style)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}
			h.mu.Unlock()
			slog.Debug("ws client disconnected")

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if client.style != "" && client.style != msg.style {
					continue
				}

				select {
				case client.send <- msg.data:
				default:
					// Client buffer full, disconnect
					h.drop(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop must be called with h.mu held.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	observability.WSConnections.Dec()
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastRecord sends a completed analysis to all matching clients.
// It drops the message rather than block when the hub is saturated.
func (h *Hub) BroadcastRecord(rec models.StyleMetricsRecord) {
	data, err := json.Marshal(dto.WSEvent{
		Type:   EventAnalysisCompleted,
		Style:  rec.Style,
		Record: &rec,
	})
	if err != nil {
		slog.Error("marshal ws event", "error", err)
		return
	}

	select {
	case h.broadcast <- message{style: strings.ToLower(string(rec.Style)), data: data}:
	default:
		slog.Warn("ws broadcast queue full, dropping event", "record_id", rec.ID)
	}
}

// PublishResult lets the hub stand in for a broker when none is configured.
func (h *Hub) PublishResult(_ context.Context, rec models.StyleMetricsRecord) error {
	h.BroadcastRecord(rec)
	return nil
}

// HandleResult adapts the hub to a queue.ResultHandler.
func (h *Hub) HandleResult(_ context.Context, ev queue.ResultEvent) error {
	h.BroadcastRecord(ev.Record)
	return nil
}

// HandleWS handles WebSocket upgrade requests. ?style= limits delivery to one style.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		conn:  conn,
		send:  make(chan []byte, 64),
		style: strings.ToLower(strings.TrimSpace(c.Query("style"))),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
