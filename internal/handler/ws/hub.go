// Package ws pushes rendered dashboard frames and detail charts to websocket
// subscribers.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"FinDash/internal/domain/models"
	applogger "FinDash/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	readLimit  = 512
	sendBuffer = 16
)

// Message types.
const (
	TypeView   = "view"
	TypeSeries = "series"
)

// Message is the envelope written to subscribers.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub manages subscribers and broadcasts to all of them. A subscriber that
// cannot keep up is dropped. New subscribers receive the last frame first.
type Hub struct {
	upgrader   websocket.Upgrader
	clients    map[*client]struct{}
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}

	mu   sync.RWMutex
	last []byte
	l    *applogger.Logger
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// SetLogger injects a structured logger.
func (h *Hub) SetLogger(l *applogger.Logger) { h.l = l }

// Run is the hub event loop. It returns when ctx is cancelled, closing every
// subscriber.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
					h.warn("ws slow_subscriber_dropped")
				}
			}
		}
	}
}

// Render publishes a frame and remembers it for late subscribers.
func (h *Hub) Render(_ context.Context, v models.DashboardView) {
	msg, err := json.Marshal(Message{Type: TypeView, Payload: v})
	if err != nil {
		h.warn("ws encode_failed")
		return
	}
	h.mu.Lock()
	h.last = msg
	h.mu.Unlock()
	h.publish(msg)
}

// ShowChart publishes a detail series.
func (h *Hub) ShowChart(_ context.Context, s models.Series) {
	msg, err := json.Marshal(Message{Type: TypeSeries, Payload: s})
	if err != nil {
		h.warn("ws encode_failed")
		return
	}
	h.publish(msg)
}

func (h *Hub) publish(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		h.warn("ws broadcast_dropped")
	}
}

// Serve upgrades the request and streams messages until the peer goes away.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.RLock()
	if h.last != nil {
		cl.send <- h.last
	}
	h.mu.RUnlock()

	select {
	case h.register <- cl:
	case <-h.done:
		return conn.Close()
	}

	go h.writePump(cl)
	h.readPump(cl)
	return nil
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages; it exists to process control frames
// and notice disconnects.
func (h *Hub) readPump(cl *client) {
	defer func() {
		select {
		case h.unregister <- cl:
		case <-h.done:
		}
		_ = cl.conn.Close()
	}()

	cl.conn.SetReadLimit(readLimit)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) warn(msg string) {
	if h.l != nil {
		h.l.Warn(msg)
	}
}
