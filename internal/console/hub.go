// Package console streams re-rendered alarm lists and device log lines to
// open pages over a websocket.
package console

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
	"github.com/Raimguzhinov/alarm-go/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	TypeRender  = "render"
	TypeConsole = "console"

	LevelLog   = "log"
	LevelError = "error"

	sendBuffer = 16
	writeWait  = 5 * time.Second
)

// Message is one frame sent to the page.
type Message struct {
	Type  string `json:"type"`
	Level string `json:"level,omitempty"`
	Text  string `json:"text,omitempty"`
	HTML  string `json:"html,omitempty"`
	Count int    `json:"count"`
}

// RenderFunc draws the alarm list fragment.
type RenderFunc func(w io.Writer, alarms []alarm.Alarm) error

type client struct {
	id   string
	conn *websocket.Conn
	send chan Message
}

// Hub fans messages out to every connected page. Clients that can't keep
// up are dropped.
type Hub struct {
	render RenderFunc
	log    *logger.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(render RenderFunc, l *logger.Logger) *Hub {
	return &Hub{
		render:  render,
		log:     l.With(slog.String("component", "console/hub")),
		clients: make(map[*client]struct{}),
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: sameOrigin}

// sameOrigin accepts only pages served by this host. Requests without an
// Origin header come from non-browser clients.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// ServeHTTP upgrades the request and keeps the client registered until the
// connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", logger.Err(err))
		return
	}

	c := &client{id: uuid.NewString(), conn: conn, send: make(chan Message, sendBuffer)}
	h.add(c)
	h.log.Debug("console attached", slog.String("client", c.id))

	go h.writePump(c)

	// pages never talk back; reading only detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
	h.log.Debug("console detached", slog.String("client", c.id))
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Clients returns the number of attached pages.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues msg for every client.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warn("dropping slow console", slog.String("client", c.id))
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// AlarmsChanged redraws the list on every page.
func (h *Hub) AlarmsChanged(alarms []alarm.Alarm) {
	var buf bytes.Buffer
	if err := h.render(&buf, alarms); err != nil {
		h.log.Error("render alarm list", logger.Err(err))
		return
	}
	h.Broadcast(Message{Type: TypeRender, HTML: buf.String(), Count: len(alarms)})
}

func (h *Hub) Log(text string) {
	h.Broadcast(Message{Type: TypeConsole, Level: LevelLog, Text: text})
}

func (h *Hub) Error(text string) {
	h.Broadcast(Message{Type: TypeConsole, Level: LevelError, Text: text})
}

// Close detaches every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
