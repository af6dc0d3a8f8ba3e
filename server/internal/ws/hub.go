package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/api"
	"github.com/launchdash/launchdash/server/internal/config"
	"github.com/launchdash/launchdash/server/internal/metrics"
	"github.com/launchdash/launchdash/server/internal/reactive"
	"github.com/launchdash/launchdash/server/internal/store"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong response before treating the
	// connection as dead.
	pongWait = 60 * time.Second

	// pingPeriod controls how often the server sends WebSocket ping frames.
	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBufSize is the per-client outgoing message buffer depth.
	sendBufSize = 16

	// maxInputSize caps one client message.
	maxInputSize = 4096
)

// Event names.
const (
	EventLayout = "layout"
	EventUpdate = "update"
	EventError  = "error"
	EventInput  = "input"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16384,
	// Allow all origins; apply CORS at the reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the JSON envelope sent to clients.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Input is a client message reporting a changed control value.
type Input struct {
	Event string          `json:"event"`
	ID    string          `json:"id"`
	Value json.RawMessage `json:"value"`
}

// ErrorData is the payload of an "error" event.
type ErrorData struct {
	Input string `json:"input,omitempty"`
	Error string `json:"error"`
}

// Hub manages WebSocket client connections. Each client owns a selection;
// its inputs run the triggered callbacks and the resulting updates are sent
// back to that client only. A dataset swap re-sends layout and every output
// to all clients.
type Hub struct {
	store     *store.Store
	registry  *reactive.Registry
	dashboard config.DashboardConfig
	metrics   *metrics.Server

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client represents one connected WebSocket client.
type client struct {
	conn *websocket.Conn
	send chan []byte

	mu  sync.Mutex // guards sel
	sel types.Selection
}

// New creates a Hub serving the callbacks in reg over the store's dataset.
func New(st *store.Store, reg *reactive.Registry, dash config.DashboardConfig, m *metrics.Server) *Hub {
	return &Hub{
		store:     st,
		registry:  reg,
		dashboard: dash,
		metrics:   m,
		clients:   make(map[*client]struct{}),
	}
}

// Run pushes fresh layout and outputs to every client whenever the store
// swaps its dataset. Run blocks until ctx is cancelled, then closes all
// active connections.
func (h *Hub) Run(ctx context.Context) {
	swaps, cancel := h.store.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case e, ok := <-swaps:
			if !ok {
				return
			}
			h.refreshAll(e)
		}
	}
}

// ServeHTTP upgrades the HTTP connection to WebSocket and serves the client.
// It sends the layout and every output for the default selection
// immediately, then answers input events. Blocks until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}

	e := h.store.Current()
	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufSize),
		sel:  api.DefaultSelection(e.Dataset),
	}
	h.register(c)
	defer h.unregister(c)

	// Send the initial page state so the UI has data right away.
	h.refresh(c, e)

	go c.writePump()
	h.readPump(c) // blocks until connection closes
}

// Count returns the number of currently connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// --- internal ---------------------------------------------------------------

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// deliver queues msg for c. A client whose buffer is full is disconnected.
func (h *Hub) deliver(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("ws: marshal failed", "event", msg.Event, "err", err)
		return
	}

	h.mu.RLock()
	_, live := h.clients[c]
	full := false
	if live {
		select {
		case c.send <- data:
		default:
			full = true
		}
	}
	h.mu.RUnlock()

	if full {
		// Outgoing buffer is full: disconnect the client.
		slog.Warn("ws: dropping slow client", "remote", c.conn.RemoteAddr().String())
		h.unregister(c)
	}
}

// refreshAll re-sends the full page state to every client after a swap.
func (h *Hub) refreshAll(e *store.Entry) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	slog.Info("ws: dataset changed, refreshing clients", "version", e.Version, "clients", len(targets))
	for _, c := range targets {
		h.refresh(c, e)
	}
}

// refresh sends layout plus every output for c's selection. A selection whose
// site no longer exists in e is reset to the defaults.
func (h *Hub) refresh(c *client, e *store.Entry) {
	c.mu.Lock()
	if !e.Dataset.ValidSite(c.sel.Site) {
		c.sel = api.DefaultSelection(e.Dataset)
	}
	sel := c.sel
	c.mu.Unlock()

	layout := api.BuildLayout(e, h.dashboard)
	layout.Dropdown.Value = sel.Site
	layout.Slider.Value = [2]float64{sel.PayloadRange.Low, sel.PayloadRange.High}
	h.deliver(c, Message{Event: EventLayout, Data: layout})

	h.sendUpdates(c, h.registry.RunAll(e.View, sel))
}

func (h *Hub) sendUpdates(c *client, updates []reactive.Update) {
	for _, u := range updates {
		result := "ok"
		if u.Error != "" {
			result = "error"
		}
		h.metrics.Callbacks.WithLabelValues(u.Output, result).Inc()
		h.deliver(c, Message{Event: EventUpdate, Data: u})
	}
}

// handleInput applies one input event to c's selection and sends the
// updates of the callbacks it triggers. Invalid input leaves the selection
// unchanged and produces an error event.
func (h *Hub) handleInput(c *client, raw []byte) {
	var in Input
	if err := json.Unmarshal(raw, &in); err != nil {
		h.reject(c, "", fmt.Errorf("malformed message: %w", err))
		return
	}
	if in.Event != EventInput {
		h.reject(c, in.ID, fmt.Errorf("unknown event %q", in.Event))
		return
	}

	e := h.store.Current()

	c.mu.Lock()
	next, err := applyInput(e, c.sel, in)
	if err == nil {
		c.sel = next
	}
	c.mu.Unlock()

	if err != nil {
		h.reject(c, in.ID, err)
		return
	}
	h.metrics.Inputs.WithLabelValues(in.ID, "ok").Inc()
	h.sendUpdates(c, h.registry.Run(e.View, next, in.ID))
}

func (h *Hub) reject(c *client, input string, err error) {
	if input == "" {
		input = "unknown"
	}
	h.metrics.Inputs.WithLabelValues(input, "rejected").Inc()
	h.deliver(c, Message{Event: EventError, Data: ErrorData{Input: input, Error: err.Error()}})
}

// applyInput returns sel with in applied, validated against e's dataset.
func applyInput(e *store.Entry, sel types.Selection, in Input) (types.Selection, error) {
	switch in.ID {
	case reactive.InputSite:
		var site string
		if err := json.Unmarshal(in.Value, &site); err != nil {
			return sel, fmt.Errorf("%s: want a string: %w", in.ID, err)
		}
		if err := api.ValidateSite(e.Dataset, site); err != nil {
			return sel, err
		}
		sel.Site = site
	case reactive.InputPayload:
		var v []float64
		if err := json.Unmarshal(in.Value, &v); err != nil || len(v) != 2 {
			return sel, fmt.Errorf("%s: want [low, high]", in.ID)
		}
		r := types.PayloadRange{Low: v[0], High: v[1]}
		if err := api.ValidateRange(r); err != nil {
			return sel, err
		}
		sel.PayloadRange = r
	default:
		return sel, fmt.Errorf("unknown input %q", in.ID)
	}
	return sel, nil
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// writePump drains the client's send channel and forwards messages to the
// WebSocket connection. It also sends periodic ping frames. Runs in its own
// goroutine per client.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Channel was closed (hub is shutting down or client removed).
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads client frames and handles input events one at a time, so
// each interaction's updates are queued before the next is processed.
// Blocks until the connection closes.
func (h *Hub) readPump(c *client) {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxInputSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		h.handleInput(c, msg)
	}
}
