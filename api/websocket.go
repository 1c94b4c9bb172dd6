package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pendantrelay/config"
	"pendantrelay/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024, // base64 frames and audio envelopes
}

// ChannelKind tags a connection at registration time. A connection keeps
// its kind for its whole lifetime; it is never inferred per-message.
type ChannelKind string

const (
	KindViewer        ChannelKind = "viewer"
	KindDeviceControl ChannelKind = "device-control"
)

// Envelope is the shape of every outbound WebSocket message.
type Envelope struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

type Client struct {
	hub  *WebSocketHub
	conn *websocket.Conn
	send chan []byte
	kind ChannelKind
}

// WebSocketHub keeps the two disjoint connection sets and fans messages
// out to them. Registration and removal flow through the Run loop; the
// maps are guarded by mu so broadcasts can read them concurrently.
type WebSocketHub struct {
	viewers        map[*Client]bool
	deviceControls map[*Client]bool
	register       chan *Client
	unregister     chan *Client
	state          *service.StateStore
	log            zerolog.Logger
	mu             sync.RWMutex
}

func NewWebSocketHub(state *service.StateStore, log zerolog.Logger) *WebSocketHub {
	return &WebSocketHub{
		viewers:        make(map[*Client]bool),
		deviceControls: make(map[*Client]bool),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		state:          state,
		log:            log,
	}
}

func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.registryFor(client.kind)[client] = true
			viewers, controls := len(h.viewers), len(h.deviceControls)
			h.mu.Unlock()

			h.log.Info().
				Str("kind", string(client.kind)).
				Int("viewers", viewers).
				Int("deviceControls", controls).
				Msg("client connected")

			// New viewers get the current snapshot right away so the
			// app renders without waiting for the next report.
			if client.kind == KindViewer {
				h.welcome(client)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			registry := h.registryFor(client.kind)
			if _, ok := registry[client]; ok {
				delete(registry, client)
				close(client.send)
			}
			viewers, controls := len(h.viewers), len(h.deviceControls)
			h.mu.Unlock()

			h.log.Info().
				Str("kind", string(client.kind)).
				Int("viewers", viewers).
				Int("deviceControls", controls).
				Msg("client disconnected")
		}
	}
}

func (h *WebSocketHub) registryFor(kind ChannelKind) map[*Client]bool {
	if kind == KindDeviceControl {
		return h.deviceControls
	}
	return h.viewers
}

func (h *WebSocketHub) welcome(client *Client) {
	raw, err := json.Marshal(Envelope{
		Topic:   topicTelemetry,
		Payload: h.state.Read(),
	})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to marshal welcome snapshot")
		return
	}
	select {
	case client.send <- raw:
	default:
		h.log.Warn().Msg("welcome snapshot dropped, send buffer full")
	}
}

// BroadcastToViewers sends {topic,payload} to every open viewer
// connection and returns how many accepted it.
func (h *WebSocketHub) BroadcastToViewers(topic string, payload interface{}) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := h.broadcast(h.viewers, topic, payload)
	h.log.Debug().Str("topic", topic).Int("sent", sent).Int("viewers", len(h.viewers)).Msg("broadcast to viewers")
	return sent
}

// BroadcastToDevice sends {topic,payload} to every open device-control
// connection and returns how many accepted it.
func (h *WebSocketHub) BroadcastToDevice(topic string, payload interface{}) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := h.broadcast(h.deviceControls, topic, payload)
	h.log.Debug().Str("topic", topic).Int("sent", sent).Int("deviceControls", len(h.deviceControls)).Msg("broadcast to device")
	return sent
}

// broadcast serializes once and fans out. Clients whose buffers are full
// are skipped without error; removal only happens through the unregister
// path. Callers hold at least a read lock.
func (h *WebSocketHub) broadcast(registry map[*Client]bool, topic string, payload interface{}) int {
	raw, err := json.Marshal(Envelope{Topic: topic, Payload: payload})
	if err != nil {
		h.log.Error().Err(err).Str("topic", topic).Msg("failed to marshal broadcast")
		return 0
	}

	sent := 0
	for client := range registry {
		select {
		case client.send <- raw:
			sent++
		default:
			h.log.Warn().Str("kind", string(client.kind)).Str("topic", topic).Msg("client buffer full, message skipped")
		}
	}
	return sent
}

// ViewerCount reports the number of registered viewer connections.
func (h *WebSocketHub) ViewerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// DeviceControlCount reports the number of registered device-control
// connections.
func (h *WebSocketHub) DeviceControlCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.deviceControls)
}

// HandleViewerWebSocket upgrades a viewer (app) connection.
func HandleViewerWebSocket(hub *WebSocketHub, c *gin.Context) {
	handleWebSocket(hub, c, KindViewer)
}

// HandleDeviceWebSocket upgrades the pendant's control connection.
func HandleDeviceWebSocket(hub *WebSocketHub, c *gin.Context) {
	handleWebSocket(hub, c, KindDeviceControl)
}

func handleWebSocket(hub *WebSocketHub, c *gin.Context, kind ChannelKind) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.log.Error().Err(err).Str("kind", string(kind)).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 64),
		kind: kind,
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains inbound messages. Both channel kinds may send
// structured commands; they are logged and otherwise ignored for now.
// Malformed messages are dropped without closing the connection.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn().Err(err).Str("kind", string(c.kind)).Msg("websocket read error")
			}
			break
		}

		var msg map[string]interface{}
		if err := json.Unmarshal(message, &msg); err != nil {
			c.hub.log.Warn().Err(err).Str("kind", string(c.kind)).Msg("malformed message dropped")
			continue
		}

		c.hub.log.Info().
			Str("kind", string(c.kind)).
			Interface("message", msg).
			Msg("inbound message")
	}
}

// writePump sends queued messages and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
