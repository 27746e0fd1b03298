package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

// Event names pushed to room subscribers.
const (
	EventWaiting  = "waiting"
	EventStart    = "start"
	EventMoveMade = "move_made"
	EventGameOver = "game_over"
)

type Event struct {
	Type string `json:"type"`
	Room string `json:"room"`
	Data any    `json:"data,omitempty"`
}

type client struct {
	conn *websocket.Conn
	room string
	send chan []byte
}

// Hub fans room events out to every websocket subscribed to that room.
// Clients only listen; moves travel over the JSON API.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades GET /ws?room=<id> and keeps the subscription open
// until the peer goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("room")
	if room == "" {
		http.Error(w, "missing room", http.StatusBadRequest)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Debug("websocket upgrade failed")
		return
	}
	c := &client{conn: conn, room: room, send: make(chan []byte, sendBuffer)}
	h.register(c)
	logrus.WithField("room", room).Debug("subscriber joined")

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.rooms[c.room]
	if !ok {
		subs = make(map[*client]struct{})
		h.rooms[c.room] = subs
	}
	subs[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := subs[c]; !ok {
		return
	}
	delete(subs, c)
	close(c.send)
	if len(subs) == 0 {
		delete(h.rooms, c.room)
	}
}

// readLoop only watches for pongs and the close frame.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
		logrus.WithField("room", c.room).Debug("subscriber left")
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Broadcast queues ev for every subscriber of room. A subscriber whose
// buffer is full is dropped.
func (h *Hub) Broadcast(room string, ev Event) {
	ev.Room = room
	msg, err := json.Marshal(ev)
	if err != nil {
		logrus.WithError(err).WithField("event", ev.Type).Error("encode event")
		return
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.rooms[room] {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		logrus.WithField("room", room).Warn("dropping slow subscriber")
		h.unregister(c)
	}
}

// Subscribers counts the open connections of room.
func (h *Hub) Subscribers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
