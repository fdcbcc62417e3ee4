package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"termchess/types"
)

// Broadcast actions.
const (
	ActionState   = "state"
	ActionUpdated = "state-updated"
	ActionReset   = "game-reset"
	ActionError   = "error"
)

type message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Hub tracks the WebSocket connections watching each game.
type Hub struct {
	mu    sync.Mutex // also serializes writes; a conn allows one writer
	games map[string]map[*websocket.Conn]struct{}
	log   log.Interface
}

func NewHub(logger log.Interface) *Hub {
	if logger == nil {
		logger = log.Log
	}
	return &Hub{
		games: make(map[string]map[*websocket.Conn]struct{}),
		log:   logger,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWS upgrades the request and relays click and reset actions for one game.
func (h *Hub) HandleWS(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		sess, ok := store.Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.WithError(err).WithField("game", id).Warn("websocket upgrade failed")
			return
		}
		logger := h.log.WithField("game", id)
		logger.Debug("websocket connected")

		h.join(id, conn)
		defer func() {
			h.leave(id, conn)
			_ = conn.Close()
			logger.Debug("websocket closed")
		}()
		h.send(conn, ActionState, sess.State())

		for {
			var msg message
			if err := conn.ReadJSON(&msg); err != nil {
				break
			}

			switch msg.Action {
			case "click":
				var req clickRequest
				if err := json.Unmarshal(msg.Data, &req); err != nil || req.Row == nil || req.Col == nil {
					h.send(conn, ActionError, gin.H{"error": "row and col required"})
					continue
				}
				if _, err := sess.Click(*req.Row, *req.Col, h.Publisher(id, ActionUpdated)); err != nil {
					h.send(conn, ActionError, gin.H{"error": err.Error()})
				}
			case "reset":
				sess.Reset(h.Publisher(id, ActionReset))
			case "state":
				h.send(conn, ActionState, sess.State())
			default:
				logger.WithField("action", msg.Action).Warn("unknown action")
			}
		}
	}
}

// Broadcast sends {"action", "data"} to every connection watching the game.
// Connections that fail to receive it are dropped.
func (h *Hub) Broadcast(id string, action string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.games[id]
	if !ok {
		return
	}
	msg := gin.H{"action": action, "data": data}
	for conn := range clients {
		if err := conn.WriteJSON(msg); err != nil {
			h.log.WithError(err).WithField("game", id).Warn("failed to send message")
			conn.Close()
			delete(clients, conn)
		}
	}
}

// Publisher returns a function broadcasting board states under action.
func (h *Hub) Publisher(id string, action string) func(*types.BoardState) {
	return func(state *types.BoardState) {
		h.Broadcast(id, action, state)
	}
}

// Watchers returns the number of connections watching the game.
func (h *Hub) Watchers(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.games[id])
}

func (h *Hub) send(conn *websocket.Conn, action string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := conn.WriteJSON(gin.H{"action": action, "data": data}); err != nil {
		h.log.WithError(err).Warn("failed to send message")
	}
}

func (h *Hub) join(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.games[id]; !ok {
		h.games[id] = make(map[*websocket.Conn]struct{})
	}
	h.games[id][conn] = struct{}{}
}

func (h *Hub) leave(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.games[id], conn)
	if len(h.games[id]) == 0 {
		delete(h.games, id)
	}
}
