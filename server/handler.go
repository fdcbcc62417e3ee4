package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createGameRequest struct {
	Position string `json:"position"`
}

type clickRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// CreateGameHandler starts a game, optionally from a FEN placement.
func CreateGameHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createGameRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		sess, err := store.Create(req.Position)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": sess.ID, "state": sess.State()})
	}
}

func GetGameHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := store.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusOK, sess.State())
	}
}

// ClickHandler applies a click and broadcasts the new state to the game's watchers
// before the session accepts another click.
func ClickHandler(store *Store, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		sess, ok := store.Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		var req clickRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Row == nil || req.Col == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "row and col required"})
			return
		}
		state, err := sess.Click(*req.Row, *req.Col, hub.Publisher(id, ActionUpdated))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func ResetHandler(store *Store, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		sess, ok := store.Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		state := sess.Reset(hub.Publisher(id, ActionReset))
		c.JSON(http.StatusOK, state)
	}
}
