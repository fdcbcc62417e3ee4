package server

import (
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func NewRouter(store *Store, hub *Hub, logger log.Interface) *gin.Engine {
	if logger == nil {
		logger = log.Log
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	games := r.Group("/games")
	games.POST("", CreateGameHandler(store))
	games.GET("/:id", GetGameHandler(store))
	games.POST("/:id/click", ClickHandler(store, hub))
	games.POST("/:id/reset", ResetHandler(store, hub))
	games.GET("/:id/ws", hub.HandleWS(store))

	return r
}

func requestLogger(logger log.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request")
	}
}
