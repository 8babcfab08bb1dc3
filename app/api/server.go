package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP engine with all routes configured. The
// data endpoints are enabled only when an access key is set.
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", handler.GetHealth)

	if apiAccessKey != "" {
		authed := r.Group("/")
		authed.Use(authMiddleware(apiAccessKey))
		{
			authed.GET("/shows", handler.ListShows)
			authed.GET("/shows/:id/episodes", handler.GetShowEpisodes)
			authed.GET("/digest", handler.GetDigestPreview)
			authed.GET("/tasks", handler.GetTasks)
			authed.POST("/tasks/:id/complete", handler.CompleteTask)
			authed.POST("/tasks/:id/postpone", handler.PostponeTask)
		}
		slog.Info("API endpoints enabled with authentication")
	} else {
		slog.Info("API endpoints disabled (API_ACCESS_KEY not set)")
	}

	return r
}

func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			key = c.Query("key")
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(apiAccessKey)) != 1 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}
