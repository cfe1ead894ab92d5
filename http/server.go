// Package http serves the upload form through which saved Google Maps pages
// are imported into the workspace table.
package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NewServer creates a gin engine with all routes configured. Callers set the
// gin mode before building the engine.
func NewServer(handler *Handler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestID())
	r.Use(requestLogger(logger))
	r.Use(gin.Recovery())

	r.MaxMultipartMemory = handler.maxUploadSize()

	r.GET("/", handler.Index)
	r.POST("/upload", handler.Upload)
	r.GET("/status", handler.Status)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})

	return r
}

const requestIDKey = "request_id"

// requestID tags every request with a unique id, echoed in X-Request-ID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// requestLogger logs one line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
			"request_id", c.GetString(requestIDKey),
		)
	}
}
