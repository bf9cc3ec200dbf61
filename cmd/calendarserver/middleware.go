package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// logMiddleware logs each request with method, path, status, and duration,
// the same fields cmd/server/middleware.go's logMiddleware records.
func logMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	slog.Info("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start).Round(time.Millisecond),
		"remote", c.ClientIP(),
	)
}

// recoveryMiddleware catches panics, logs the stack trace, and returns a
// problem-shaped 500 instead of gin's default plaintext body.
func recoveryMiddleware(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			slog.Error("panic recovered",
				"error", fmt.Sprintf("%v", err),
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, problem{
				Category: ProblemInternal,
				Message:  "internal server error",
			})
		}
	}()
	c.Next()
}

// corsMiddleware adds CORS headers when origins is non-empty; an empty
// origins list disables CORS entirely, as in the teacher's middleware.
func corsMiddleware(origins string) gin.HandlerFunc {
	if origins == "" {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origins)
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
