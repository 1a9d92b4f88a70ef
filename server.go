package main

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammadolammi/resumestatus/internal/review"
	"go.uber.org/zap"
)

//go:embed public/index.html
var indexHTML []byte

//go:embed public/script.js
var scriptJS []byte

// reviewService is what the HTTP handlers need from review.Service.
type reviewService interface {
	CheckStatus(ctx context.Context, studentCode, authCode string) (review.StatusView, error)
	Resubmit(ctx context.Context, studentCode, newResumeLink string) (review.Receipt, error)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware allows the page to be served from anywhere.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func recoverInternal(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic while handling request",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	})
}

// throttle limits status lookups per client IP.
func throttle(l lookupLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l != nil && !l.Allow(c.Request.Context(), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "Too many attempts, please try again later"})
			return
		}
		c.Next()
	}
}

// NewRouter builds the gin engine with every route.
func NewRouter(cfg *ServerConfig) *gin.Engine {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		cfg.Log.Error("invalid trusted proxies, trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(requestLogger(cfg.Log), recoverInternal(cfg.Log), corsMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})
	r.GET("/script.js", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/javascript; charset=utf-8", scriptJS)
	})
	r.GET("/health", cfg.healthHandler)

	api := r.Group("/api")
	{
		api.POST("/check-status", throttle(cfg.Limiter), cfg.checkStatusHandler)
		api.POST("/update-resume", cfg.updateResumeHandler)
	}

	return r
}
