package main

import (
	"github.com/muhammadolammi/resumestatus/internal/store"
	"go.uber.org/zap"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Config is everything read from the environment.
type Config struct {
	Port               string
	Backend            string
	Sheets             store.SheetsConfig
	XLSXPath           string
	DBURL              string
	LinkPrefix         string
	RabbitMQURL        string
	R2                 *R2Config
	RedisAddr          string
	RateLimitPerMinute int
	TrustedProxies     []string
	Debug              bool
}

// ServerConfig holds the wired dependencies of the HTTP server.
type ServerConfig struct {
	Service     reviewService
	Limiter     lookupLimiter
	BackendName string
	// TrustedProxies may set X-Forwarded-For; empty means the client IP is
	// always the connection's remote address.
	TrustedProxies []string
	Log            *zap.Logger
}

type checkStatusRequest struct {
	StudentCode string `json:"studentCode"`
	AuthCode    string `json:"authCode"`
}

type checkStatusResponse struct {
	ResumeLink string `json:"resumeLink"`
	Status     string `json:"status"`
	Feedback   string `json:"feedback"`
}

type updateResumeRequest struct {
	StudentCode   string `json:"studentCode"`
	NewResumeLink string `json:"newResumeLink"`
}

type updateResumeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Backend   string `json:"backend"`
	Timestamp string `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}
