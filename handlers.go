package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammadolammi/resumestatus/internal/review"
	"go.uber.org/zap"
)

// respondError maps review errors onto status codes. Anything that is not a
// review error is logged and reported as a bare 500.
func (cfg *ServerConfig) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, review.ErrBadRequest):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, review.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		cfg.Log.Error("request failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

func (cfg *ServerConfig) checkStatusHandler(c *gin.Context) {
	var body checkStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Student Code and Auth Code are required"})
		return
	}

	view, err := cfg.Service.CheckStatus(c.Request.Context(), body.StudentCode, body.AuthCode)
	if err != nil {
		cfg.respondError(c, "check_status", err)
		return
	}

	c.JSON(http.StatusOK, checkStatusResponse{
		ResumeLink: view.ResumeLink,
		Status:     string(view.Status),
		Feedback:   view.Feedback,
	})
}

func (cfg *ServerConfig) updateResumeHandler(c *gin.Context) {
	var body updateResumeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Student Code and new Resume Link are required"})
		return
	}

	receipt, err := cfg.Service.Resubmit(c.Request.Context(), body.StudentCode, body.NewResumeLink)
	if err != nil {
		cfg.respondError(c, "update_resume", err)
		return
	}

	c.JSON(http.StatusOK, updateResumeResponse{
		Success: true,
		Message: receipt.Message,
	})
}

func (cfg *ServerConfig) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "OK",
		Message:   "Resume status service is running",
		Backend:   cfg.BackendName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
