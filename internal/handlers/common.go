package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// writeServiceError maps a state-machine failure onto its fixed HTTP status
// and message. Host-authorization failures are phrased per endpoint, so
// callers handle services.ErrNotHost before reaching here.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Session not found"})
	case errors.Is(err, services.ErrMissingFields):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields"})
	case errors.Is(err, services.ErrAlreadyStarted):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Session has already started"})
	case errors.Is(err, services.ErrPlayerExists):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Player already exists in this session"})
	case errors.Is(err, services.ErrNoPlayers):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Session has no players"})
	case errors.Is(err, services.ErrNotActive):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Session is not active"})
	case errors.Is(err, services.ErrAnswerWindowClosed):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Answer window has closed"})
	case errors.Is(err, services.ErrDuplicateAnswer):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Player has already answered this question"})
	case errors.Is(err, services.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Player not found in this session"})
	case errors.Is(err, services.ErrAnswerUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Answer service unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
