package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/models"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/services"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type CreateSessionRequest struct {
	QuizData     []models.Question   `json:"quizData" binding:"required"`
	QuizMetadata models.QuizMetadata `json:"quizMetadata" binding:"required"`
	HostID       string              `json:"hostId" binding:"required"`
}

type JoinSessionRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Username string `json:"username" binding:"required"`
	IsGuest  bool   `json:"isGuest"`
}

type SubmitAnswerRequest struct {
	PlayerID   string `json:"playerId" binding:"required"`
	QuestionID string `json:"questionId" binding:"required"`
	AnswerID   string `json:"answerId" binding:"required"`
	// Clients still send these two, but the server recomputes both from its
	// own timer and the question service; accepting them as authoritative
	// would let a player forge correctness or speed.
	IsCorrect    *bool    `json:"isCorrect,omitempty"`
	TimeToAnswer *float64 `json:"timeToAnswer,omitempty"`
}

// Create godoc
// @Summary      Create a quiz session
// @Description  Persist a new waiting session and return its join code
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body CreateSessionRequest true "Session data"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Router       /session/create [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields"})
		return
	}

	snap, err := h.sessions.Create(c.Request.Context(), req.QuizData, req.QuizMetadata, req.HostID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":      snap.Code,
		"sessionId": snap.SessionID,
	})
}

// Join godoc
// @Summary      Join a session as a player
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        code path string true "Session code"
// @Param        request body JoinSessionRequest true "Player data"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /session/{code}/join [post]
func (h *SessionHandler) Join(c *gin.Context) {
	var req JoinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields"})
		return
	}

	snap, err := h.sessions.Join(c.Request.Context(), c.Param("code"), req.PlayerID, req.Username, req.IsGuest)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": snap.SessionID,
		"players":   snap.Players,
	})
}

// Start godoc
// @Summary      Start the session
// @Tags         sessions
// @Produce      json
// @Param        code path string true "Session code"
// @Param        hostId query string true "Host id"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /session/{code}/start [get]
func (h *SessionHandler) Start(c *gin.Context) {
	hostID := c.Query("hostId")
	if hostID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing host ID"})
		return
	}

	snap, err := h.sessions.Start(c.Request.Context(), c.Param("code"), hostID)
	if errors.Is(err, services.ErrNotHost) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only the host can start the session"})
		return
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"status":               snap.Status,
		"currentQuestionIndex": snap.CurrentQuestionIndex,
	})
}

// Next godoc
// @Summary      Advance to the next question
// @Tags         sessions
// @Produce      json
// @Param        code path string true "Session code"
// @Param        hostId query string true "Host id"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /session/{code}/next [get]
func (h *SessionHandler) Next(c *gin.Context) {
	hostID := c.Query("hostId")
	if hostID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing host ID"})
		return
	}

	snap, err := h.sessions.Next(c.Request.Context(), c.Param("code"), hostID)
	if errors.Is(err, services.ErrNotHost) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only the host can navigate questions"})
		return
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"currentQuestionIndex": snap.CurrentQuestionIndex,
	})
}

// End godoc
// @Summary      End the session
// @Tags         sessions
// @Produce      json
// @Param        code path string true "Session code"
// @Param        hostId query string true "Host id"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /session/{code}/end [get]
func (h *SessionHandler) End(c *gin.Context) {
	hostID := c.Query("hostId")
	if hostID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing host ID"})
		return
	}

	snap, err := h.sessions.End(c.Request.Context(), c.Param("code"), hostID)
	if errors.Is(err, services.ErrNotHost) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only the host can end the session"})
		return
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  snap.Status,
		"players": snap.Players,
	})
}

// Answer godoc
// @Summary      Submit an answer for the current question
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        code path string true "Session code"
// @Param        request body SubmitAnswerRequest true "Answer data"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /session/{code}/answer [post]
func (h *SessionHandler) Answer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields"})
		return
	}

	result, err := h.sessions.SubmitAnswer(c.Request.Context(), c.Param("code"), req.PlayerID, req.QuestionID, req.AnswerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"score":   result.Score,
	})
}

// Status godoc
// @Summary      Read the session state
// @Tags         sessions
// @Produce      json
// @Param        code path string true "Session code"
// @Success      200 {object} services.Snapshot
// @Failure      404 {object} ErrorResponse
// @Router       /session/{code}/status [get]
func (h *SessionHandler) Status(c *gin.Context) {
	snap, err := h.sessions.Status(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":               snap.Status,
		"currentQuestionIndex": snap.CurrentQuestionIndex,
		"waitingForNext":       snap.WaitingForNext,
		"players":              snap.Players,
	})
}

// QuizData godoc
// @Summary      Fetch the session's quiz content
// @Description  Internal endpoint used by clients to render questions
// @Tags         sessions
// @Produce      json
// @Param        code path string true "Session code"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /internal/quizdata/{code} [get]
func (h *SessionHandler) QuizData(c *gin.Context) {
	quizData, quizMeta, err := h.sessions.Content(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quizData":     quizData,
		"quizMetaData": quizMeta,
	})
}
