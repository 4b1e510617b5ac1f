package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/services"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/stats"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/store/memory"
)

type nopHub struct{}

func (nopHub) Broadcast(string, string, interface{}) {}

type stubAnswers struct{ answer string }

func (s stubAnswers) CorrectAnswer(context.Context, string) (string, error) {
	return s.answer, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	timers := services.NewTimerService()
	t.Cleanup(timers.Shutdown)
	svc := services.NewSessionService(
		memory.New(),
		services.NewScoringService(),
		timers,
		stubAnswers{answer: "a2"},
		nopHub{},
		stats.NopPublisher{},
		time.Hour,
	)
	h := NewSessionHandler(svc)

	r := gin.New()
	session := r.Group("/session")
	{
		session.POST("/create", h.Create)
		session.POST("/:code/join", h.Join)
		session.GET("/:code/start", h.Start)
		session.GET("/:code/next", h.Next)
		session.GET("/:code/end", h.End)
		session.POST("/:code/answer", h.Answer)
		session.GET("/:code/status", h.Status)
	}
	r.GET("/internal/quizdata/:code", h.QuizData)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createBody() map[string]interface{} {
	return map[string]interface{}{
		"hostId": "host-1",
		"quizData": []map[string]interface{}{
			{
				"questionId": "q1",
				"prompt":     "capital of France?",
				"answerOptions": []map[string]string{
					{"id": "a1", "text": "Berlin"},
					{"id": "a2", "text": "Paris"},
					{"id": "a3", "text": "Rome"},
					{"id": "a4", "text": "Madrid"},
				},
			},
			{
				"questionId": "q2",
				"prompt":     "capital of Italy?",
				"answerOptions": []map[string]string{
					{"id": "a1", "text": "Milan"},
					{"id": "a2", "text": "Rome"},
				},
			},
		},
		"quizMetadata": map[string]interface{}{
			"quizName":               "capitals",
			"category":               "geography",
			"timePerQuestionSeconds": 60,
		},
	}
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/session/create", createBody())
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	code, ok := body["code"].(string)
	require.True(t, ok)
	require.Len(t, code, 6)
	return code
}

func joinSession(t *testing.T, r *gin.Engine, code, playerID string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/session/"+code+"/join", map[string]interface{}{
		"playerId": playerID,
		"username": "name-" + playerID,
		"isGuest":  true,
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func startSession(t *testing.T, r *gin.Engine, code string) {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/session/"+code+"/start?hostId=host-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreateEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/session/create", createBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["sessionId"])
	assert.Len(t, body["code"], 6)
}

func TestCreateEndpointMissingFields(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/session/create", map[string]interface{}{"hostId": "host-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", decodeBody(t, w)["error"])
}

func TestJoinEndpoint(t *testing.T) {
	r := newTestRouter(t)
	code := createSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/session/"+code+"/join", map[string]interface{}{
		"playerId": "p1",
		"username": "alice",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["players"], 1)

	w = doJSON(t, r, http.MethodPost, "/session/"+code+"/join", map[string]interface{}{
		"playerId": "p1",
		"username": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Player already exists in this session", decodeBody(t, w)["error"])
}

func TestJoinEndpointUnknownCode(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/session/NOPE00/join", map[string]interface{}{
		"playerId": "p1",
		"username": "alice",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Session not found", decodeBody(t, w)["error"])
}

func TestStartEndpoint(t *testing.T) {
	r := newTestRouter(t)
	code := createSession(t, r)

	w := doJSON(t, r, http.MethodGet, "/session/"+code+"/start", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing host ID", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, "/session/"+code+"/start?hostId=host-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Session has no players", decodeBody(t, w)["error"])

	joinSession(t, r, code, "p1")

	w = doJSON(t, r, http.MethodGet, "/session/"+code+"/start?hostId=impostor", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only the host can start the session", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, "/session/"+code+"/start?hostId=host-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, float64(0), body["currentQuestionIndex"])

	w = doJSON(t, r, http.MethodGet, "/session/"+code+"/start?hostId=host-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Session has already started", decodeBody(t, w)["error"])
}

func TestAnswerEndpoint(t *testing.T) {
	r := newTestRouter(t)
	code := createSession(t, r)
	joinSession(t, r, code, "p1")
	startSession(t, r, code)

	w := doJSON(t, r, http.MethodPost, "/session/"+code+"/answer", map[string]interface{}{
		"playerId":   "p1",
		"questionId": "q1",
		"answerId":   "a2",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Greater(t, body["score"], float64(0))

	w = doJSON(t, r, http.MethodPost, "/session/"+code+"/answer", map[string]interface{}{
		"playerId":   "p1",
		"questionId": "q1",
		"answerId":   "a2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Player has already answered this question", decodeBody(t, w)["error"])
}

func TestAnswerEndpointUnknownPlayer(t *testing.T) {
	r := newTestRouter(t)
	code := createSession(t, r)
	joinSession(t, r, code, "p1")
	startSession(t, r, code)

	w := doJSON(t, r, http.MethodPost, "/session/"+code+"/answer", map[string]interface{}{
		"playerId":   "ghost",
		"questionId": "q1",
		"answerId":   "a2",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Player not found in this session", decodeBody(t, w)["error"])
}

func TestAnswerEndpointIgnoresClientVerdict(t *testing.T) {
	r := newTestRouter(t)
	code := createSession(t, r)
	joinSession(t, r, code, "p1")
	startSession(t, r, code)

	// The client claims a correct instant answer, but a1 is wrong: no points.
	w := doJSON(t, r, http.MethodPost, "/session/"+code+"/answer", map[string]interface{}{
		"playerId":     "p1",
		"questionId":   "q1",
		"answerId":     "a1",
		"isCorrect":    true,
		"timeToAnswer": 0.001,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["score"])
}

func TestNextEndpoint(t *testing.T) {
	r := newTestRouter(t)
	code := createSession(t, r)
	joinSession(t, r, code, "p1")
	startSession(t, r, code)

	w := doJSON(t, r, http.MethodGet, "/session/"+code+"/next?hostId=p1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only the host can navigate questions", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, "/session/"+code+"/next?hostId=host-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["currentQuestionIndex"])
}

func TestEndEndpoint(t *testing.T) {
	r := newTestRouter(t)
	code := createSession(t, r)
	joinSession(t, r, code, "p1")
	startSession(t, r, code)

	w := doJSON(t, r, http.MethodGet, "/session/"+code+"/end?hostId=p1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only the host can end the session", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, "/session/"+code+"/end?hostId=host-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "finished", body["status"])
	assert.Len(t, body["players"], 1)
}

func TestEndEndpointBeforeStart(t *testing.T) {
	r := newTestRouter(t)
	code := createSession(t, r)

	w := doJSON(t, r, http.MethodGet, "/session/"+code+"/end?hostId=host-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Session is not active", decodeBody(t, w)["error"])
}

func TestStatusEndpoint(t *testing.T) {
	r := newTestRouter(t)
	code := createSession(t, r)

	w := doJSON(t, r, http.MethodGet, "/session/"+code+"/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "waiting", body["status"])
	assert.Equal(t, float64(-1), body["currentQuestionIndex"])
	assert.Equal(t, false, body["waitingForNext"])

	w = doJSON(t, r, http.MethodGet, "/session/NOPE00/status", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Session not found", decodeBody(t, w)["error"])
}

func TestQuizDataEndpoint(t *testing.T) {
	r := newTestRouter(t)
	code := createSession(t, r)

	w := doJSON(t, r, http.MethodGet, "/internal/quizdata/"+code, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["quizData"], 2)
	meta, ok := body["quizMetaData"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "capitals", meta["quizName"])

	w = doJSON(t, r, http.MethodGet, "/internal/quizdata/NOPE00", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
