package ws

import "github.com/Arquisoft/wichat-en2b-sub000/internal/models"

// Realtime event names. Each name has exactly one payload type below; the hub
// refuses to broadcast names outside this set.
const (
	EventJoinedSession     = "joined-session"
	EventHostingSession    = "hosting-session"
	EventPlayerJoined      = "player-joined"
	EventPlayerLeft        = "player-left"
	EventSessionStarted    = "session-started"
	EventQuestionChanged   = "question-changed"
	EventShowCorrectAnswer = "show-correct-answer"
	EventWaitingForNext    = "waiting-for-next"
	EventAnswerSubmitted   = "answer-submitted"
	EventScoreUpdated      = "score-updated"
	EventSessionEnded      = "session-ended"
	EventError             = "error"
)

var knownEvents = map[string]bool{
	EventJoinedSession:     true,
	EventHostingSession:    true,
	EventPlayerJoined:      true,
	EventPlayerLeft:        true,
	EventSessionStarted:    true,
	EventQuestionChanged:   true,
	EventShowCorrectAnswer: true,
	EventWaitingForNext:    true,
	EventAnswerSubmitted:   true,
	EventScoreUpdated:      true,
	EventSessionEnded:      true,
	EventError:             true,
}

type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type JoinedSessionPayload struct {
	Code      string          `json:"code"`
	SessionID string          `json:"sessionId"`
	PlayerID  string          `json:"playerId"`
	Players   []models.Player `json:"players"`
}

type HostingSessionPayload struct {
	Code      string `json:"code"`
	SessionID string `json:"sessionId"`
}

type PlayerJoinedPayload struct {
	Player models.Player `json:"player"`
}

type PlayerLeftPayload struct {
	PlayerID string          `json:"playerId"`
	Username string          `json:"username"`
	Players  []models.Player `json:"players"`
}

type SessionStartedPayload struct {
	Status                 string `json:"status"`
	CurrentQuestionIndex   int    `json:"currentQuestionIndex"`
	TimePerQuestionSeconds int    `json:"timePerQuestionSeconds"`
}

type QuestionChangedPayload struct {
	CurrentQuestionIndex   int    `json:"currentQuestionIndex"`
	TimePerQuestionSeconds int    `json:"timePerQuestionSeconds"`
	QuestionID             string `json:"questionId"`
}

type ShowCorrectAnswerPayload struct {
	QuestionID    string `json:"questionId"`
	CorrectAnswer string `json:"correctAnswer"`
}

type WaitingForNextPayload struct {
	CurrentQuestionIndex int `json:"currentQuestionIndex"`
}

// AnswerSubmittedPayload deliberately omits the chosen answer so other players
// cannot learn it from the broadcast.
type AnswerSubmittedPayload struct {
	PlayerID      string `json:"playerId"`
	Score         int    `json:"score"`
	AnsweredCount int    `json:"answeredCount"`
}

type ScoreUpdatedPayload struct {
	Players []models.Player `json:"players"`
}

type SessionEndedPayload struct {
	Status  string          `json:"status"`
	Players []models.Player `json:"players"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
