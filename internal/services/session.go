package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/clients"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/models"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/stats"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/store"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/ws"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
	codeRetries  = 10
)

// Broadcaster fans an event out to every connection in a session's room.
// Implemented by the websocket hub.
type Broadcaster interface {
	Broadcast(room, event string, payload interface{})
}

// SessionService owns the session lifecycle: waiting -> active -> finished.
// All mutations of one code run under that code's mutex, so a host command, a
// player answer and a timer expiry can never interleave within a session.
// Operations on different codes proceed in parallel.
type SessionService struct {
	store       store.Store
	scoring     *ScoringService
	timers      *TimerService
	answers     clients.AnswerClient
	hub         Broadcaster
	results     stats.Publisher
	revealPause time.Duration
	log         *logrus.Entry

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionService(st store.Store, scoring *ScoringService, timers *TimerService, answers clients.AnswerClient, hub Broadcaster, results stats.Publisher, revealPause time.Duration) *SessionService {
	return &SessionService{
		store:       st,
		scoring:     scoring,
		timers:      timers,
		answers:     answers,
		hub:         hub,
		results:     results,
		revealPause: revealPause,
		log:         logrus.WithField("component", "session"),
		locks:       make(map[string]*sync.Mutex),
	}
}

// Snapshot is the broadcast-friendly view of a session.
type Snapshot struct {
	SessionID            string          `json:"sessionId"`
	Code                 string          `json:"code"`
	HostID               string          `json:"hostId"`
	Status               string          `json:"status"`
	CurrentQuestionIndex int             `json:"currentQuestionIndex"`
	WaitingForNext       bool            `json:"waitingForNext"`
	Players              []models.Player `json:"players"`
}

// AnswerResult reports the outcome of one submitted answer back to the player.
type AnswerResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
	Points        int    `json:"points"`
	Score         int    `json:"score"`
}

func snapshotOf(s *models.Session) *Snapshot {
	players := make([]models.Player, len(s.Players))
	copy(players, s.Players)
	return &Snapshot{
		SessionID:            s.ID,
		Code:                 s.Code,
		HostID:               s.HostID,
		Status:               s.Status,
		CurrentQuestionIndex: s.CurrentQuestionIndex,
		WaitingForNext:       s.WaitingForNext,
		Players:              players,
	}
}

func (s *SessionService) lockFor(code string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[code] = lock
	}
	return lock
}

func (s *SessionService) load(ctx context.Context, code string) (*models.Session, error) {
	sess, err := s.store.Get(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	return sess, err
}

// Create persists a new waiting session under a fresh collision-checked code.
func (s *SessionService) Create(ctx context.Context, quizData []models.Question, meta models.QuizMetadata, hostID string) (*Snapshot, error) {
	if hostID == "" || len(quizData) == 0 || meta.QuizName == "" || meta.TimePerQuestionSeconds <= 0 {
		return nil, ErrMissingFields
	}

	for attempt := 0; attempt < codeRetries; attempt++ {
		sess := &models.Session{
			ID:                   uuid.NewString(),
			Code:                 newCode(),
			HostID:               hostID,
			QuizData:             quizData,
			QuizMetadata:         meta,
			Status:               models.SessionStatusWaiting,
			CurrentQuestionIndex: -1,
			Players:              models.PlayerList{},
			CreatedAt:            time.Now(),
		}
		err := s.store.Create(ctx, sess)
		if errors.Is(err, store.ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{"code": sess.Code, "host": hostID}).Info("session created")
		return snapshotOf(sess), nil
	}
	return nil, fmt.Errorf("could not allocate a unique session code")
}

// Join adds a player to a waiting session. Joining mid-game is disallowed so
// every player answers the same question sequence.
func (s *SessionService) Join(ctx context.Context, code, playerID, username string, isGuest bool) (*Snapshot, error) {
	lock := s.lockFor(code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.SessionStatusWaiting {
		return nil, ErrAlreadyStarted
	}
	if sess.PlayerIndex(playerID) >= 0 {
		return nil, ErrPlayerExists
	}

	player := models.Player{
		ID:       playerID,
		Username: username,
		IsGuest:  isGuest,
		Score:    0,
		Answers:  []models.PlayerAnswer{},
	}
	sess.Players = append(sess.Players, player)
	if err := s.store.Update(ctx, sess); err != nil {
		return nil, err
	}

	s.hub.Broadcast(code, ws.EventPlayerJoined, ws.PlayerJoinedPayload{Player: player})
	return snapshotOf(sess), nil
}

// Start moves the session to active on question 0 and arms its timer.
func (s *SessionService) Start(ctx context.Context, code, hostID string) (*Snapshot, error) {
	lock := s.lockFor(code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if sess.HostID != hostID {
		return nil, ErrNotHost
	}
	if sess.Status != models.SessionStatusWaiting {
		return nil, ErrAlreadyStarted
	}
	if len(sess.Players) == 0 {
		return nil, ErrNoPlayers
	}

	now := time.Now()
	sess.Status = models.SessionStatusActive
	sess.CurrentQuestionIndex = 0
	sess.WaitingForNext = false
	sess.StartedAt = &now
	if err := s.store.Update(ctx, sess); err != nil {
		return nil, err
	}

	s.armQuestionTimer(sess)
	s.hub.Broadcast(code, ws.EventSessionStarted, ws.SessionStartedPayload{
		Status:                 sess.Status,
		CurrentQuestionIndex:   sess.CurrentQuestionIndex,
		TimePerQuestionSeconds: sess.QuizMetadata.TimePerQuestionSeconds,
	})
	s.log.WithField("code", code).Info("session started")
	return snapshotOf(sess), nil
}

// SubmitAnswer records one answer for the current question. Correctness comes
// from the question service and elapsed time from the server-side timer, so a
// manipulated client clock cannot inflate scores.
func (s *SessionService) SubmitAnswer(ctx context.Context, code, playerID, questionID, answerID string) (*AnswerResult, error) {
	lock := s.lockFor(code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.SessionStatusActive {
		return nil, ErrNotActive
	}
	idx := sess.PlayerIndex(playerID)
	if idx < 0 {
		return nil, ErrPlayerNotFound
	}
	question := sess.CurrentQuestion()
	if question == nil || question.QuestionID != questionID || sess.WaitingForNext {
		return nil, ErrAnswerWindowClosed
	}
	if sess.Players[idx].HasAnswered(questionID) {
		return nil, ErrDuplicateAnswer
	}

	elapsed, armed := s.timers.Elapsed(code)
	window := time.Duration(sess.QuizMetadata.TimePerQuestionSeconds) * time.Second
	if !armed || elapsed > window {
		return nil, ErrAnswerWindowClosed
	}

	correctAnswer, err := s.answers.CorrectAnswer(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnswerUnavailable, err)
	}

	isCorrect := answerID == correctAnswer
	remaining := (window - elapsed).Seconds()
	points := s.scoring.Points(isCorrect, remaining, window.Seconds(), len(question.AnswerOptions))

	sess.Players[idx].Answers = append(sess.Players[idx].Answers, models.PlayerAnswer{
		QuestionID:          questionID,
		AnswerID:            answerID,
		IsCorrect:           isCorrect,
		TimeToAnswerSeconds: elapsed.Seconds(),
	})
	sess.Players[idx].Score += points
	if err := s.store.Update(ctx, sess); err != nil {
		return nil, err
	}

	s.hub.Broadcast(code, ws.EventAnswerSubmitted, ws.AnswerSubmittedPayload{
		PlayerID:      playerID,
		Score:         sess.Players[idx].Score,
		AnsweredCount: sess.AnsweredCount(questionID),
	})
	return &AnswerResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: correctAnswer,
		Points:        points,
		Score:         sess.Players[idx].Score,
	}, nil
}

// Next advances the session to the next question or finishes it on the last
// one. A call while the reveal pause is in progress returns the current
// snapshot unchanged, which collapses races between the timer and a host
// click into a single advance.
func (s *SessionService) Next(ctx context.Context, code, hostID string) (*Snapshot, error) {
	lock := s.lockFor(code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if sess.HostID != hostID {
		return nil, ErrNotHost
	}
	if sess.Status == models.SessionStatusFinished {
		return s.finalSnapshot(sess), nil
	}
	if sess.Status != models.SessionStatusActive {
		return nil, ErrNotActive
	}
	if sess.WaitingForNext {
		return snapshotOf(sess), nil
	}
	return s.advanceLocked(ctx, sess)
}

// End finishes the session. Idempotent once finished.
func (s *SessionService) End(ctx context.Context, code, hostID string) (*Snapshot, error) {
	lock := s.lockFor(code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if sess.HostID != hostID {
		return nil, ErrNotHost
	}
	if sess.Status == models.SessionStatusFinished {
		return s.finalSnapshot(sess), nil
	}
	if sess.Status != models.SessionStatusActive {
		return nil, ErrNotActive
	}
	return s.finishLocked(ctx, sess)
}

// Status returns a read-only snapshot. Reads skip the code lock; the store
// hands out copies so pollers never observe a half-applied mutation.
func (s *SessionService) Status(ctx context.Context, code string) (*Snapshot, error) {
	sess, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}
	return snapshotOf(sess), nil
}

// Content returns the immutable quiz content for players fetching questions.
func (s *SessionService) Content(ctx context.Context, code string) (models.QuizData, models.QuizMetadata, error) {
	sess, err := s.load(ctx, code)
	if err != nil {
		return nil, models.QuizMetadata{}, err
	}
	return sess.QuizData, sess.QuizMetadata, nil
}

// RemovePlayer drops a disconnected player from a not-yet-finished session.
// Finished standings are left untouched.
func (s *SessionService) RemovePlayer(ctx context.Context, code, playerID string) error {
	lock := s.lockFor(code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, code)
	if err != nil {
		return err
	}
	if sess.Status == models.SessionStatusFinished {
		return nil
	}
	idx := sess.PlayerIndex(playerID)
	if idx < 0 {
		return ErrPlayerNotFound
	}
	removed := sess.Players[idx]
	sess.Players = append(sess.Players[:idx], sess.Players[idx+1:]...)
	if err := s.store.Update(ctx, sess); err != nil {
		return err
	}

	s.hub.Broadcast(code, ws.EventPlayerLeft, ws.PlayerLeftPayload{
		PlayerID: removed.ID,
		Username: removed.Username,
		Players:  append([]models.Player{}, sess.Players...),
	})
	return nil
}

// CloseQuestion is the question-timer expiry path: the answer window shuts,
// players see correctness feedback, and after the reveal pause the session
// advances through the same path a host's next would take. questionIndex is
// the index the timer was armed for; a stale fire is a no-op.
func (s *SessionService) CloseQuestion(code string, questionIndex int) {
	ctx := context.Background()
	lock := s.lockFor(code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, code)
	if err != nil {
		return
	}
	if sess.Status != models.SessionStatusActive || sess.WaitingForNext || sess.CurrentQuestionIndex != questionIndex {
		return
	}

	sess.WaitingForNext = true
	if err := s.store.Update(ctx, sess); err != nil {
		s.log.WithError(err).WithField("code", code).Error("close question persist failed")
		return
	}

	question := sess.CurrentQuestion()
	if correct, err := s.answers.CorrectAnswer(ctx, question.QuestionID); err != nil {
		s.log.WithError(err).WithField("code", code).Warn("correct answer unavailable at reveal")
	} else {
		s.hub.Broadcast(code, ws.EventShowCorrectAnswer, ws.ShowCorrectAnswerPayload{
			QuestionID:    question.QuestionID,
			CorrectAnswer: correct,
		})
	}
	s.hub.Broadcast(code, ws.EventWaitingForNext, ws.WaitingForNextPayload{
		CurrentQuestionIndex: sess.CurrentQuestionIndex,
	})
	s.hub.Broadcast(code, ws.EventScoreUpdated, ws.ScoreUpdatedPayload{Players: sess.Leaderboard()})

	s.timers.Arm(code, questionIndex, s.revealPause, func(q int) {
		s.autoAdvance(code, q)
	})
}

// autoAdvance ends the reveal pause started by CloseQuestion.
func (s *SessionService) autoAdvance(code string, questionIndex int) {
	ctx := context.Background()
	lock := s.lockFor(code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, code)
	if err != nil {
		return
	}
	if sess.Status != models.SessionStatusActive || !sess.WaitingForNext || sess.CurrentQuestionIndex != questionIndex {
		return
	}
	sess.WaitingForNext = false
	if _, err := s.advanceLocked(ctx, sess); err != nil {
		s.log.WithError(err).WithField("code", code).Error("auto advance failed")
	}
}

// advanceLocked moves to the next question, or finishes when the current one
// was the last. Caller holds the code lock.
func (s *SessionService) advanceLocked(ctx context.Context, sess *models.Session) (*Snapshot, error) {
	if sess.CurrentQuestionIndex+1 >= len(sess.QuizData) {
		return s.finishLocked(ctx, sess)
	}

	sess.CurrentQuestionIndex++
	sess.WaitingForNext = false
	if err := s.store.Update(ctx, sess); err != nil {
		return nil, err
	}

	s.armQuestionTimer(sess)
	s.hub.Broadcast(sess.Code, ws.EventQuestionChanged, ws.QuestionChangedPayload{
		CurrentQuestionIndex:   sess.CurrentQuestionIndex,
		TimePerQuestionSeconds: sess.QuizMetadata.TimePerQuestionSeconds,
		QuestionID:             sess.QuizData[sess.CurrentQuestionIndex].QuestionID,
	})
	return snapshotOf(sess), nil
}

// finishLocked is the single path into the finished state. The index stays on
// the last question so its results become the final standings.
func (s *SessionService) finishLocked(ctx context.Context, sess *models.Session) (*Snapshot, error) {
	now := time.Now()
	sess.Status = models.SessionStatusFinished
	sess.WaitingForNext = false
	sess.EndedAt = &now
	if err := s.store.Update(ctx, sess); err != nil {
		return nil, err
	}

	s.timers.Disarm(sess.Code)
	final := s.finalSnapshot(sess)
	s.hub.Broadcast(sess.Code, ws.EventSessionEnded, ws.SessionEndedPayload{
		Status:  sess.Status,
		Players: final.Players,
	})
	if err := s.results.SessionFinished(ctx, stats.FinishedSession{
		SessionID: sess.ID,
		Code:      sess.Code,
		HostID:    sess.HostID,
		QuizName:  sess.QuizMetadata.QuizName,
		Category:  sess.QuizMetadata.Category,
		Players:   final.Players,
		StartedAt: sess.StartedAt,
		EndedAt:   sess.EndedAt,
	}); err != nil {
		s.log.WithError(err).WithField("code", sess.Code).Warn("could not publish session results")
	}
	s.log.WithField("code", sess.Code).Info("session finished")
	return final, nil
}

// finalSnapshot orders players as the final leaderboard.
func (s *SessionService) finalSnapshot(sess *models.Session) *Snapshot {
	snap := snapshotOf(sess)
	snap.Players = sess.Leaderboard()
	return snap
}

func (s *SessionService) armQuestionTimer(sess *models.Session) {
	window := time.Duration(sess.QuizMetadata.TimePerQuestionSeconds) * time.Second
	s.timers.Arm(sess.Code, sess.CurrentQuestionIndex, window, func(q int) {
		s.CloseQuestion(sess.Code, q)
	})
}

func newCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
