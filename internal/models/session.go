package models

import (
	"sort"
	"time"
)

const (
	SessionStatusWaiting  = "waiting"
	SessionStatusActive   = "active"
	SessionStatusFinished = "finished"
)

// Session is one live quiz run, addressed by its short join code. While a
// session is active it has exactly one logical writer (the serialized handler
// for its code); Version backs the compare-and-swap used by durable stores.
type Session struct {
	ID                   string       `gorm:"primaryKey;size:36" json:"sessionId"`
	Code                 string       `gorm:"size:6;uniqueIndex" json:"code"`
	HostID               string       `gorm:"size:64;not null;index" json:"hostId"`
	QuizData             QuizData     `gorm:"type:jsonb" json:"quizData"`
	QuizMetadata         QuizMetadata `gorm:"type:jsonb" json:"quizMetadata"`
	Status               string       `gorm:"size:20;not null;default:'waiting'" json:"status"`
	CurrentQuestionIndex int          `gorm:"not null;default:-1" json:"currentQuestionIndex"`
	WaitingForNext       bool         `gorm:"not null;default:false" json:"waitingForNext"`
	Players              PlayerList   `gorm:"type:jsonb" json:"players"`
	Version              int          `gorm:"not null;default:0" json:"version"`
	CreatedAt            time.Time    `json:"createdAt"`
	StartedAt            *time.Time   `json:"startedAt,omitempty"`
	EndedAt              *time.Time   `json:"endedAt,omitempty"`
}

// Player returns the index of the player with the given id, or -1.
func (s *Session) PlayerIndex(playerID string) int {
	for i := range s.Players {
		if s.Players[i].ID == playerID {
			return i
		}
	}
	return -1
}

// CurrentQuestion returns the question the session is on, or nil while waiting
// or when the index is out of range.
func (s *Session) CurrentQuestion() *Question {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.QuizData) {
		return nil
	}
	return &s.QuizData[s.CurrentQuestionIndex]
}

// AnsweredCount counts the players that answered the given question.
func (s *Session) AnsweredCount(questionID string) int {
	n := 0
	for i := range s.Players {
		if s.Players[i].HasAnswered(questionID) {
			n++
		}
	}
	return n
}

// Leaderboard returns the players ordered by score descending. Ties keep the
// original join order, never username or id order.
func (s *Session) Leaderboard() []Player {
	ranked := make([]Player, len(s.Players))
	copy(ranked, s.Players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Clone deep-copies the session so stores can hand out records that callers
// may mutate without racing the stored state.
func (s *Session) Clone() *Session {
	out := *s
	out.QuizData = make(QuizData, len(s.QuizData))
	copy(out.QuizData, s.QuizData)
	for i := range out.QuizData {
		opts := make([]AnswerOption, len(s.QuizData[i].AnswerOptions))
		copy(opts, s.QuizData[i].AnswerOptions)
		out.QuizData[i].AnswerOptions = opts
	}
	out.Players = make(PlayerList, len(s.Players))
	copy(out.Players, s.Players)
	for i := range out.Players {
		answers := make([]PlayerAnswer, len(s.Players[i].Answers))
		copy(answers, s.Players[i].Answers)
		out.Players[i].Answers = answers
	}
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	if s.EndedAt != nil {
		t := *s.EndedAt
		out.EndedAt = &t
	}
	return &out
}
