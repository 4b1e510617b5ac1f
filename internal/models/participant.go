package models

import (
	"database/sql/driver"
	"encoding/json"
)

type PlayerAnswer struct {
	QuestionID          string  `json:"questionId"`
	AnswerID            string  `json:"answerId"`
	IsCorrect           bool    `json:"isCorrect"`
	TimeToAnswerSeconds float64 `json:"timeToAnswerSeconds"`
}

type Player struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	IsGuest  bool           `json:"isGuest"`
	Score    int            `json:"score"`
	Answers  []PlayerAnswer `json:"answers"`
}

// HasAnswered reports whether the player already answered the given question.
func (p *Player) HasAnswered(questionID string) bool {
	for _, a := range p.Answers {
		if a.QuestionID == questionID {
			return true
		}
	}
	return false
}

// PlayerList preserves join order; the leaderboard tie-break depends on it.
// It is stored as a single jsonb column.
type PlayerList []Player

func (l PlayerList) Value() (driver.Value, error) {
	if l == nil {
		l = PlayerList{}
	}
	return json.Marshal(l)
}

func (l *PlayerList) Scan(value interface{}) error {
	return scanJSON(value, l)
}
