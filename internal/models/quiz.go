package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type AnswerOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Question struct {
	QuestionID    string         `json:"questionId"`
	Prompt        string         `json:"prompt"`
	AnswerOptions []AnswerOption `json:"answerOptions"`
	ImageRef      string         `json:"imageRef,omitempty"`
}

// QuizData is the ordered question sequence, immutable after session creation.
// It is stored as a single jsonb column.
type QuizData []Question

func (q QuizData) Value() (driver.Value, error) {
	return json.Marshal(q)
}

func (q *QuizData) Scan(value interface{}) error {
	return scanJSON(value, q)
}

type QuizMetadata struct {
	QuizName               string `json:"quizName"`
	Category               string `json:"category,omitempty"`
	TimePerQuestionSeconds int    `json:"timePerQuestionSeconds"`
}

func (m QuizMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *QuizMetadata) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("models: unsupported column type for json scan")
	}
}
