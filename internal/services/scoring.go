package services

import "math"

type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// Points maps an answer to the points it earns. More options and faster
// answers are worth more; wrong or late answers earn nothing. The formula is a
// compatibility contract with previously recorded leaderboards: a correct
// answer with 50s left of a 60s window over 4 options must score exactly 445.
func (s *ScoringService) Points(isCorrect bool, timeRemainingSeconds, timePerQuestionSeconds float64, numberOfOptions int) int {
	if !isCorrect || timeRemainingSeconds <= 0 || timePerQuestionSeconds <= 0 {
		return 0
	}
	difficulty := 80.0 * float64(numberOfOptions) / timePerQuestionSeconds
	return int(math.Ceil(100.0 * difficulty * (timeRemainingSeconds / timePerQuestionSeconds)))
}
