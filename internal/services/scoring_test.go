package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsReferenceVector(t *testing.T) {
	scoring := NewScoringService()

	// 50s left of a 60s window over 4 options: ceil(100 * (80*4/60) * (50/60)).
	assert.Equal(t, 445, scoring.Points(true, 50, 60, 4))
}

func TestPointsIncorrectEarnsNothing(t *testing.T) {
	scoring := NewScoringService()

	assert.Equal(t, 0, scoring.Points(false, 50, 60, 4))
	assert.Equal(t, 0, scoring.Points(false, 60, 60, 2))
}

func TestPointsLateOrDegenerateEarnsNothing(t *testing.T) {
	scoring := NewScoringService()

	assert.Equal(t, 0, scoring.Points(true, 0, 60, 4))
	assert.Equal(t, 0, scoring.Points(true, -3, 60, 4))
	assert.Equal(t, 0, scoring.Points(true, 10, 0, 4))
}

func TestPointsFasterAnswersEarnMore(t *testing.T) {
	scoring := NewScoringService()

	slow := scoring.Points(true, 10, 60, 4)
	fast := scoring.Points(true, 55, 60, 4)
	assert.Greater(t, fast, slow)
	assert.Positive(t, slow)
}

func TestPointsMoreOptionsEarnMore(t *testing.T) {
	scoring := NewScoringService()

	two := scoring.Points(true, 30, 60, 2)
	six := scoring.Points(true, 30, 60, 6)
	assert.Greater(t, six, two)
}
