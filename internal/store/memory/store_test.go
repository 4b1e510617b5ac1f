package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/models"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/store"
)

func testSession(code string) *models.Session {
	return &models.Session{
		ID:     "id-" + code,
		Code:   code,
		HostID: "host-1",
		QuizData: models.QuizData{
			{QuestionID: "q1", Prompt: "prompt", AnswerOptions: []models.AnswerOption{{ID: "a1"}, {ID: "a2"}}},
		},
		QuizMetadata:         models.QuizMetadata{QuizName: "capitals", TimePerQuestionSeconds: 60},
		Status:               models.SessionStatusWaiting,
		CurrentQuestionIndex: -1,
		Players:              models.PlayerList{},
	}
}

func TestCreateAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testSession("AAAAAA")))

	got, err := s.Get(ctx, "AAAAAA")
	require.NoError(t, err)
	assert.Equal(t, "AAAAAA", got.Code)
	assert.Equal(t, 0, got.Version)

	_, err = s.Get(ctx, "ZZZZZZ")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateDuplicateCode(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testSession("AAAAAA")))
	assert.ErrorIs(t, s.Create(ctx, testSession("AAAAAA")), store.ErrCodeTaken)
}

func TestUpdateBumpsVersion(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, testSession("AAAAAA")))

	sess, err := s.Get(ctx, "AAAAAA")
	require.NoError(t, err)
	sess.Status = models.SessionStatusActive
	require.NoError(t, s.Update(ctx, sess))
	assert.Equal(t, 1, sess.Version)

	got, err := s.Get(ctx, "AAAAAA")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, got.Status)
	assert.Equal(t, 1, got.Version)
}

func TestUpdateVersionConflict(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, testSession("AAAAAA")))

	first, err := s.Get(ctx, "AAAAAA")
	require.NoError(t, err)
	second, err := s.Get(ctx, "AAAAAA")
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, first))
	assert.ErrorIs(t, s.Update(ctx, second), store.ErrVersionConflict)
}

func TestUpdateUnknownCode(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Update(context.Background(), testSession("AAAAAA")), store.ErrNotFound)
}

func TestGetHandsOutCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	sess := testSession("AAAAAA")
	sess.Players = models.PlayerList{{ID: "p1", Username: "alice"}}
	require.NoError(t, s.Create(ctx, sess))

	got, err := s.Get(ctx, "AAAAAA")
	require.NoError(t, err)
	got.Players[0].Score = 999
	got.QuizData[0].Prompt = "mutated"

	fresh, err := s.Get(ctx, "AAAAAA")
	require.NoError(t, err)
	assert.Zero(t, fresh.Players[0].Score)
	assert.Equal(t, "prompt", fresh.QuizData[0].Prompt)
}
