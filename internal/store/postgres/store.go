package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/models"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/store"
)

// Store persists sessions in postgres through gorm. The record is written as
// one row per session with jsonb columns for the document-shaped fields;
// updates compare-and-swap on the version column so a second process can never
// silently overwrite a concurrent write.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, session *models.Session) error {
	err := s.db.WithContext(ctx).Create(session).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrCodeTaken
	}
	return err
}

func (s *Store) Get(ctx context.Context, code string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Store) Update(ctx context.Context, session *models.Session) error {
	res := s.db.WithContext(ctx).Model(&models.Session{}).
		Where("code = ? AND version = ?", session.Code, session.Version).
		Updates(map[string]interface{}{
			"status":                 session.Status,
			"current_question_index": session.CurrentQuestionIndex,
			"waiting_for_next":       session.WaitingForNext,
			"players":                session.Players,
			"started_at":             session.StartedAt,
			"ended_at":               session.EndedAt,
			"version":                session.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Session{}).
			Where("code = ?", session.Code).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return store.ErrNotFound
		}
		return store.ErrVersionConflict
	}
	session.Version++
	return nil
}
