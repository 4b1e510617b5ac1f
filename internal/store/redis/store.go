package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/models"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/store"
)

const keyPrefix = "wihoot:session:"

// Store keeps each session as a JSON blob in redis. Code uniqueness rides on
// SETNX and updates run inside a WATCH transaction so the version check and
// the write are atomic.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New builds a redis-backed store. A zero ttl keeps sessions forever;
// retention is normally an external concern but operators may cap it.
func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Create(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, keyPrefix+session.Code, data, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrCodeTaken
	}
	return nil
}

func (s *Store) Get(ctx context.Context, code string) (*models.Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Store) Update(ctx context.Context, session *models.Session) error {
	key := keyPrefix + session.Code
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}
		var current models.Session
		if err := json.Unmarshal(data, &current); err != nil {
			return err
		}
		if current.Version != session.Version {
			return store.ErrVersionConflict
		}
		next := session.Clone()
		next.Version++
		payload, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return store.ErrVersionConflict
	}
	if err != nil {
		return err
	}
	session.Version++
	return nil
}
