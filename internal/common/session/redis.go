package session

import (
	"context"
	"errors"
	"time"

	"rfp-console/internal/common/database"
	apperrors "rfp-console/internal/common/errors"
)

// RedisStore keeps sessions in Redis under prefix+id. Every Save refreshes
// the key's TTL.
type RedisStore struct {
	client *database.RedisClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *database.RedisClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Load(ctx context.Context, id string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(id))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewSessionStoreError("load", err)
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, data []byte) error {
	if err := s.client.Set(ctx, s.key(id), data, s.ttl); err != nil {
		return apperrors.NewSessionStoreError("save", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)); err != nil {
		return apperrors.NewSessionStoreError("delete", err)
	}
	return nil
}
