package dgpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a [CredentialStore] backed by Redis. Each record lives
// under one key derived from the username; SET NX makes the existence
// check and the insert a single compare-and-swap on the server.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a store using the given client and key prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "dgpl:user:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(username string) string {
	return s.prefix + username
}

// Create inserts the record, or fails with [ErrAccountExists] when the
// username key is already present.
func (s *RedisStore) Create(ctx context.Context, input CreateUserInput) (UserRecord, error) {
	rec := UserRecord{
		UserID:       input.UserID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return UserRecord{}, fmt.Errorf("encode user record: %w", err)
	}

	inserted, err := s.client.SetNX(ctx, s.key(input.Username), data, 0).Result()
	if err != nil {
		return UserRecord{}, fmt.Errorf("credential store create: %w", err)
	}
	if !inserted {
		return UserRecord{}, ErrAccountExists
	}
	return rec, nil
}

// GetByUsername reads one record, or fails with [ErrUserNotFound].
func (s *RedisStore) GetByUsername(ctx context.Context, username string) (UserRecord, error) {
	data, err := s.client.Get(ctx, s.key(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, fmt.Errorf("credential store get: %w", err)
	}

	var rec UserRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return UserRecord{}, fmt.Errorf("decode user record: %w", err)
	}
	return rec, nil
}
