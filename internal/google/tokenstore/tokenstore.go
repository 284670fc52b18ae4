// Package tokenstore persists Google OAuth tokens per user.
package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

// ErrNoToken is returned when no token has been stored for the user.
var ErrNoToken = errors.New("no stored token")

const keyPrefix = "google:oauth:token:"

// Store keeps one OAuth token per user id.
type Store interface {
	Load(ctx context.Context, userID string) (*oauth2.Token, error)
	Save(ctx context.Context, userID string, tok *oauth2.Token) error
	Delete(ctx context.Context, userID string) error
}

type redisStore struct {
	rdb redis.Cmdable
}

// NewRedis returns a Store that keeps tokens as JSON strings in Redis.
// Tokens carry no TTL; the refresh token outlives the access token's expiry.
func NewRedis(rdb redis.Cmdable) Store {
	return &redisStore{rdb: rdb}
}

func key(userID string) string { return keyPrefix + userID }

func (s *redisStore) Load(ctx context.Context, userID string) (*oauth2.Token, error) {
	raw, err := s.rdb.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &tok, nil
}

func (s *redisStore) Save(ctx context.Context, userID string, tok *oauth2.Token) error {
	b, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := s.rdb.Set(ctx, key(userID), string(b), 0).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
