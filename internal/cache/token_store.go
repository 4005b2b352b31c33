package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshTokenKeyPrefix = "auth:refresh:"

// ErrTokenNotFound is returned when a refresh token id is not present in the
// store, either because it expired, was rotated, or was revoked on logout.
var ErrTokenNotFound = errors.New("refresh token not found")

// RefreshTokenStore keeps the set of live refresh token ids (jti) in Redis.
// A refresh token is only honored while its id is present; rotation and
// logout remove it.
type RefreshTokenStore struct {
	client *redis.Client
}

func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client}
}

func refreshTokenKey(tokenID string) string {
	return refreshTokenKeyPrefix + tokenID
}

// Save registers a refresh token id for the given user with the token's TTL.
func (s *RefreshTokenStore) Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshTokenKey(tokenID), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// Get returns the user id a live refresh token id belongs to.
func (s *RefreshTokenStore) Get(ctx context.Context, tokenID string) (int64, error) {
	val, err := s.client.Get(ctx, refreshTokenKey(tokenID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrTokenNotFound
		}
		return 0, fmt.Errorf("failed to get refresh token: %w", err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt refresh token entry for %s: %w", tokenID, err)
	}
	return userID, nil
}

// Delete revokes a refresh token id. Deleting an absent id is not an error.
func (s *RefreshTokenStore) Delete(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, refreshTokenKey(tokenID)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
