package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revokedKeyPrefix = "revoked_token:"

// TokenRepository tracks revoked login tokens in Redis. A revoked token's jti is
// kept until the token would have expired anyway, after which the entry lapses.
type TokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewTokenRepository constructs a token repository.
func NewTokenRepository(client *redis.Client, logger *zap.Logger) *TokenRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenRepository{client: client, logger: logger}
}

// Revoke denylists the token identifier for the given remaining lifetime.
func (r *TokenRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", jti, err)
	}
	return nil
}

// IsRevoked reports whether the token identifier has been denylisted.
func (r *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.client.Get(ctx, revokedKeyPrefix+jti).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked token %s: %w", jti, err)
	}
	return true, nil
}
