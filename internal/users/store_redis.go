// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkpost/internal/platform/constants"
)

// RedisRevocationStore implements [RevocationStore] using Redis keys that expire
// together with the token they deny.
type RedisRevocationStore struct {
	client redis.UniversalClient
}

// NewRevocationStore creates a new Redis-backed [RevocationStore].
func NewRevocationStore(client redis.UniversalClient) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func revokedKey(tokenHash string) string {
	return constants.RedisPrefixRevokedToken + tokenHash
}

/*
Revoke denies a token until ttl elapses.

A non-positive ttl means the token has already expired and nothing is stored.
*/
func (store *RedisRevocationStore) Revoke(context context.Context, tokenHash string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := store.client.Set(context, revokedKey(tokenHash), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis_revoke_token_failed: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token hash is on the deny-list.
func (store *RedisRevocationStore) IsRevoked(context context.Context, tokenHash string) (bool, error) {
	count, err := store.client.Exists(context, revokedKey(tokenHash)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_revoked_token_lookup_failed: %w", err)
	}
	return count > 0, nil
}
