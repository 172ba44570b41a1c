// Copyright (c) 2026 eZunder. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ezunder/ezunder/internal/platform/apperr"
	"github.com/ezunder/ezunder/internal/platform/constants"
)

// # Rotation Guard

// rotateScript performs the compare-and-swap of the rotation handle in a
// single atomic step on the Redis server. Two racing refresh calls for the
// same user therefore observe a strict winner/loser outcome.
//
// KEYS[1] = rotation key, ARGV[1] = expected jti, ARGV[2] = new jti,
// ARGV[3] = ttl in milliseconds. Returns 1 on success, 0 when the stored
// handle does not match. A missing key counts as a match: verification is
// stateless by contract and the guard only hardens it.
var rotateScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current == false or current == ARGV[1] then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
	return 1
end
return 0
`)

// RedisRotationGuard implements RotationGuard using Redis.
type RedisRotationGuard struct {
	client *redis.Client
}

// NewRotationGuard creates a new Redis-backed RotationGuard.
func NewRotationGuard(client *redis.Client) *RedisRotationGuard {
	return &RedisRotationGuard{client: client}
}

/*
Begin records jti as the user's current rotation handle.

Parameters:
  - context: context.Context
  - userID: string
  - jti: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (guard *RedisRotationGuard) Begin(context context.Context, userID, jti string, ttl time.Duration) error {
	key := constants.RedisPrefixRefreshJTI + userID

	if err := guard.client.Set(context, key, jti, ttl).Err(); err != nil {
		return fmt.Errorf("redis_rotation_begin_failed: %w", err)
	}

	return nil
}

/*
Rotate atomically swaps the stored handle from oldJTI to newJTI.

Parameters:
  - context: context.Context
  - userID: string
  - oldJTI: string
  - newJTI: string
  - ttl: time.Duration

Returns:
  - bool: true when this caller won the rotation
  - error: Execution errors
*/
func (guard *RedisRotationGuard) Rotate(context context.Context, userID, oldJTI, newJTI string, ttl time.Duration) (bool, error) {
	key := constants.RedisPrefixRefreshJTI + userID

	result, err := rotateScript.Run(context, guard.client, []string{key},
		oldJTI, newJTI, ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("redis_rotation_rotate_failed: %w", err)
	}

	return result == 1, nil
}

/*
Clear forgets the user's rotation handle.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (guard *RedisRotationGuard) Clear(context context.Context, userID string) error {
	key := constants.RedisPrefixRefreshJTI + userID

	if err := guard.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_rotation_clear_failed: %w", err)
	}

	return nil
}

// # Reset Token Repository

// RedisResetTokenRepository implements ResetTokenRepository using Redis.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

/*
Set stores a reset token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisResetTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {
	key := "auth:reset_token:" + token

	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the userID for a given token.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Original UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisResetTokenRepository) Get(context context.Context, token string) (string, error) {
	key := "auth:reset_token:" + token

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	return userID, nil
}

/*
Delete removes the token from Redis.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisResetTokenRepository) Delete(context context.Context, token string) error {
	key := "auth:reset_token:" + token

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}

	return nil
}
