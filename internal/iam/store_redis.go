// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package iam

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/peopledesk/peopledesk/internal/platform/constants"
)

// RedisLoginThrottle implements LoginThrottle using Redis TTL counters.
//
// One counter per canonical username; the key expires after the throttle
// window so the budget refills automatically without a cleanup job.
type RedisLoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a new Redis-backed LoginThrottle.
func NewLoginThrottle(client *redis.Client) *RedisLoginThrottle {
	return &RedisLoginThrottle{client: client}
}

/*
Hit records one login attempt and returns the attempt count for the window.

Description: Uses INCR + EXPIRE in a pipeline. The expiry is only set when the
counter is created, so the window is anchored at the first attempt.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - int64: Attempts in the current window, including this one
  - error: Execution errors
*/
func (throttle *RedisLoginThrottle) Hit(context context.Context, username string) (int64, error) {
	key := constants.RedisPrefixLoginAttempts + username

	attempts, err := throttle.client.Incr(context, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_login_throttle_hit_failed: %w", err)
	}

	// First attempt in the window anchors the expiry.
	if attempts == 1 {
		if err := throttle.client.Expire(context, key, constants.LoginThrottleWindow).Err(); err != nil {
			return attempts, fmt.Errorf("redis_login_throttle_expire_failed: %w", err)
		}
	}

	return attempts, nil
}

/*
Reset clears the attempt counter after a successful login.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Deletion failures
*/
func (throttle *RedisLoginThrottle) Reset(context context.Context, username string) error {
	key := constants.RedisPrefixLoginAttempts + username

	if err := throttle.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_login_throttle_reset_failed: %w", err)
	}

	return nil
}
