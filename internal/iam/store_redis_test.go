// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package iam_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk/internal/iam"
	"github.com/peopledesk/peopledesk/internal/platform/constants"
)

func newThrottleClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return server, client
}

/*
TestLoginThrottle_Hit verifies that attempts accumulate per username and that
the expiry window is anchored at the first attempt.
*/
func TestLoginThrottle_Hit(t *testing.T) {
	server, client := newThrottleClient(t)
	throttle := iam.NewLoginThrottle(client)
	ctx := context.Background()

	first, err := throttle.Hit(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := throttle.Hit(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	// Counters are per username.
	other, err := throttle.Hit(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)

	// The key carries the window TTL so the budget refills on its own.
	key := constants.RedisPrefixLoginAttempts + "alice"
	assert.Equal(t, constants.LoginThrottleWindow, server.TTL(key))
}

/*
TestLoginThrottle_WindowExpiry verifies that the budget refills once the
window elapses.
*/
func TestLoginThrottle_WindowExpiry(t *testing.T) {
	server, client := newThrottleClient(t)
	throttle := iam.NewLoginThrottle(client)
	ctx := context.Background()

	_, err := throttle.Hit(ctx, "alice")
	require.NoError(t, err)
	_, err = throttle.Hit(ctx, "alice")
	require.NoError(t, err)

	server.FastForward(constants.LoginThrottleWindow)

	attempts, err := throttle.Hit(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), attempts)
}

/*
TestLoginThrottle_Reset verifies that a reset clears the counter immediately.
*/
func TestLoginThrottle_Reset(t *testing.T) {
	_, client := newThrottleClient(t)
	throttle := iam.NewLoginThrottle(client)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := throttle.Hit(ctx, "alice")
		require.NoError(t, err)
	}

	require.NoError(t, throttle.Reset(ctx, "alice"))

	attempts, err := throttle.Hit(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), attempts)
}
