// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peopledesk/peopledesk/internal/platform/ctxutil"
)

/*
TestRequestID_RoundTrip verifies that a request ID survives the context
round trip and that an absent value reads as empty.
*/
func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestLogger_RoundTrip verifies that a scoped logger survives the context
round trip.
*/
func TestLogger_RoundTrip(t *testing.T) {
	logger := slog.Default().With("component", "test")
	ctx := ctxutil.WithLogger(context.Background(), logger)

	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestLogger_DefaultFallback verifies that a context without a logger falls back
to the process default instead of returning nil.
*/
func TestLogger_DefaultFallback(t *testing.T) {
	got := ctxutil.GetLogger(context.Background())
	assert.NotNil(t, got)
	assert.Same(t, slog.Default(), got)
}
