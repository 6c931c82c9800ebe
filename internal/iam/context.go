// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package iam

import (
	"context"

	"github.com/peopledesk/peopledesk/internal/platform/ctxkey"
)

// # Request Context

// WithPrincipal returns a new context with the resolved principal attached.
func WithPrincipal(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ctxkey.KeyPrincipal, user)
}

// PrincipalFrom retrieves the resolved principal from the context.
// Returns nil for anonymous requests.
func PrincipalFrom(ctx context.Context) *User {
	user, ok := ctx.Value(ctxkey.KeyPrincipal).(*User)
	if !ok {
		return nil
	}
	return user
}
