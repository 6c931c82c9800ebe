// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

// Bearer token resolution and the role gates.
//
// # Error Taxonomy
//
// Every failure on the token resolution path (malformed header, bad signature,
// expired token, vanished principal) collapses into one uniform 401 with a
// WWW-Authenticate challenge. Only the role gates return 403, and only for a
// principal that was successfully resolved but lacks the required flag.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/peopledesk/peopledesk/internal/iam"
	"github.com/peopledesk/peopledesk/internal/platform/apperr"
	"github.com/peopledesk/peopledesk/internal/platform/constants"
	"github.com/peopledesk/peopledesk/internal/platform/respond"
	"github.com/peopledesk/peopledesk/internal/platform/sec"
)

// TokenValidator defines the interface needed to validate tokens in middleware.
//
// # Why an interface?
//
// Defining TokenValidator here decouples the middleware from the signing
// implementation, allowing us to easily inject mocks during unit testing.
type TokenValidator interface {
	Validate(tokenString string) (*sec.AccessClaims, error)
}

// PrincipalSource resolves a token subject to a live principal record.
// Satisfied by [iam.UserRepository].
type PrincipalSource interface {
	FindByUsername(ctx context.Context, username string) (*iam.User, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, validate the token and re-resolve the subject against the
//     principal store. A deleted account invalidates its outstanding tokens
//     immediately, even though the signature still verifies.
//  4. Inject the resolved [*iam.User] into the request context.
//
// The scheme comparison is exact: "bearer" and "BEARER" are rejected.
//
// # Parameters
//   - validator: The TokenValidator instance.
//   - principals: The PrincipalSource used for subject resolution.
//
// # Returns
//   - An [http.Handler] middleware.
func Authenticate(validator TokenValidator, principals PrincipalSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != constants.BearerScheme || parts[1] == "" {
				respond.Error(writer, request, apperr.Unauthenticated())
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := validator.Validate(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthenticated())
				return
			}

			// ── 4. Principal Resolution ───────────────────────────────────────
			user, err := principals.FindByUsername(request.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, iam.ErrPrincipalNotFound) {
					respond.Error(writer, request, apperr.Unauthenticated())
					return
				}
				// Store unavailable is a server fault, not a credential fault.
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := iam.WithPrincipal(request.Context(), user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequirePrincipal blocks requests that did not resolve a principal.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if iam.PrincipalFrom(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthenticated())
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireHR admits only principals whose role carries the HR flag.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It implies
// [RequirePrincipal] so you don't need to mount both.
//
// # Flow
//  1. Anonymous requests abort with HTTP 401.
//  2. Principals without the HR flag (including those with no role at all)
//     abort with HTTP 403. The admin role passes only because its seed row
//     sets the HR flag; there is no implication between the flags here.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user := iam.PrincipalFrom(request.Context())

		// ── 1. Authentication Check ───────────────────────────────────────
		if user == nil {
			respond.Error(writer, request, apperr.Unauthenticated())
			return
		}

		// ── 2. Authorization Check ────────────────────────────────────────
		if !user.HasHR() {
			respond.Error(writer, request, apperr.Forbidden("HR role required"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin admits only principals whose role carries the admin flag.
//
// Same contract as [RequireHR]: 401 for anonymous, 403 for a resolved
// principal without the flag.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user := iam.PrincipalFrom(request.Context())

		// ── 1. Authentication Check ───────────────────────────────────────
		if user == nil {
			respond.Error(writer, request, apperr.Unauthenticated())
			return
		}

		// ── 2. Authorization Check ────────────────────────────────────────
		if !user.HasAdmin() {
			respond.Error(writer, request, apperr.Forbidden("Admin role required"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}
