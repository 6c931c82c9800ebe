// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk/internal/iam"
	"github.com/peopledesk/peopledesk/internal/platform/middleware"
	"github.com/peopledesk/peopledesk/internal/platform/sec"
)

// # Test Stubs

type stubValidator struct {
	subjects map[string]string // token -> subject
}

func (v *stubValidator) Validate(tokenString string) (*sec.AccessClaims, error) {
	subject, ok := v.subjects[tokenString]
	if !ok {
		return nil, sec.ErrInvalidToken
	}
	claims := &sec.AccessClaims{}
	claims.Subject = subject
	return claims, nil
}

type stubPrincipals struct {
	users map[string]*iam.User
}

func (s *stubPrincipals) FindByUsername(_ context.Context, username string) (*iam.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, iam.ErrPrincipalNotFound
	}
	return user, nil
}

// captureHandler records the principal the chain resolved (or nil).
func captureHandler(resolved **iam.User) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*resolved = iam.PrincipalFrom(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

func newAuthChain(resolved **iam.User) http.Handler {
	validator := &stubValidator{subjects: map[string]string{
		"valid-token":  "alice",
		"orphan-token": "deleted-user",
	}}
	principals := &stubPrincipals{users: map[string]*iam.User{
		"alice": {ID: 1, Username: "alice", Role: &iam.Role{ID: 1, Name: iam.RoleHR, IsHR: true}},
	}}
	return middleware.Authenticate(validator, principals)(captureHandler(resolved))
}

func doRequest(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

// # Token Resolution

/*
TestAuthenticate_AnonymousPassThrough verifies that a request without an
Authorization header proceeds with no principal attached.
*/
func TestAuthenticate_AnonymousPassThrough(t *testing.T) {
	var resolved *iam.User
	recorder := doRequest(newAuthChain(&resolved), "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, resolved)
}

/*
TestAuthenticate_ResolvesPrincipal verifies the happy path: a valid bearer
token resolves the live principal into the request context.
*/
func TestAuthenticate_ResolvesPrincipal(t *testing.T) {
	var resolved *iam.User
	recorder := doRequest(newAuthChain(&resolved), "Bearer valid-token")

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, resolved)
	assert.Equal(t, "alice", resolved.Username)
	assert.True(t, resolved.HasHR())
}

/*
TestAuthenticate_UniformRejection verifies that every resolution failure
returns the same 401 body with a bearer challenge. Malformed headers, invalid
tokens, and tokens whose subject no longer exists must be indistinguishable.
*/
func TestAuthenticate_UniformRejection(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
	}{
		{"lowercase_scheme", "bearer valid-token"},
		{"uppercase_scheme", "BEARER valid-token"},
		{"wrong_scheme", "Basic dXNlcjpwYXNz"},
		{"missing_token", "Bearer "},
		{"scheme_only", "Bearer"},
		{"invalid_token", "Bearer garbage"},
		{"deleted_principal", "Bearer orphan-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resolved *iam.User
			recorder := doRequest(newAuthChain(&resolved), tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Equal(t, "Bearer", recorder.Header().Get("WWW-Authenticate"))
			assert.Nil(t, resolved)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, "Could not validate credentials", body["error"])
			assert.Equal(t, "UNAUTHENTICATED", body["code"])
		})
	}
}

// # Role Gates

func gateRequest(gate func(http.Handler) http.Handler, user *iam.User) *httptest.ResponseRecorder {
	handler := gate(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if user != nil {
		request = request.WithContext(iam.WithPrincipal(request.Context(), user))
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRequirePrincipal verifies that the gate admits any resolved principal and
rejects anonymous requests with 401.
*/
func TestRequirePrincipal(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, gateRequest(middleware.RequirePrincipal, nil).Code)

	user := &iam.User{ID: 1, Username: "alice"}
	assert.Equal(t, http.StatusOK, gateRequest(middleware.RequirePrincipal, user).Code)
}

/*
TestRequireHR verifies the HR gate: 401 for anonymous, 403 for principals
without the flag, and that the admin role passes only via its seeded HR flag.
*/
func TestRequireHR(t *testing.T) {
	tests := []struct {
		name string
		user *iam.User
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"no_role_assigned", &iam.User{ID: 1, Username: "norole"}, http.StatusForbidden},
		{"employee_role", &iam.User{ID: 2, Role: &iam.Role{Name: iam.RoleEmployee, IsEmployee: true}}, http.StatusForbidden},
		{"hr_role", &iam.User{ID: 3, Role: &iam.Role{Name: iam.RoleHR, IsHR: true}}, http.StatusOK},
		{"admin_role_with_hr_flag", &iam.User{ID: 4, Role: &iam.Role{Name: iam.RoleAdmin, IsHR: true, IsAdmin: true}}, http.StatusOK},
		{"admin_flag_without_hr_flag", &iam.User{ID: 5, Role: &iam.Role{Name: "custom", IsAdmin: true}}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := gateRequest(middleware.RequireHR, tt.user)
			assert.Equal(t, tt.want, recorder.Code)

			if tt.want == http.StatusForbidden {
				var body map[string]any
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Equal(t, "HR role required", body["error"])
			}
		})
	}
}

/*
TestRequireAdmin verifies the admin gate checks its own flag independently of
the HR flag.
*/
func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *iam.User
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"hr_only", &iam.User{ID: 1, Role: &iam.Role{Name: iam.RoleHR, IsHR: true}}, http.StatusForbidden},
		{"nil_role", &iam.User{ID: 2}, http.StatusForbidden},
		{"admin", &iam.User{ID: 3, Role: &iam.Role{Name: iam.RoleAdmin, IsHR: true, IsAdmin: true}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gateRequest(middleware.RequireAdmin, tt.user).Code)
		})
	}
}
