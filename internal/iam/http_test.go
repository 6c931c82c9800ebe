// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package iam_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopledesk/peopledesk/internal/iam"
	"github.com/peopledesk/peopledesk/internal/platform/middleware"
	"github.com/peopledesk/peopledesk/internal/platform/sec"
)

// newTestAPI wires the identity handler behind the real token resolution
// chain, backed by in-memory fakes.
func newTestAPI(t *testing.T) (http.Handler, *fakeUserRepo) {
	t.Helper()

	users := newFakeUserRepo()
	roles := newFakeRoleRepo(roleAdmin, roleEmployee)
	hasher := sec.NewHasher(bcrypt.MinCost)
	tokens := sec.NewTokenService([]byte("http-test-secret"), "peopledesk.test")

	service := iam.NewService(users, roles, nil, hasher, tokens, nil)
	handler := iam.NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens, users))
	router.Mount("/users", handler.Routes(middleware.RequirePrincipal))

	return router, users
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestIdentityFlow_RegisterLoginMe exercises the full credential lifecycle:
register an account, log in for a token, and use the token on a protected
endpoint.
*/
func TestIdentityFlow_RegisterLoginMe(t *testing.T) {
	api, _ := newTestAPI(t)

	// 1. Register
	recorder := postJSON(t, api, "/users/register", `{
		"username": "alice",
		"email": "alice@example.com",
		"password": "long-enough-password",
		"role_id": 1
	}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	// 2. Login
	recorder = postJSON(t, api, "/users/login", `{
		"username": "alice",
		"password": "long-enough-password"
	}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var loginBody struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
			User        struct {
				Username string `json:"username"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &loginBody))
	assert.Equal(t, "bearer", loginBody.Data.TokenType)
	assert.NotEmpty(t, loginBody.Data.AccessToken)
	assert.Equal(t, "alice", loginBody.Data.User.Username)

	// 3. Protected endpoint with the issued token
	request := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	request.Header.Set("Authorization", "Bearer "+loginBody.Data.AccessToken)
	meRecorder := httptest.NewRecorder()
	api.ServeHTTP(meRecorder, request)

	require.Equal(t, http.StatusOK, meRecorder.Code, meRecorder.Body.String())
	assert.Contains(t, meRecorder.Body.String(), `"username":"alice"`)

	// Password hash never leaks through the API.
	assert.NotContains(t, meRecorder.Body.String(), "password_hash")
}

/*
TestIdentityFlow_MeWithoutToken verifies the protected endpoint rejects
anonymous requests with the uniform 401 challenge.
*/
func TestIdentityFlow_MeWithoutToken(t *testing.T) {
	api, _ := newTestAPI(t)

	request := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	recorder := httptest.NewRecorder()
	api.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Could not validate credentials")
}

/*
TestIdentityFlow_TokenOutlivesDeletedAccount verifies that a signed token for
a deleted account is rejected at resolution time.
*/
func TestIdentityFlow_TokenOutlivesDeletedAccount(t *testing.T) {
	api, users := newTestAPI(t)

	recorder := postJSON(t, api, "/users/register", `{
		"username": "bob",
		"email": "bob@example.com",
		"password": "long-enough-password",
		"role_id": 1
	}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = postJSON(t, api, "/users/login", `{"username": "bob", "password": "long-enough-password"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var loginBody struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &loginBody))

	// Delete the account while its token is still cryptographically valid.
	delete(users.byUsername, "bob")

	request := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	request.Header.Set("Authorization", "Bearer "+loginBody.Data.AccessToken)
	meRecorder := httptest.NewRecorder()
	api.ServeHTTP(meRecorder, request)

	assert.Equal(t, http.StatusUnauthorized, meRecorder.Code)
	assert.Equal(t, "Bearer", meRecorder.Header().Get("WWW-Authenticate"))
}

/*
TestRegister_ValidationFailures checks the input rules on the registration
endpoint.
*/
func TestRegister_ValidationFailures(t *testing.T) {
	api, _ := newTestAPI(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid_json", `{not json`},
		{"short_password", `{"username": "eve", "email": "eve@example.com", "password": "short", "role_id": 1}`},
		{"bad_email", `{"username": "eve", "email": "not-an-email", "password": "long-enough-password", "role_id": 1}`},
		{"missing_role", `{"username": "eve", "email": "eve@example.com", "password": "long-enough-password"}`},
		{"bad_date_of_birth", `{"username": "eve", "email": "eve@example.com", "password": "long-enough-password", "role_id": 3, "date_of_birth": "31-12-1990"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, api, "/users/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code, recorder.Body.String())
		})
	}
}

/*
TestLogin_InvalidCredentialsResponse verifies the login endpoint returns the
single collapsed 401 message for bad credentials.
*/
func TestLogin_InvalidCredentialsResponse(t *testing.T) {
	api, _ := newTestAPI(t)

	recorder := postJSON(t, api, "/users/login", `{"username": "nobody", "password": "whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Incorrect username or password")
}
