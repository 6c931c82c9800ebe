// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package iam_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopledesk/peopledesk/internal/iam"
	"github.com/peopledesk/peopledesk/internal/platform/apperr"
	"github.com/peopledesk/peopledesk/internal/platform/sec"
)

// # Test Fakes

type fakeUserRepo struct {
	byUsername map[string]*iam.User
	nextID     int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: map[string]*iam.User{}, nextID: 1}
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*iam.User, error) {
	user, ok := r.byUsername[username]
	if !ok {
		return nil, iam.ErrPrincipalNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*iam.User, error) {
	for _, user := range r.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, iam.ErrPrincipalNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *iam.User, _ int64) error {
	user.ID = r.nextID
	r.nextID++
	r.byUsername[user.Username] = user
	return nil
}

type fakeRoleRepo struct {
	byID map[int64]*iam.Role
}

func newFakeRoleRepo(roles ...*iam.Role) *fakeRoleRepo {
	repo := &fakeRoleRepo{byID: map[int64]*iam.Role{}}
	for _, role := range roles {
		repo.byID[role.ID] = role
	}
	return repo
}

func (r *fakeRoleRepo) FindByID(_ context.Context, id int64) (*iam.Role, error) {
	role, ok := r.byID[id]
	if !ok {
		return nil, iam.ErrRoleNotFound
	}
	return role, nil
}

func (r *fakeRoleRepo) FindByName(_ context.Context, name string) (*iam.Role, error) {
	for _, role := range r.byID {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, iam.ErrRoleNotFound
}

func (r *fakeRoleRepo) Create(_ context.Context, role *iam.Role) error {
	role.ID = int64(len(r.byID) + 1)
	r.byID[role.ID] = role
	return nil
}

type fakeThrottle struct {
	hits   map[string]int64
	resets []string
}

func newFakeThrottle() *fakeThrottle {
	return &fakeThrottle{hits: map[string]int64{}}
}

func (t *fakeThrottle) Hit(_ context.Context, username string) (int64, error) {
	t.hits[username]++
	return t.hits[username], nil
}

func (t *fakeThrottle) Reset(_ context.Context, username string) error {
	t.resets = append(t.resets, username)
	t.hits[username] = 0
	return nil
}

type fakeTokens struct {
	lastSubject string
	lastScopes  []string
}

func (f *fakeTokens) Issue(subject string, scopes []string, _ time.Duration) (string, error) {
	f.lastSubject = subject
	f.lastScopes = scopes
	return "signed-token", nil
}

type fakeProvisioner struct {
	profiles []iam.EmployeeProfile
}

func (p *fakeProvisioner) ProvisionEmployee(_ context.Context, profile iam.EmployeeProfile) error {
	p.profiles = append(p.profiles, profile)
	return nil
}

// # Fixtures

var (
	roleAdmin    = &iam.Role{ID: 1, Name: iam.RoleAdmin, IsHR: true, IsAdmin: true}
	roleEmployee = &iam.Role{ID: 3, Name: iam.RoleEmployee, IsEmployee: true}
)

func newTestService(users *fakeUserRepo, roles *fakeRoleRepo, throttle iam.LoginThrottle, provisioner iam.EmployeeProvisioner) (*iam.Service, *fakeTokens) {
	tokens := &fakeTokens{}
	hasher := sec.NewHasher(bcrypt.MinCost)
	return iam.NewService(users, roles, throttle, hasher, tokens, provisioner), tokens
}

func seedUser(t *testing.T, users *fakeUserRepo, username, password string, role *iam.Role) *iam.User {
	t.Helper()

	hasher := sec.NewHasher(bcrypt.MinCost)
	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	user := &iam.User{Username: username, Email: username + "@example.com", PasswordHash: hash, Role: role}
	require.NoError(t, users.Create(context.Background(), user, 0))
	return user
}

// # Login

/*
TestService_Login_Success verifies the happy path: valid credentials produce a
bearer session whose token subject is the username.
*/
func TestService_Login_Success(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "alice", "s3cret-password", roleAdmin)
	throttle := newFakeThrottle()
	service, tokens := newTestService(users, newFakeRoleRepo(roleAdmin), throttle, nil)

	session, err := service.Login(context.Background(), "alice", "s3cret-password")
	require.NoError(t, err)

	assert.Equal(t, "signed-token", session.AccessToken)
	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, "alice", session.User.Username)
	assert.Equal(t, "alice", tokens.lastSubject)
	assert.Equal(t, []string{iam.RoleAdmin}, tokens.lastScopes)

	// Successful login clears the attempt budget.
	assert.Contains(t, throttle.resets, "alice")
}

/*
TestService_Login_InvalidCredentials verifies that unknown usernames, wrong
passwords, and hash-less accounts all collapse into the same 401 outcome.
*/
func TestService_Login_InvalidCredentials(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "alice", "s3cret-password", roleAdmin)
	users.byUsername["ghost"] = &iam.User{ID: 99, Username: "ghost", PasswordHash: ""}

	service, _ := newTestService(users, newFakeRoleRepo(roleAdmin), nil, nil)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown_username", "nobody", "whatever"},
		{"wrong_password", "alice", "not-the-password"},
		{"empty_stored_hash", "ghost", "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := service.Login(context.Background(), tt.username, tt.password)
			assert.Nil(t, session)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "INVALID_CREDENTIALS", ae.Code)
			assert.Equal(t, "Incorrect username or password", ae.Message)
		})
	}
}

/*
TestService_Login_Throttled verifies that the attempt budget rejects logins
once exhausted, before the credential store is even consulted.
*/
func TestService_Login_Throttled(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "alice", "s3cret-password", roleAdmin)

	throttle := newFakeThrottle()
	throttle.hits["alice"] = 10 // budget already spent

	service, _ := newTestService(users, newFakeRoleRepo(roleAdmin), throttle, nil)

	session, err := service.Login(context.Background(), "alice", "s3cret-password")
	assert.Nil(t, session)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RATE_LIMITED", ae.Code)
}

/*
TestService_Login_NormalizesUsername verifies that Unicode variants of the
registered username resolve to the same account.
*/
func TestService_Login_NormalizesUsername(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "alice", "s3cret-password", roleAdmin)
	service, _ := newTestService(users, newFakeRoleRepo(roleAdmin), nil, nil)

	session, err := service.Login(context.Background(), "  ALICE  ", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, "alice", session.User.Username)
}

// # Registration

/*
TestService_Register_Success verifies that the password is stored hashed and
the role reference is hydrated on the returned principal.
*/
func TestService_Register_Success(t *testing.T) {
	users := newFakeUserRepo()
	service, _ := newTestService(users, newFakeRoleRepo(roleAdmin), nil, nil)

	user, err := service.Register(context.Background(), iam.RegisterInput{
		Username: "Bob",
		Email:    "Bob@Example.com",
		Password: "long-enough-password",
		RoleID:   roleAdmin.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.NotEqual(t, "long-enough-password", user.PasswordHash)
	require.NotNil(t, user.Role)
	assert.Equal(t, iam.RoleAdmin, user.Role.Name)

	hasher := sec.NewHasher(bcrypt.MinCost)
	assert.True(t, hasher.Verify("long-enough-password", user.PasswordHash))
}

/*
TestService_Register_DuplicateUsername verifies the advisory pre-check returns
a conflict for an already registered username.
*/
func TestService_Register_DuplicateUsername(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "alice", "whatever", roleAdmin)
	service, _ := newTestService(users, newFakeRoleRepo(roleAdmin), nil, nil)

	user, err := service.Register(context.Background(), iam.RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "long-enough-password",
		RoleID:   roleAdmin.ID,
	})
	assert.Nil(t, user)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_Register_UnknownRole verifies that an unseeded role ID is a
validation failure, not a server error.
*/
func TestService_Register_UnknownRole(t *testing.T) {
	service, _ := newTestService(newFakeUserRepo(), newFakeRoleRepo(roleAdmin), nil, nil)

	user, err := service.Register(context.Background(), iam.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "long-enough-password",
		RoleID:   42,
	})
	assert.Nil(t, user)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_Register_ProvisionsEmployee verifies that an employee-flagged role
creates a linked personnel record through the provisioner.
*/
func TestService_Register_ProvisionsEmployee(t *testing.T) {
	provisioner := &fakeProvisioner{}
	service, _ := newTestService(newFakeUserRepo(), newFakeRoleRepo(roleEmployee), nil, provisioner)

	user, err := service.Register(context.Background(), iam.RegisterInput{
		Username:   "carol",
		Email:      "carol@example.com",
		Password:   "long-enough-password",
		RoleID:     roleEmployee.ID,
		FirstName:  "Carol",
		LastName:   "Jones",
		Department: "Finance",
	})
	require.NoError(t, err)

	require.Len(t, provisioner.profiles, 1)
	profile := provisioner.profiles[0]
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "Carol", profile.FirstName)
	assert.Equal(t, "carol@example.com", profile.Email)
	assert.Equal(t, "Finance", profile.Department)
}

/*
TestService_Register_AdminRoleSkipsProvisioning verifies that roles without
the employee flag never touch the provisioner.
*/
func TestService_Register_AdminRoleSkipsProvisioning(t *testing.T) {
	provisioner := &fakeProvisioner{}
	service, _ := newTestService(newFakeUserRepo(), newFakeRoleRepo(roleAdmin), nil, provisioner)

	_, err := service.Register(context.Background(), iam.RegisterInput{
		Username: "dave",
		Email:    "dave@example.com",
		Password: "long-enough-password",
		RoleID:   roleAdmin.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, provisioner.profiles)
}
