// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package iam

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/peopledesk/peopledesk/internal/platform/apperr"
	"github.com/peopledesk/peopledesk/internal/platform/constants"
	"github.com/peopledesk/peopledesk/internal/platform/dberr"
	"github.com/peopledesk/peopledesk/internal/platform/sec"
	"github.com/peopledesk/peopledesk/pkg/normalize"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing access tokens.
//
// # Why an interface?
//
// It decouples the authenticator from the concrete signing implementation,
// allowing tests to inject a fixed-token issuer.
type TokenProvider interface {
	// Issue creates a signed access token string for the given subject.
	//
	// # Parameters
	//   - subject: The principal's username.
	//   - scopes: Role names, informational only.
	//   - timeToLive: Validity window; zero uses the default.
	//
	// # Returns
	//   - A signed token string, or an error if signing fails.
	Issue(subject string, scopes []string, timeToLive time.Duration) (string, error)
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merge.
type Service struct {
	users       UserRepository
	roles       RoleRepository
	throttle    LoginThrottle // nil disables throttling
	hasher      *sec.Hasher
	tokens      TokenProvider
	provisioner EmployeeProvisioner // nil disables employee provisioning
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	users UserRepository,
	roles RoleRepository,
	throttle LoginThrottle,
	hasher *sec.Hasher,
	tokens TokenProvider,
	provisioner EmployeeProvisioner,
) *Service {
	return &Service{
		users:       users,
		roles:       roles,
		throttle:    throttle,
		hasher:      hasher,
		tokens:      tokens,
		provisioner: provisioner,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new principal.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	RoleID   int64

	// Personnel fields, forwarded to the employee provisioner when the
	// selected role carries the employee flag.
	FirstName               string
	LastName                string
	PhoneNumber             string
	Department              string
	Position                string
	DateOfBirth             *time.Time
	NationalInsuranceNumber string
}

/*
Register validates, hashes, and persists a brand-new principal.

Description: Identifiers are canonicalized before any lookup so Unicode
variants of one name cannot occupy two accounts. The uniqueness pre-check is
advisory UX; the database constraint is the authoritative arbiter under
concurrent registration.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created principal with role hydrated
  - error: Conflict, validation, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	username := normalize.Identifier(input.Username)
	email := normalize.Email(input.Email)

	// Advisory uniqueness pre-check. Return a client-safe Conflict error.
	_, err := service.users.FindByUsername(context, username)
	if err == nil {
		return nil, apperr.Conflict("Username is already registered")
	}
	if !errors.Is(err, ErrPrincipalNotFound) {
		return nil, fmt.Errorf("iam_service_register_lookup_failed: %w", err)
	}

	// The requested role must exist in the seeded set.
	role, err := service.roles.FindByID(context, input.RoleID)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return nil, apperr.ValidationError("Unknown role", apperr.FieldError{
				Field:   FieldRoleID,
				Message: "Role does not exist",
			})
		}
		return nil, fmt.Errorf("iam_service_register_role_lookup_failed: %w", err)
	}

	// Prevent storing plain-text passwords. The cost factor is process-wide
	// configuration injected into the hasher at startup.
	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("iam_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := service.users.Create(context, user, role.ID); err != nil {
		// A concurrent registration that slipped past the pre-check lands on
		// the unique constraint. Same client-facing outcome as the pre-check.
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Username is already registered")
		}
		return nil, fmt.Errorf("iam_service_register_failed: %w", err)
	}

	// Roles flagged as employee get a linked personnel record.
	if role.IsEmployee && service.provisioner != nil {
		profile := EmployeeProfile{
			UserID:                  user.ID,
			FirstName:               input.FirstName,
			LastName:                input.LastName,
			Email:                   email,
			PhoneNumber:             input.PhoneNumber,
			Department:              input.Department,
			Position:                input.Position,
			DateOfBirth:             input.DateOfBirth,
			NationalInsuranceNumber: input.NationalInsuranceNumber,
		}
		if err := service.provisioner.ProvisionEmployee(context, profile); err != nil {
			return nil, fmt.Errorf("iam_service_provision_employee_failed: %w", err)
		}
	}

	return user, nil
}

// # Authentication Flow

// Session represents a successfully issued stateless credential.
//
// Nothing is stored server-side: the token is self-contained and expires on
// its own after [constants.AccessTokenTTL].
type Session struct {
	AccessToken string
	TokenType   string
	User        *User
}

/*
Login validates credentials and issues an access token.

Description: Store miss, absent password hash, and failed verification all
collapse into the identical InvalidCredentials outcome so the response never
reveals whether the username is registered. The store-miss fast path skips
hash comparison — a wasted-work optimization, not a timing guarantee.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *Session: Transport-ready credential
  - err: InvalidCredentials, RateLimited, or infrastructure failures
*/
func (service *Service) Login(context context.Context, username, password string) (*Session, error) {
	username = normalize.Identifier(username)

	// Budget check before touching the credential store.
	if service.throttle != nil {
		attempts, err := service.throttle.Hit(context, username)
		if err != nil {
			return nil, fmt.Errorf("iam_service_login_throttle_failed: %w", err)
		}
		if attempts > constants.LoginThrottleLimit {
			return nil, apperr.RateLimited("Too many login attempts. Try again later.")
		}
	}

	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return nil, apperr.InvalidCredentials()
		}
		// Store unavailable is a broken deployment, not a bad request.
		return nil, fmt.Errorf("iam_service_login_lookup_failed: %w", err)
	}

	// A principal row without a hash can never authenticate.
	if user.PasswordHash == "" {
		return nil, apperr.InvalidCredentials()
	}

	if !service.hasher.Verify(password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	accessToken, err := service.tokens.Issue(user.Username, user.Scopes(), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("iam_service_token_issue_failed: %w", err)
	}

	// Successful login refills the attempt budget. Best effort.
	if service.throttle != nil {
		_ = service.throttle.Reset(context, username)
	}

	return &Session{
		AccessToken: accessToken,
		TokenType:   "bearer",
		User:        user,
	}, nil
}
