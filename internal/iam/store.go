// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package iam

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors returned by repositories.
//
// These are plain errors, not AppErrors: a missing principal means different
// things to different callers (invalid credentials at login, uniform 401 at
// token resolution, 409 pre-check at registration) and the HTTP mapping is
// decided by the consumer, never by the store.
var (
	// ErrPrincipalNotFound is returned when no principal matches the lookup key.
	ErrPrincipalNotFound = errors.New("iam: principal not found")

	// ErrRoleNotFound is returned when no role matches the lookup key.
	ErrRoleNotFound = errors.New("iam: role not found")
)

// # Principal Data Access

// UserRepository defines the data access contract for principals.
//
// FindByUsername is the one read contract the authentication core requires;
// every other method serves registration and seeding.
type UserRepository interface {

	/*
		FindByUsername returns the principal with the given canonical username,
		with its role reference hydrated.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: ErrPrincipalNotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByID returns the principal with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: ErrPrincipalNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		Create persists a brand-new principal and assigns its ID.

		Username/email uniqueness is enforced by the database constraint, not
		here: a race between two concurrent registrations is resolved by the
		store's atomic check, and surfaces as a constraint violation error.

		Parameters:
		  - context: context.Context
		  - user: *User (ID is populated on success)
		  - roleID: int64

		Returns:
		  - error: Constraint violations or persistence failures
	*/
	Create(context context.Context, user *User, roleID int64) error
}

// # Role Data Access

// RoleRepository defines the data access contract for the seeded role set.
type RoleRepository interface {

	/*
		FindByID returns the role with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Role: Hydrated entity
		  - error: ErrRoleNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*Role, error)

	/*
		FindByName returns the role with the given unique name.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - *Role: Hydrated entity
		  - error: ErrRoleNotFound or database retrieval failures
	*/
	FindByName(context context.Context, name string) (*Role, error)

	/*
		Create persists a new role and assigns its ID.

		Parameters:
		  - context: context.Context
		  - role: *Role (ID is populated on success)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, role *Role) error
}

// # Volatile Data Access

// LoginThrottle defines the contract for the per-username login attempt budget.
type LoginThrottle interface {

	/*
		Hit records one login attempt for the username and returns the number
		of attempts seen in the current window.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - int64: Attempts in the current window, including this one
		  - error: Storage failures
	*/
	Hit(context context.Context, username string) (int64, error)

	/*
		Reset clears the attempt counter after a successful login.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: Storage failures
	*/
	Reset(context context.Context, username string) error
}

// # Cross-Domain Provisioning

// EmployeeProfile carries the personnel fields captured at registration.
type EmployeeProfile struct {
	UserID                  int64
	FirstName               string
	LastName                string
	Email                   string
	PhoneNumber             string
	Department              string
	Position                string
	DateOfBirth             *time.Time
	NationalInsuranceNumber string
}

// EmployeeProvisioner creates the personnel record for principals whose role
// carries the employee flag. Implemented by the hr employee service; declared
// here so iam does not depend on the hr packages.
type EmployeeProvisioner interface {
	ProvisionEmployee(context context.Context, profile EmployeeProfile) error
}
