// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

/*
Package iam implements the identity and access management core.

It handles credential issuance (login), principal registration, role seeding,
and the data contracts consumed by the authorization middleware.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Seeding).
  - Repository: Abstracted interfaces for Postgres (principals, roles) and
    Redis (login throttle).
  - Security: Leverages bcrypt hashing and HMAC-signed access tokens via
    the platform sec package.

Tokens are stateless: nothing is stored server-side at login and nothing is
revoked before expiry. The only volatile state is the login attempt throttle.
*/
package iam

import "time"

// # Domain Entities

// Role is a named capability bundle referenced by principals.
//
// The three flags are independent booleans, not a hierarchy: the admin role
// is admitted to HR-gated operations only because the seed data sets both
// IsAdmin and IsHR on it, not because of any implication in the gate logic.
type Role struct {
	ID         int64  `json:"id"`
	Name       string `json:"role_name"`
	IsHR       bool   `json:"is_hr"`
	IsAdmin    bool   `json:"is_admin"`
	IsEmployee bool   `json:"is_employee"`
}

// User represents an authenticatable principal.
//
// Role is an optional reference: a user whose role was never assigned (or
// whose role row was removed) carries a nil Role and fails every capability
// check closed.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         *Role     `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasHR reports whether the principal's role grants the HR capability.
// A principal with no assigned role fails closed.
func (u *User) HasHR() bool {
	return u.Role != nil && u.Role.IsHR
}

// HasAdmin reports whether the principal's role grants the admin capability.
// A principal with no assigned role fails closed.
func (u *User) HasAdmin() bool {
	return u.Role != nil && u.Role.IsAdmin
}

// Scopes returns the role names to embed in an issued token.
// Informational only: the role gate never reads them back.
func (u *User) Scopes() []string {
	if u.Role == nil {
		return nil
	}
	return []string{u.Role.Name}
}

// # Seeded Roles

// Names of the fixed role set created at process start.
const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// # Field Identifiers

// Global field names for validation and identity mapping in the iam domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRoleID      = "role_id"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldUser        = "user"
)
