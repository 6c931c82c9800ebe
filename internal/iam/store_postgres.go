// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

// PostgreSQL implementations of the iam repositories.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to the package
// sentinel errors so callers never see pgx types. Everything else is wrapped
// and propagates as an infrastructure failure.

package iam

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// # Principal Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userSelect joins the optional role reference in a single round trip.
// Role columns are nullable because the foreign key is optional.
const userSelect = `
	SELECT u.id, u.username, u.email, u.password_hash, u.created_at, u.updated_at,
	       r.id, r.role_name, r.is_hr, r.is_admin, r.is_employee
	FROM users u
	LEFT JOIN roles r ON r.id = u.role_id`

// scanUser hydrates a User (and its optional Role) from a joined row.
func scanUser(row pgx.Row) (*User, error) {
	var (
		user       User
		roleID     *int64
		roleName   *string
		isHR       *bool
		isAdmin    *bool
		isEmployee *bool
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&roleID,
		&roleName,
		&isHR,
		&isAdmin,
		&isEmployee,
	)
	if err != nil {
		return nil, err
	}

	if roleID != nil {
		user.Role = &Role{
			ID:         *roleID,
			Name:       *roleName,
			IsHR:       *isHR,
			IsAdmin:    *isAdmin,
			IsEmployee: *isEmployee,
		}
	}

	return &user, nil
}

/*
FindByUsername retrieves a principal record by its unique username.

Description: The single read contract required by authentication and token
resolution. The role reference is hydrated in the same query.

Parameters:
  - context: context.Context
  - username: string (canonical form)

Returns:
  - *User: Hydrated principal
  - error: ErrPrincipalNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = userSelect + ` WHERE u.username = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a principal record by its primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated principal
  - error: ErrPrincipalNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	const query = userSelect + ` WHERE u.id = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
Create persists a new principal record into the users table.

Description: The database unique constraints on username and email are the
authoritative uniqueness check; violations surface here as wrapped errors.

Parameters:
  - context: context.Context
  - user: *User (ID and timestamps are populated on success)
  - roleID: int64

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User, roleID int64) error {
	const query = `
		INSERT INTO users (username, email, password_hash, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		roleID,
		now,
	).Scan(&user.ID)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// # Role Repository

// PostgresRoleRepository implements the RoleRepository interface using pgx.
type PostgresRoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new PostgreSQL implementation of the RoleRepository.
func NewRoleRepository(pool *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{pool: pool}
}

/*
FindByID retrieves a role by its primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Role: Hydrated entity
  - error: ErrRoleNotFound or database errors
*/
func (repository *PostgresRoleRepository) FindByID(context context.Context, id int64) (*Role, error) {
	const query = `
		SELECT id, role_name, is_hr, is_admin, is_employee
		FROM roles
		WHERE id = $1`

	role := &Role{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&role.ID,
		&role.Name,
		&role.IsHR,
		&role.IsAdmin,
		&role.IsEmployee,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("postgres_role_repo_find_by_id_failed: %w", err)
	}

	return role, nil
}

/*
FindByName retrieves a role by its unique name.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Role: Hydrated entity
  - error: ErrRoleNotFound or database errors
*/
func (repository *PostgresRoleRepository) FindByName(context context.Context, name string) (*Role, error) {
	const query = `
		SELECT id, role_name, is_hr, is_admin, is_employee
		FROM roles
		WHERE role_name = $1`

	role := &Role{}
	err := repository.pool.QueryRow(context, query, name).Scan(
		&role.ID,
		&role.Name,
		&role.IsHR,
		&role.IsAdmin,
		&role.IsEmployee,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("postgres_role_repo_find_by_name_failed: %w", err)
	}

	return role, nil
}

/*
Create persists a new role record.

Parameters:
  - context: context.Context
  - role: *Role (ID is populated on success)

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRoleRepository) Create(context context.Context, role *Role) error {
	const query = `
		INSERT INTO roles (role_name, is_hr, is_admin, is_employee)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := repository.pool.QueryRow(context, query,
		role.Name,
		role.IsHR,
		role.IsAdmin,
		role.IsEmployee,
	).Scan(&role.ID)

	if err != nil {
		return fmt.Errorf("postgres_role_repo_create_failed: %w", err)
	}

	return nil
}
