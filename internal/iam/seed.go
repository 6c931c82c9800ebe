// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package iam

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// # Startup Provisioning

// seedRoleSet is the fixed role catalogue provisioned at process start.
//
// The admin role carries both the admin and HR flags. That is a seed-data
// decision: the gates check the flags independently and admins would lose
// HR access if this row dropped IsHR.
var seedRoleSet = []Role{
	{Name: RoleAdmin, IsHR: true, IsAdmin: true, IsEmployee: false},
	{Name: RoleHR, IsHR: true, IsAdmin: false, IsEmployee: false},
	{Name: RoleEmployee, IsHR: false, IsAdmin: false, IsEmployee: true},
}

/*
SeedRoles provisions the fixed role set if it does not already exist.

Description: Idempotent. Each role is looked up by name first, so repeated
restarts never duplicate rows or overwrite flag changes made by operators.

Parameters:
  - context: context.Context
  - logger: *slog.Logger

Returns:
  - error: Lookup or persistence failures
*/
func (service *Service) SeedRoles(context context.Context, logger *slog.Logger) error {
	for _, seed := range seedRoleSet {
		_, err := service.roles.FindByName(context, seed.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrRoleNotFound) {
			return fmt.Errorf("iam_seed_role_lookup_failed: %w", err)
		}

		role := seed
		if err := service.roles.Create(context, &role); err != nil {
			return fmt.Errorf("iam_seed_role_create_failed: %w", err)
		}

		logger.Info("seeded role",
			slog.String("role", role.Name),
			slog.Int64("id", role.ID),
		)
	}

	return nil
}

/*
SeedAdminUser provisions the bootstrap administrator account if absent.

Description: Idempotent by username. Intended for first boot so the API is
never deployed without a principal able to manage it; operators should rotate
the default credentials immediately.

Parameters:
  - context: context.Context
  - username: string
  - email: string
  - password: string (plain text, hashed before storage)
  - logger: *slog.Logger

Returns:
  - error: Lookup, hashing, or persistence failures
*/
func (service *Service) SeedAdminUser(context context.Context, username, email, password string, logger *slog.Logger) error {
	_, err := service.users.FindByUsername(context, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrPrincipalNotFound) {
		return fmt.Errorf("iam_seed_admin_lookup_failed: %w", err)
	}

	adminRole, err := service.roles.FindByName(context, RoleAdmin)
	if err != nil {
		return fmt.Errorf("iam_seed_admin_role_lookup_failed: %w", err)
	}

	user, err := service.Register(context, RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
		RoleID:   adminRole.ID,
	})
	if err != nil {
		return fmt.Errorf("iam_seed_admin_create_failed: %w", err)
	}

	logger.Warn("seeded bootstrap admin account, rotate its password",
		slog.String("username", user.Username),
		slog.Int64("id", user.ID),
	)

	return nil
}
