// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package employee

import (
	"context"
	"log/slog"

	"github.com/peopledesk/peopledesk/internal/iam"
	"github.com/peopledesk/peopledesk/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListEmployees(context context.Context, filter Filter, limit, offset int) ([]*Employee, int, error) {
	return service.repo.ListEmployees(context, filter, limit, offset)
}

func (service *Service) GetEmployee(context context.Context, id int64) (*Employee, error) {
	return service.repo.GetEmployee(context, id)
}

func (service *Service) CreateEmployee(context context.Context, employee *Employee) error {
	if err := validateEmployee(employee); err != nil {
		return err
	}

	if err := service.repo.CreateEmployee(context, employee); err != nil {
		return err
	}

	service.logger.Info("employee_created",
		slog.Int64("employee_id", employee.ID),
		slog.String("department", employee.Department),
	)
	return nil
}

func (service *Service) UpdateEmployee(context context.Context, id int64, employee *Employee) error {
	employee.ID = id

	if err := validateEmployee(employee); err != nil {
		return err
	}

	if err := service.repo.UpdateEmployee(context, employee); err != nil {
		return err
	}

	service.logger.Info("employee_updated", slog.Int64("employee_id", employee.ID))
	return nil
}

func (service *Service) DeleteEmployee(context context.Context, id int64) error {
	if err := service.repo.DeleteEmployee(context, id); err != nil {
		return err
	}

	service.logger.Warn("employee_deleted", slog.Int64("employee_id", id))
	return nil
}

// ProvisionEmployee implements [iam.EmployeeProvisioner].
//
// Called during registration when the chosen role carries the employee flag:
// the created record is linked to the new login account via UserID.
func (service *Service) ProvisionEmployee(context context.Context, profile iam.EmployeeProfile) error {
	userID := profile.UserID
	employee := &Employee{
		FirstName:               profile.FirstName,
		LastName:                profile.LastName,
		Email:                   profile.Email,
		PhoneNumber:             profile.PhoneNumber,
		Department:              profile.Department,
		Position:                profile.Position,
		DateOfBirth:             profile.DateOfBirth,
		NationalInsuranceNumber: profile.NationalInsuranceNumber,
		UserID:                  &userID,
	}

	if err := service.repo.CreateEmployee(context, employee); err != nil {
		return err
	}

	service.logger.Info("employee_provisioned",
		slog.Int64("employee_id", employee.ID),
		slog.Int64("user_id", userID),
	)
	return nil
}

func validateEmployee(employee *Employee) error {
	validator := &validate.Validator{}

	validator.Required(FieldFirstName, employee.FirstName).
		MaxLen(FieldFirstName, employee.FirstName, 100).
		Required(FieldLastName, employee.LastName).
		MaxLen(FieldLastName, employee.LastName, 100).
		Required(FieldEmail, employee.Email).
		Email(FieldEmail, employee.Email).
		MaxLen(FieldPhoneNumber, employee.PhoneNumber, 30).
		MaxLen(FieldDepartment, employee.Department, 100).
		MaxLen(FieldPosition, employee.Position, 100).
		MaxLen(FieldNationalInsuranceNumber, employee.NationalInsuranceNumber, 13)

	return validator.Err()
}
