// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package dbscheck

import (
	"context"
	"log/slog"
	"time"

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

func (service *Service) ListDBSChecks(context context.Context, limit, offset int) ([]*DBSCheck, int, error) {
	return service.repo.ListDBSChecks(context, limit, offset)
}

func (service *Service) GetDBSCheck(context context.Context, id int64) (*DBSCheck, error) {
	return service.repo.GetDBSCheck(context, id)
}

func (service *Service) CreateDBSCheck(context context.Context, check *DBSCheck) error {
	if check.Result == "" {
		check.Result = ResultPending
	}
	if check.CheckDate.IsZero() {
		check.CheckDate = time.Now()
	}

	if err := validateDBSCheck(check); err != nil {
		return err
	}

	if err := service.repo.CreateDBSCheck(context, check); err != nil {
		return err
	}

	service.logger.Info("dbs_check_created",
		slog.Int64("check_id", check.ID),
		slog.Int64("employee_id", check.EmployeeID),
	)
	return nil
}

func (service *Service) UpdateDBSCheck(context context.Context, id int64, check *DBSCheck) error {
	check.ID = id

	if err := validateDBSCheck(check); err != nil {
		return err
	}

	if err := service.repo.UpdateDBSCheck(context, check); err != nil {
		return err
	}

	service.logger.Info("dbs_check_updated",
		slog.Int64("check_id", check.ID),
		slog.String("result", check.Result),
	)
	return nil
}

func (service *Service) DeleteDBSCheck(context context.Context, id int64) error {
	if err := service.repo.DeleteDBSCheck(context, id); err != nil {
		return err
	}

	service.logger.Warn("dbs_check_deleted", slog.Int64("check_id", id))
	return nil
}

func validateDBSCheck(check *DBSCheck) error {
	validator := &validate.Validator{}

	validator.Positive(FieldEmployeeID, check.EmployeeID).
		OneOf(FieldResult, check.Result, ResultPending, ResultClear, ResultNotClear).
		MaxLen(FieldDetails, check.Details, 1000)

	return validator.Err()
}
