// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package homeoffice

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

func (service *Service) ListHomeOfficeRequests(context context.Context, limit, offset int) ([]*HomeOfficeRequest, int, error) {
	return service.repo.ListHomeOfficeRequests(context, limit, offset)
}

func (service *Service) GetHomeOfficeRequest(context context.Context, id int64) (*HomeOfficeRequest, error) {
	return service.repo.GetHomeOfficeRequest(context, id)
}

func (service *Service) CreateHomeOfficeRequest(context context.Context, request *HomeOfficeRequest) error {
	if request.Status == "" {
		request.Status = StatusPending
	}
	if request.RequestDate.IsZero() {
		request.RequestDate = time.Now()
	}

	if err := validateHomeOfficeRequest(request); err != nil {
		return err
	}

	if err := service.repo.CreateHomeOfficeRequest(context, request); err != nil {
		return err
	}

	service.logger.Info("home_office_request_created",
		slog.Int64("request_id", request.ID),
		slog.Int64("employee_id", request.EmployeeID),
	)
	return nil
}

func (service *Service) UpdateHomeOfficeRequest(context context.Context, id int64, request *HomeOfficeRequest) error {
	request.ID = id

	if err := validateHomeOfficeRequest(request); err != nil {
		return err
	}

	if err := service.repo.UpdateHomeOfficeRequest(context, request); err != nil {
		return err
	}

	service.logger.Info("home_office_request_updated",
		slog.Int64("request_id", request.ID),
		slog.String("status", request.Status),
	)
	return nil
}

func (service *Service) DeleteHomeOfficeRequest(context context.Context, id int64) error {
	if err := service.repo.DeleteHomeOfficeRequest(context, id); err != nil {
		return err
	}

	service.logger.Warn("home_office_request_deleted", slog.Int64("request_id", id))
	return nil
}

func validateHomeOfficeRequest(request *HomeOfficeRequest) error {
	validator := &validate.Validator{}

	validator.Positive(FieldEmployeeID, request.EmployeeID).
		OneOf(FieldStatus, request.Status, StatusPending, StatusApproved, StatusRejected).
		MaxLen(FieldDetails, request.Details, 1000)

	return validator.Err()
}
