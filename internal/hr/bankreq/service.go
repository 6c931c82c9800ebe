// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package bankreq

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

func (service *Service) ListBankRequests(context context.Context, limit, offset int) ([]*BankRequest, int, error) {
	return service.repo.ListBankRequests(context, limit, offset)
}

func (service *Service) GetBankRequest(context context.Context, id int64) (*BankRequest, error) {
	return service.repo.GetBankRequest(context, id)
}

func (service *Service) CreateBankRequest(context context.Context, request *BankRequest) error {
	if request.Status == "" {
		request.Status = StatusPending
	}
	if request.RequestDate.IsZero() {
		request.RequestDate = time.Now()
	}

	if err := validateBankRequest(request); err != nil {
		return err
	}

	if err := service.repo.CreateBankRequest(context, request); err != nil {
		return err
	}

	service.logger.Info("bank_request_created",
		slog.Int64("request_id", request.ID),
		slog.Int64("employee_id", request.EmployeeID),
	)
	return nil
}

func (service *Service) UpdateBankRequest(context context.Context, id int64, request *BankRequest) error {
	request.ID = id

	if err := validateBankRequest(request); err != nil {
		return err
	}

	if err := service.repo.UpdateBankRequest(context, request); err != nil {
		return err
	}

	service.logger.Info("bank_request_updated",
		slog.Int64("request_id", request.ID),
		slog.String("status", request.Status),
	)
	return nil
}

func (service *Service) DeleteBankRequest(context context.Context, id int64) error {
	if err := service.repo.DeleteBankRequest(context, id); err != nil {
		return err
	}

	service.logger.Warn("bank_request_deleted", slog.Int64("request_id", id))
	return nil
}

func validateBankRequest(request *BankRequest) error {
	validator := &validate.Validator{}

	validator.Positive(FieldEmployeeID, request.EmployeeID).
		OneOf(FieldStatus, request.Status, StatusPending, StatusApproved, StatusRejected).
		MaxLen(FieldDetails, request.Details, 1000)

	return validator.Err()
}
