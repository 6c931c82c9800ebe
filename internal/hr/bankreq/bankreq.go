// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

// Package bankreq implements employee bank detail change requests.
package bankreq

import (
	"context"
	"time"
)

// BankRequest represents a pending or processed bank detail change.
type BankRequest struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employee_id"`
	RequestDate time.Time `json:"request_date"`
	Status      string    `json:"status"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Request lifecycle states.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	FieldEmployeeID = "employee_id"
	FieldStatus     = "status"
	FieldDetails    = "details"
)

type Repository interface {
	ListBankRequests(context context.Context, limit, offset int) ([]*BankRequest, int, error)
	GetBankRequest(context context.Context, id int64) (*BankRequest, error)
	CreateBankRequest(context context.Context, r *BankRequest) error
	UpdateBankRequest(context context.Context, r *BankRequest) error
	DeleteBankRequest(context context.Context, id int64) error
}
