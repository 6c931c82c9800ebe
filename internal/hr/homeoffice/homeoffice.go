// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

// Package homeoffice implements remote working requests.
package homeoffice

import (
	"context"
	"time"
)

// HomeOfficeRequest represents a request to work remotely.
type HomeOfficeRequest struct {
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
	ListHomeOfficeRequests(context context.Context, limit, offset int) ([]*HomeOfficeRequest, int, error)
	GetHomeOfficeRequest(context context.Context, id int64) (*HomeOfficeRequest, error)
	CreateHomeOfficeRequest(context context.Context, r *HomeOfficeRequest) error
	UpdateHomeOfficeRequest(context context.Context, r *HomeOfficeRequest) error
	DeleteHomeOfficeRequest(context context.Context, id int64) error
}
