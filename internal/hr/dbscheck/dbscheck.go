// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

// Package dbscheck implements DBS (Disclosure and Barring Service)
// background check records for employees.
package dbscheck

import (
	"context"
	"time"
)

// DBSCheck represents one background check outcome for an employee.
type DBSCheck struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	CheckDate  time.Time `json:"check_date"`
	Result     string    `json:"result"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Check outcomes.
const (
	ResultPending  = "pending"
	ResultClear    = "clear"
	ResultNotClear = "not_clear"
)

const (
	FieldEmployeeID = "employee_id"
	FieldResult     = "result"
	FieldDetails    = "details"
)

type Repository interface {
	ListDBSChecks(context context.Context, limit, offset int) ([]*DBSCheck, int, error)
	GetDBSCheck(context context.Context, id int64) (*DBSCheck, error)
	CreateDBSCheck(context context.Context, c *DBSCheck) error
	UpdateDBSCheck(context context.Context, c *DBSCheck) error
	DeleteDBSCheck(context context.Context, id int64) error
}
