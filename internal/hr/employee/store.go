// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package employee

import "context"

type Repository interface {
	ListEmployees(context context.Context, f Filter, limit, offset int) ([]*Employee, int, error)
	GetEmployee(context context.Context, id int64) (*Employee, error)
	CreateEmployee(context context.Context, e *Employee) error
	UpdateEmployee(context context.Context, e *Employee) error
	DeleteEmployee(context context.Context, id int64) error
}
