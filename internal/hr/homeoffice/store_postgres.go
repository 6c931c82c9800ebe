// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package homeoffice

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peopledesk/peopledesk/internal/platform/apperr"
	"github.com/peopledesk/peopledesk/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const homeOfficeColumns = `id, employee_id, request_date, status, details, created_at, updated_at`

func (repository *PostgresRepository) ListHomeOfficeRequests(context context.Context, limit, offset int) ([]*HomeOfficeRequest, int, error) {
	var total int
	if err := repository.db.QueryRow(context, `SELECT count(*) FROM home_office_requests`).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Home office request")
	}

	query := `SELECT ` + homeOfficeColumns + ` FROM home_office_requests ORDER BY request_date DESC LIMIT $1 OFFSET $2`
	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Home office request")
	}
	defer rows.Close()

	var requests []*HomeOfficeRequest
	for rows.Next() {
		r := &HomeOfficeRequest{}
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.RequestDate, &r.Status, &r.Details, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "Home office request")
		}
		requests = append(requests, r)
	}

	return requests, total, nil
}

func (repository *PostgresRepository) GetHomeOfficeRequest(context context.Context, id int64) (*HomeOfficeRequest, error) {
	query := `SELECT ` + homeOfficeColumns + ` FROM home_office_requests WHERE id = $1`

	r := &HomeOfficeRequest{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&r.ID, &r.EmployeeID, &r.RequestDate, &r.Status, &r.Details, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Home office request")
	}
	return r, nil
}

func (repository *PostgresRepository) CreateHomeOfficeRequest(context context.Context, r *HomeOfficeRequest) error {
	query := `
		INSERT INTO home_office_requests (employee_id, request_date, status, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := repository.db.QueryRow(context, query,
		r.EmployeeID, r.RequestDate, r.Status, r.Details,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)

	return dberr.Wrap(err, "Home office request")
}

func (repository *PostgresRepository) UpdateHomeOfficeRequest(context context.Context, r *HomeOfficeRequest) error {
	query := `
		UPDATE home_office_requests
		SET employee_id = $2, request_date = $3, status = $4, details = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := repository.db.QueryRow(context, query,
		r.ID, r.EmployeeID, r.RequestDate, r.Status, r.Details,
	).Scan(&r.UpdatedAt)

	return dberr.Wrap(err, "Home office request")
}

func (repository *PostgresRepository) DeleteHomeOfficeRequest(context context.Context, id int64) error {
	cmd, err := repository.db.Exec(context, `DELETE FROM home_office_requests WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Home office request")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Home office request")
	}
	return nil
}
