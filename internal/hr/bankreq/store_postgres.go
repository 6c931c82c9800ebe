// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package bankreq

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

const bankRequestColumns = `id, employee_id, request_date, status, details, created_at, updated_at`

func (repository *PostgresRepository) ListBankRequests(context context.Context, limit, offset int) ([]*BankRequest, int, error) {
	var total int
	if err := repository.db.QueryRow(context, `SELECT count(*) FROM bank_requests`).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Bank request")
	}

	query := `SELECT ` + bankRequestColumns + ` FROM bank_requests ORDER BY request_date DESC LIMIT $1 OFFSET $2`
	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Bank request")
	}
	defer rows.Close()

	var requests []*BankRequest
	for rows.Next() {
		r := &BankRequest{}
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.RequestDate, &r.Status, &r.Details, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "Bank request")
		}
		requests = append(requests, r)
	}

	return requests, total, nil
}

func (repository *PostgresRepository) GetBankRequest(context context.Context, id int64) (*BankRequest, error) {
	query := `SELECT ` + bankRequestColumns + ` FROM bank_requests WHERE id = $1`

	r := &BankRequest{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&r.ID, &r.EmployeeID, &r.RequestDate, &r.Status, &r.Details, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Bank request")
	}
	return r, nil
}

func (repository *PostgresRepository) CreateBankRequest(context context.Context, r *BankRequest) error {
	query := `
		INSERT INTO bank_requests (employee_id, request_date, status, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := repository.db.QueryRow(context, query,
		r.EmployeeID, r.RequestDate, r.Status, r.Details,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)

	return dberr.Wrap(err, "Bank request")
}

func (repository *PostgresRepository) UpdateBankRequest(context context.Context, r *BankRequest) error {
	query := `
		UPDATE bank_requests
		SET employee_id = $2, request_date = $3, status = $4, details = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := repository.db.QueryRow(context, query,
		r.ID, r.EmployeeID, r.RequestDate, r.Status, r.Details,
	).Scan(&r.UpdatedAt)

	return dberr.Wrap(err, "Bank request")
}

func (repository *PostgresRepository) DeleteBankRequest(context context.Context, id int64) error {
	cmd, err := repository.db.Exec(context, `DELETE FROM bank_requests WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Bank request")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Bank request")
	}
	return nil
}
