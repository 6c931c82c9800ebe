// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package dbscheck

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

const dbsCheckColumns = `id, employee_id, check_date, result, details, created_at, updated_at`

func (repository *PostgresRepository) ListDBSChecks(context context.Context, limit, offset int) ([]*DBSCheck, int, error) {
	var total int
	if err := repository.db.QueryRow(context, `SELECT count(*) FROM dbs_checks`).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "DBS check")
	}

	query := `SELECT ` + dbsCheckColumns + ` FROM dbs_checks ORDER BY check_date DESC LIMIT $1 OFFSET $2`
	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "DBS check")
	}
	defer rows.Close()

	var checks []*DBSCheck
	for rows.Next() {
		c := &DBSCheck{}
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.CheckDate, &c.Result, &c.Details, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "DBS check")
		}
		checks = append(checks, c)
	}

	return checks, total, nil
}

func (repository *PostgresRepository) GetDBSCheck(context context.Context, id int64) (*DBSCheck, error) {
	query := `SELECT ` + dbsCheckColumns + ` FROM dbs_checks WHERE id = $1`

	c := &DBSCheck{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.EmployeeID, &c.CheckDate, &c.Result, &c.Details, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "DBS check")
	}
	return c, nil
}

func (repository *PostgresRepository) CreateDBSCheck(context context.Context, c *DBSCheck) error {
	query := `
		INSERT INTO dbs_checks (employee_id, check_date, result, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := repository.db.QueryRow(context, query,
		c.EmployeeID, c.CheckDate, c.Result, c.Details,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	return dberr.Wrap(err, "DBS check")
}

func (repository *PostgresRepository) UpdateDBSCheck(context context.Context, c *DBSCheck) error {
	query := `
		UPDATE dbs_checks
		SET employee_id = $2, check_date = $3, result = $4, details = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := repository.db.QueryRow(context, query,
		c.ID, c.EmployeeID, c.CheckDate, c.Result, c.Details,
	).Scan(&c.UpdatedAt)

	return dberr.Wrap(err, "DBS check")
}

func (repository *PostgresRepository) DeleteDBSCheck(context context.Context, id int64) error {
	cmd, err := repository.db.Exec(context, `DELETE FROM dbs_checks WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "DBS check")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("DBS check")
	}
	return nil
}
