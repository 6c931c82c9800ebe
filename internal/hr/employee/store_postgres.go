// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package employee

import (
	"context"
	"strconv"

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

const employeeColumns = `id, first_name, last_name, email, phone_number, department,
	position, date_of_birth, national_insurance_number, user_id, created_at, updated_at`

func scanEmployee(row interface{ Scan(...any) error }) (*Employee, error) {
	e := &Employee{}
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.PhoneNumber, &e.Department,
		&e.Position, &e.DateOfBirth, &e.NationalInsuranceNumber, &e.UserID,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (repository *PostgresRepository) ListEmployees(context context.Context, f Filter, limit, offset int) ([]*Employee, int, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	countQuery := `SELECT count(*) FROM employees WHERE 1=1`

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		clause := ` AND (first_name ILIKE $` + itos(len(args)+1) +
			` OR last_name ILIKE $` + itos(len(args)+1) +
			` OR email ILIKE $` + itos(len(args)+1) + `)`
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	if f.Department != "" {
		query += ` AND department = $` + itos(len(args)+1)
		countQuery += ` AND department = $` + itos(len(countArgs)+1)
		args = append(args, f.Department)
		countArgs = append(countArgs, f.Department)
	}

	query += ` ORDER BY last_name ASC, first_name ASC LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Employee")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Employee")
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Employee")
		}
		employees = append(employees, e)
	}

	return employees, total, nil
}

func (repository *PostgresRepository) GetEmployee(context context.Context, id int64) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Employee")
	}
	return e, nil
}

func (repository *PostgresRepository) CreateEmployee(context context.Context, e *Employee) error {
	query := `
		INSERT INTO employees (first_name, last_name, email, phone_number, department,
			position, date_of_birth, national_insurance_number, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := repository.db.QueryRow(context, query,
		e.FirstName, e.LastName, e.Email, e.PhoneNumber, e.Department,
		e.Position, e.DateOfBirth, e.NationalInsuranceNumber, e.UserID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	return dberr.Wrap(err, "Employee")
}

func (repository *PostgresRepository) UpdateEmployee(context context.Context, e *Employee) error {
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, phone_number = $5,
			department = $6, position = $7, date_of_birth = $8,
			national_insurance_number = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := repository.db.QueryRow(context, query,
		e.ID, e.FirstName, e.LastName, e.Email, e.PhoneNumber,
		e.Department, e.Position, e.DateOfBirth, e.NationalInsuranceNumber,
	).Scan(&e.UpdatedAt)

	return dberr.Wrap(err, "Employee")
}

func (repository *PostgresRepository) DeleteEmployee(context context.Context, id int64) error {
	cmd, err := repository.db.Exec(context, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Employee")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Employee")
	}
	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
