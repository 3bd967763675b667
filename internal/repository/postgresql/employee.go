package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT employee_id, display_name FROM users WHERE employee_id = $1`

	var e employee.Employee
	err := q.QueryRow(ctx, query, code).Scan(&e.ID, &e.DisplayName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, database.Unavailable("get employee", err)
	}

	return e, nil
}
