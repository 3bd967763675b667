package sheets

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	table Table
}

func NewEmployeeRepository(table Table) employee.EmployeeRepository {
	return &employeeRepositoryImpl{table: table}
}

// GetByCode implements employee.EmployeeRepository. Codes are matched
// exactly after trimming; the first matching row wins.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	rows, err := r.table.Rows(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	code = strings.TrimSpace(code)
	for _, row := range rows {
		e := decodeEmployee(row)
		if e.ID != "" && e.ID == code {
			return e, nil
		}
	}

	return employee.Employee{}, employee.ErrEmployeeNotFound
}
