package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/employee"
)

// EmployeeRepository is an in-memory employee.EmployeeRepository with a seed list.
type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

// NewEmployeeRepository seeds the repository with the given employees.
func NewEmployeeRepository(seed ...employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]employee.Employee)}
	for _, e := range seed {
		r.employees[e.ID] = e
	}
	return r
}

// Put adds or replaces an employee.
func (r *EmployeeRepository) Put(e employee.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[e.ID] = e
}

// GetByCode implements employee.EmployeeRepository.
func (r *EmployeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.employees[strings.TrimSpace(code)]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// ParseSeed reads "code:Display Name,code2:Other Name" as used by MEMORY_EMPLOYEES.
func ParseSeed(s string) []employee.Employee {
	var result []employee.Employee
	for _, part := range strings.Split(s, ",") {
		code, name, ok := strings.Cut(strings.TrimSpace(part), ":")
		code = strings.TrimSpace(code)
		if !ok || code == "" {
			continue
		}
		result = append(result, employee.Employee{ID: code, DisplayName: strings.TrimSpace(name)})
	}
	return result
}
