package employee

import "context"

// EmployeeRepository resolves employee codes. A code that is not on file
// returns ErrEmployeeNotFound; a store failure is wrapped with database.ErrStoreUnavailable.
type EmployeeRepository interface {
	GetByCode(ctx context.Context, code string) (Employee, error)
}
