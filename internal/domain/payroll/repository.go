package payroll

import "context"

// ShiftRepository defines data access for shifts.
// Lookups by ID take the owning employeeID; a record owned by someone else is reported as ErrShiftNotFound.
// Store failures are wrapped with database.ErrStoreUnavailable; "no rows" is an empty slice.
type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)
	GetByID(ctx context.Context, id string, employeeID string) (Shift, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Shift, error)
	// ListAll returns every stored shift; used by the reconciliation job.
	ListAll(ctx context.Context) ([]Shift, error)
	Update(ctx context.Context, shift Shift) error
	Delete(ctx context.Context, id string, employeeID string) error
}

// SaleRepository defines data access for sales.
type SaleRepository interface {
	Create(ctx context.Context, sale Sale) (Sale, error)
	GetByID(ctx context.Context, id string, employeeID string) (Sale, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Sale, error)
	Update(ctx context.Context, sale Sale) error
	Delete(ctx context.Context, id string, employeeID string) error
}
