package cached

import (
	"context"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/cache"
)

type shiftRepository struct {
	next  payroll.ShiftRepository
	cache readThrough
}

func NewShiftRepository(next payroll.ShiftRepository, store cache.Store, ttl time.Duration) payroll.ShiftRepository {
	return &shiftRepository{next: next, cache: readThrough{store: store, ttl: ttl, prefix: "shifts"}}
}

func (r *shiftRepository) Create(ctx context.Context, shift payroll.Shift) (payroll.Shift, error) {
	defer r.cache.invalidate(ctx, shift.EmployeeID)
	return r.next.Create(ctx, shift)
}

func (r *shiftRepository) GetByID(ctx context.Context, id string, employeeID string) (payroll.Shift, error) {
	return load(ctx, r.cache, r.cache.key(employeeID, "get", id), func() (payroll.Shift, error) {
		return r.next.GetByID(ctx, id, employeeID)
	})
}

func (r *shiftRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Shift, error) {
	return load(ctx, r.cache, r.cache.key(employeeID, "list"), func() ([]payroll.Shift, error) {
		return r.next.ListByEmployee(ctx, employeeID)
	})
}

// ListAll is not cached; the reconciliation job must see the store as it is.
func (r *shiftRepository) ListAll(ctx context.Context) ([]payroll.Shift, error) {
	return r.next.ListAll(ctx)
}

func (r *shiftRepository) Update(ctx context.Context, shift payroll.Shift) error {
	defer r.cache.invalidate(ctx, shift.EmployeeID)
	return r.next.Update(ctx, shift)
}

func (r *shiftRepository) Delete(ctx context.Context, id string, employeeID string) error {
	defer r.cache.invalidate(ctx, employeeID)
	return r.next.Delete(ctx, id, employeeID)
}
