package cached

import (
	"context"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/cache"
)

type saleRepository struct {
	next  payroll.SaleRepository
	cache readThrough
}

func NewSaleRepository(next payroll.SaleRepository, store cache.Store, ttl time.Duration) payroll.SaleRepository {
	return &saleRepository{next: next, cache: readThrough{store: store, ttl: ttl, prefix: "sales"}}
}

func (r *saleRepository) Create(ctx context.Context, sale payroll.Sale) (payroll.Sale, error) {
	defer r.cache.invalidate(ctx, sale.EmployeeID)
	return r.next.Create(ctx, sale)
}

func (r *saleRepository) GetByID(ctx context.Context, id string, employeeID string) (payroll.Sale, error) {
	return load(ctx, r.cache, r.cache.key(employeeID, "get", id), func() (payroll.Sale, error) {
		return r.next.GetByID(ctx, id, employeeID)
	})
}

func (r *saleRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Sale, error) {
	return load(ctx, r.cache, r.cache.key(employeeID, "list"), func() ([]payroll.Sale, error) {
		return r.next.ListByEmployee(ctx, employeeID)
	})
}

func (r *saleRepository) Update(ctx context.Context, sale payroll.Sale) error {
	defer r.cache.invalidate(ctx, sale.EmployeeID)
	return r.next.Update(ctx, sale)
}

func (r *saleRepository) Delete(ctx context.Context, id string, employeeID string) error {
	defer r.cache.invalidate(ctx, employeeID)
	return r.next.Delete(ctx, id, employeeID)
}
