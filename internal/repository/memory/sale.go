package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
)

type saleRepositoryImpl struct {
	mu    sync.RWMutex
	order []string
	sales map[string]payroll.Sale
}

func NewSaleRepository() payroll.SaleRepository {
	return &saleRepositoryImpl{sales: make(map[string]payroll.Sale)}
}

// Create implements payroll.SaleRepository.
func (r *saleRepositoryImpl) Create(ctx context.Context, sale payroll.Sale) (payroll.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sales[sale.ID]; !exists {
		r.order = append(r.order, sale.ID)
	}
	r.sales[sale.ID] = sale
	return sale, nil
}

// GetByID implements payroll.SaleRepository.
func (r *saleRepositoryImpl) GetByID(ctx context.Context, id string, employeeID string) (payroll.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sales[id]
	if !ok || s.EmployeeID != employeeID {
		return payroll.Sale{}, payroll.ErrSaleNotFound
	}
	return s, nil
}

// ListByEmployee implements payroll.SaleRepository.
func (r *saleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]payroll.Sale, 0)
	for _, id := range r.order {
		if s := r.sales[id]; s.EmployeeID == employeeID {
			result = append(result, s)
		}
	}
	return result, nil
}

// Update implements payroll.SaleRepository.
func (r *saleRepositoryImpl) Update(ctx context.Context, sale payroll.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.sales[sale.ID]
	if !ok || current.EmployeeID != sale.EmployeeID {
		return payroll.ErrSaleNotFound
	}
	r.sales[sale.ID] = sale
	return nil
}

// Delete implements payroll.SaleRepository.
func (r *saleRepositoryImpl) Delete(ctx context.Context, id string, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.sales[id]
	if !ok || current.EmployeeID != employeeID {
		return payroll.ErrSaleNotFound
	}
	delete(r.sales, id)
	r.order = removeID(r.order, id)
	return nil
}
