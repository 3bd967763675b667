package sheets

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
)

type saleRepositoryImpl struct {
	table Table
	mu    sync.Mutex
}

func NewSaleRepository(table Table) payroll.SaleRepository {
	return &saleRepositoryImpl{table: table}
}

func (r *saleRepositoryImpl) all(ctx context.Context) ([]payroll.Sale, []int, error) {
	rows, err := r.table.Rows(ctx)
	if err != nil {
		return nil, nil, err
	}

	sales := make([]payroll.Sale, 0, len(rows))
	indexes := make([]int, 0, len(rows))
	for i, row := range rows {
		s, err := decodeSale(row)
		if err != nil {
			slog.Warn("skipping unreadable sale row", "row", i+2, "error", err)
			continue
		}
		sales = append(sales, s)
		indexes = append(indexes, i)
	}
	return sales, indexes, nil
}

func (r *saleRepositoryImpl) find(ctx context.Context, id, employeeID string) (payroll.Sale, int, error) {
	sales, indexes, err := r.all(ctx)
	if err != nil {
		return payroll.Sale{}, 0, err
	}
	for i, s := range sales {
		if s.ID == id && s.EmployeeID == employeeID {
			return s, indexes[i], nil
		}
	}
	return payroll.Sale{}, 0, payroll.ErrSaleNotFound
}

// Create implements payroll.SaleRepository.
func (r *saleRepositoryImpl) Create(ctx context.Context, sale payroll.Sale) (payroll.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.table.Append(ctx, encodeSale(sale)); err != nil {
		return payroll.Sale{}, err
	}
	return sale, nil
}

// GetByID implements payroll.SaleRepository.
func (r *saleRepositoryImpl) GetByID(ctx context.Context, id string, employeeID string) (payroll.Sale, error) {
	s, _, err := r.find(ctx, id, employeeID)
	return s, err
}

// ListByEmployee implements payroll.SaleRepository.
func (r *saleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Sale, error) {
	sales, _, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]payroll.Sale, 0)
	for _, s := range sales {
		if s.EmployeeID == employeeID {
			result = append(result, s)
		}
	}
	return result, nil
}

// Update implements payroll.SaleRepository.
func (r *saleRepositoryImpl) Update(ctx context.Context, sale payroll.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, index, err := r.find(ctx, sale.ID, sale.EmployeeID)
	if err != nil {
		return err
	}
	return r.table.UpdateRow(ctx, index, encodeSale(sale))
}

// Delete implements payroll.SaleRepository.
func (r *saleRepositoryImpl) Delete(ctx context.Context, id string, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, index, err := r.find(ctx, id, employeeID)
	if err != nil {
		return err
	}
	return r.table.DeleteRow(ctx, index)
}
