package sheets

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
)

type shiftRepositoryImpl struct {
	table Table
	// mu keeps a find-then-write pair from racing another write in this
	// process; row indexes shift when a row is deleted.
	mu sync.Mutex
}

func NewShiftRepository(table Table) payroll.ShiftRepository {
	return &shiftRepositoryImpl{table: table}
}

func (r *shiftRepositoryImpl) all(ctx context.Context) ([]payroll.Shift, []int, error) {
	rows, err := r.table.Rows(ctx)
	if err != nil {
		return nil, nil, err
	}

	shifts := make([]payroll.Shift, 0, len(rows))
	indexes := make([]int, 0, len(rows))
	for i, row := range rows {
		s, err := decodeShift(row)
		if err != nil {
			slog.Warn("skipping unreadable shift row", "row", i+2, "error", err)
			continue
		}
		shifts = append(shifts, s)
		indexes = append(indexes, i)
	}
	return shifts, indexes, nil
}

func (r *shiftRepositoryImpl) find(ctx context.Context, id, employeeID string) (payroll.Shift, int, error) {
	shifts, indexes, err := r.all(ctx)
	if err != nil {
		return payroll.Shift{}, 0, err
	}
	for i, s := range shifts {
		if s.ID == id && s.EmployeeID == employeeID {
			return s, indexes[i], nil
		}
	}
	return payroll.Shift{}, 0, payroll.ErrShiftNotFound
}

// Create implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, shift payroll.Shift) (payroll.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.table.Append(ctx, encodeShift(shift)); err != nil {
		return payroll.Shift{}, err
	}
	return shift, nil
}

// GetByID implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, employeeID string) (payroll.Shift, error) {
	s, _, err := r.find(ctx, id, employeeID)
	return s, err
}

// ListByEmployee implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Shift, error) {
	shifts, _, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]payroll.Shift, 0)
	for _, s := range shifts {
		if s.EmployeeID == employeeID {
			result = append(result, s)
		}
	}
	return result, nil
}

// ListAll implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) ListAll(ctx context.Context) ([]payroll.Shift, error) {
	shifts, _, err := r.all(ctx)
	return shifts, err
}

// Update implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, shift payroll.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, index, err := r.find(ctx, shift.ID, shift.EmployeeID)
	if err != nil {
		return err
	}
	return r.table.UpdateRow(ctx, index, encodeShift(shift))
}

// Delete implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, index, err := r.find(ctx, id, employeeID)
	if err != nil {
		return err
	}
	return r.table.DeleteRow(ctx, index)
}
