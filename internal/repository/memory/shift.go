package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
)

type shiftRepositoryImpl struct {
	mu     sync.RWMutex
	order  []string
	shifts map[string]payroll.Shift
}

func NewShiftRepository() payroll.ShiftRepository {
	return &shiftRepositoryImpl{shifts: make(map[string]payroll.Shift)}
}

// Create implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, shift payroll.Shift) (payroll.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.shifts[shift.ID]; !exists {
		r.order = append(r.order, shift.ID)
	}
	r.shifts[shift.ID] = shift
	return shift, nil
}

// GetByID implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, employeeID string) (payroll.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.shifts[id]
	if !ok || s.EmployeeID != employeeID {
		return payroll.Shift{}, payroll.ErrShiftNotFound
	}
	return s, nil
}

// ListByEmployee implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]payroll.Shift, 0)
	for _, id := range r.order {
		if s := r.shifts[id]; s.EmployeeID == employeeID {
			result = append(result, s)
		}
	}
	return result, nil
}

// ListAll implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) ListAll(ctx context.Context) ([]payroll.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]payroll.Shift, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.shifts[id])
	}
	return result, nil
}

// Update implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, shift payroll.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.shifts[shift.ID]
	if !ok || current.EmployeeID != shift.EmployeeID {
		return payroll.ErrShiftNotFound
	}
	r.shifts[shift.ID] = shift
	return nil
}

// Delete implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.shifts[id]
	if !ok || current.EmployeeID != employeeID {
		return payroll.ErrShiftNotFound
	}
	delete(r.shifts, id)
	r.order = removeID(r.order, id)
	return nil
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
