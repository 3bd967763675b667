package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) payroll.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, employee_id, date, day_hours, evening_hours, sales_total, wage, bonus, total, pay_period`

func scanShift(row pgx.Row) (payroll.Shift, error) {
	var s payroll.Shift
	var date *time.Time
	err := row.Scan(
		&s.ID, &s.EmployeeID, &date,
		&s.DayHours, &s.EveningHours, &s.SalesTotal,
		&s.Wage, &s.Bonus, &s.Total, &s.PayPeriod,
	)
	if date != nil {
		s.Date = *date
	}
	return s, err
}

// nullableDate stores a zero date as NULL so it reads back as zero.
func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Create implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, shift payroll.Shift) (payroll.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		shift.ID, shift.EmployeeID, nullableDate(shift.Date),
		shift.DayHours, shift.EveningHours, shift.SalesTotal,
		shift.Wage, shift.Bonus, shift.Total, shift.PayPeriod,
	))
	if err != nil {
		return payroll.Shift{}, database.Unavailable("create shift", err)
	}

	return created, nil
}

// GetByID implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, employeeID string) (payroll.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1 AND employee_id = $2`

	s, err := scanShift(q.QueryRow(ctx, query, id, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Shift{}, payroll.ErrShiftNotFound
		}
		return payroll.Shift{}, database.Unavailable("get shift", err)
	}

	return s, nil
}

// ListByEmployee implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE employee_id = $1 ORDER BY date NULLS LAST, id`
	return r.list(ctx, "list shifts", query, employeeID)
}

// ListAll implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) ListAll(ctx context.Context) ([]payroll.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts ORDER BY employee_id, date NULLS LAST, id`
	return r.list(ctx, "list all shifts", query)
}

func (r *shiftRepositoryImpl) list(ctx context.Context, op string, query string, args ...interface{}) ([]payroll.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Unavailable(op, err)
	}
	defer rows.Close()

	shifts := make([]payroll.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, database.Unavailable("scan shift", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Unavailable(op, err)
	}

	return shifts, nil
}

// Update implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, shift payroll.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET date = $3, day_hours = $4, evening_hours = $5, sales_total = $6,
			wage = $7, bonus = $8, total = $9, pay_period = $10
		WHERE id = $1 AND employee_id = $2
	`

	tag, err := q.Exec(ctx, query,
		shift.ID, shift.EmployeeID, nullableDate(shift.Date),
		shift.DayHours, shift.EveningHours, shift.SalesTotal,
		shift.Wage, shift.Bonus, shift.Total, shift.PayPeriod,
	)
	if err != nil {
		return database.Unavailable("update shift", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrShiftNotFound
	}

	return nil
}

// Delete implements payroll.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1 AND employee_id = $2`, id, employeeID)
	if err != nil {
		return database.Unavailable("delete shift", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrShiftNotFound
	}

	return nil
}
