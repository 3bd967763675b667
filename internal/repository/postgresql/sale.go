package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type saleRepositoryImpl struct {
	db *database.DB
}

func NewSaleRepository(db *database.DB) payroll.SaleRepository {
	return &saleRepositoryImpl{db: db}
}

const saleColumns = `id, employee_id, timestamp, amount, note`

func scanSale(row pgx.Row) (payroll.Sale, error) {
	var s payroll.Sale
	err := row.Scan(&s.ID, &s.EmployeeID, &s.Timestamp, &s.Amount, &s.Note)
	return s, err
}

// Create implements payroll.SaleRepository.
func (r *saleRepositoryImpl) Create(ctx context.Context, sale payroll.Sale) (payroll.Sale, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + saleColumns

	created, err := scanSale(q.QueryRow(ctx, query,
		sale.ID, sale.EmployeeID, sale.Timestamp, sale.Amount, sale.Note,
	))
	if err != nil {
		return payroll.Sale{}, database.Unavailable("create sale", err)
	}

	return created, nil
}

// GetByID implements payroll.SaleRepository.
func (r *saleRepositoryImpl) GetByID(ctx context.Context, id string, employeeID string) (payroll.Sale, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 AND employee_id = $2`

	s, err := scanSale(q.QueryRow(ctx, query, id, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Sale{}, payroll.ErrSaleNotFound
		}
		return payroll.Sale{}, database.Unavailable("get sale", err)
	}

	return s, nil
}

// ListByEmployee implements payroll.SaleRepository.
func (r *saleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Sale, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + saleColumns + ` FROM sales WHERE employee_id = $1 ORDER BY timestamp`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, database.Unavailable("list sales", err)
	}
	defer rows.Close()

	sales := make([]payroll.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, database.Unavailable("scan sale", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Unavailable("list sales", err)
	}

	return sales, nil
}

// Update implements payroll.SaleRepository.
func (r *saleRepositoryImpl) Update(ctx context.Context, sale payroll.Sale) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sales
		SET timestamp = $3, amount = $4, note = $5
		WHERE id = $1 AND employee_id = $2
	`

	tag, err := q.Exec(ctx, query, sale.ID, sale.EmployeeID, sale.Timestamp, sale.Amount, sale.Note)
	if err != nil {
		return database.Unavailable("update sale", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSaleNotFound
	}

	return nil
}

// Delete implements payroll.SaleRepository.
func (r *saleRepositoryImpl) Delete(ctx context.Context, id string, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sales WHERE id = $1 AND employee_id = $2`, id, employeeID)
	if err != nil {
		return database.Unavailable("delete sale", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSaleNotFound
	}

	return nil
}
