package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/launa-backend-go/internal/repository/postgresql"
	payrollService "github.com/cmlabs-hris/launa-backend-go/internal/service/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSetup *TestDatabaseSetup

// setupTestDB connects to TEST_DATABASE_URL and resets the tables.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	if testSetup == nil {
		var err error
		testSetup, err = NewTestDatabase(ctx, dsn)
		require.NoError(t, err)
	}

	require.NoError(t, testSetup.TruncateAllTables(ctx))

	return testSetup.DB
}

func newID(t *testing.T) string {
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

func TestEmployeeRepository_GetByCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Exec(ctx, `INSERT INTO users (employee_id, display_name) VALUES ('1042', 'Anna')`)
	require.NoError(t, err)

	repo := postgresql.NewEmployeeRepository(db)

	e, err := repo.GetByCode(ctx, "1042")
	require.NoError(t, err)
	assert.Equal(t, "Anna", e.DisplayName)

	_, err = repo.GetByCode(ctx, "9999")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestShiftRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewShiftRepository(db)

	shift := payroll.Shift{
		ID:           newID(t),
		EmployeeID:   "anna",
		Date:         time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC),
		DayHours:     decimal.NewFromInt(8),
		EveningHours: decimal.Zero,
		SalesTotal:   decimal.NewFromInt(150000),
		Wage:         decimal.NewFromInt(22376),
		Bonus:        decimal.NewFromInt(145548),
		Total:        decimal.NewFromInt(167924),
		PayPeriod:    "2024-03 (Mars)",
	}

	created, err := repo.Create(ctx, shift)
	require.NoError(t, err)
	assert.True(t, created.Total.Equal(shift.Total))

	got, err := repo.GetByID(ctx, shift.ID, "anna")
	require.NoError(t, err)
	assert.Equal(t, "2024-03 (Mars)", got.PayPeriod)
	assert.True(t, got.Date.Equal(shift.Date))

	_, err = repo.GetByID(ctx, shift.ID, "bjorn")
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)

	got.SalesTotal = decimal.NewFromInt(1000)
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.ListByEmployee(ctx, "anna")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].SalesTotal.Equal(decimal.NewFromInt(1000)))

	require.NoError(t, repo.Delete(ctx, shift.ID, "anna"))
	assert.ErrorIs(t, repo.Delete(ctx, shift.ID, "anna"), payroll.ErrShiftNotFound)

	empty, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// Test that derived values come back exactly as computed
func TestShiftRepository_KeepsDerivedPrecision(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewShiftRepository(db)
	calc := payrollService.NewCalculator(payroll.DefaultPayRates())

	shift := calc.Derive(payroll.Shift{
		ID:           newID(t),
		EmployeeID:   "anna",
		Date:         time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		DayHours:     decimal.RequireFromString("0.005"),
		EveningHours: decimal.RequireFromString("1.125"),
		SalesTotal:   decimal.RequireFromString("0.005"),
	})
	_, err := repo.Create(ctx, shift)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, shift.ID, "anna")
	require.NoError(t, err)
	assert.True(t, got.DayHours.Equal(shift.DayHours), got.DayHours.String())
	assert.True(t, got.EveningHours.Equal(shift.EveningHours), got.EveningHours.String())
	assert.True(t, got.SalesTotal.Equal(shift.SalesTotal), got.SalesTotal.String())
	assert.True(t, got.Wage.Equal(shift.Wage), got.Wage.String())
	assert.True(t, got.Bonus.Equal(shift.Bonus), got.Bonus.String())
	assert.True(t, got.Total.Equal(got.Wage.Add(got.Bonus)), got.Total.String())
	assert.False(t, calc.Drifted(got))
}

// Test that a shift without a date survives a round trip
func TestShiftRepository_ZeroDate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewShiftRepository(db)

	shift := payroll.Shift{ID: newID(t), EmployeeID: "anna", PayPeriod: payroll.UnknownPeriod}
	_, err := repo.Create(ctx, shift)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, shift.ID, "anna")
	require.NoError(t, err)
	assert.True(t, got.Date.IsZero())
	assert.Equal(t, payroll.UnknownPeriod, got.PayPeriod)
}

func TestSaleRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewSaleRepository(db)

	sale := payroll.Sale{
		ID:         newID(t),
		EmployeeID: "anna",
		Timestamp:  time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		Amount:     decimal.RequireFromString("4990.50"),
		Note:       "gift card",
	}

	_, err := repo.Create(ctx, sale)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, sale.ID, "anna")
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(sale.Amount))
	assert.Equal(t, "gift card", got.Note)

	got.Note = ""
	require.NoError(t, repo.Update(ctx, got))
	assert.ErrorIs(t, repo.Update(ctx, payroll.Sale{ID: sale.ID, EmployeeID: "bjorn"}), payroll.ErrSaleNotFound)

	list, err := repo.ListByEmployee(ctx, "anna")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, sale.ID, "anna"))
}

// Test that a failed function rolls the whole transaction back
func TestWithTransaction_Rollback(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewSaleRepository(db)
	tx := postgresql.NewTransactor(db)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, payroll.Sale{ID: newID(t), EmployeeID: "anna", Timestamp: time.Now(), Amount: decimal.NewFromInt(1)})
		require.NoError(t, err)
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	list, err := repo.ListByEmployee(ctx, "anna")
	require.NoError(t, err)
	assert.Empty(t, list)
}
