package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_GetByCode(t *testing.T) {
	repo := NewEmployeeRepository(employee.Employee{ID: "1042", DisplayName: "Anna"})

	e, err := repo.GetByCode(context.Background(), " 1042 ")
	require.NoError(t, err)
	assert.Equal(t, "Anna", e.DisplayName)

	_, err = repo.GetByCode(context.Background(), "9999")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestParseSeed(t *testing.T) {
	seed := ParseSeed("1042:Anna Jónsdóttir, bjorn:Björn ,:nobody,broken")

	require.Len(t, seed, 2)
	assert.Equal(t, employee.Employee{ID: "1042", DisplayName: "Anna Jónsdóttir"}, seed[0])
	assert.Equal(t, employee.Employee{ID: "bjorn", DisplayName: "Björn"}, seed[1])
}

func TestShiftRepository_OwnershipAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewShiftRepository()

	for _, s := range []payroll.Shift{
		{ID: "s1", EmployeeID: "anna", DayHours: decimal.NewFromInt(4)},
		{ID: "s2", EmployeeID: "bjorn"},
		{ID: "s3", EmployeeID: "anna"},
	} {
		_, err := repo.Create(ctx, s)
		require.NoError(t, err)
	}

	list, err := repo.ListByEmployee(ctx, "anna")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s1", list[0].ID)
	assert.Equal(t, "s3", list[1].ID)

	_, err = repo.GetByID(ctx, "s2", "anna")
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)

	err = repo.Update(ctx, payroll.Shift{ID: "s2", EmployeeID: "anna"})
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)

	err = repo.Delete(ctx, "s2", "anna")
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)

	require.NoError(t, repo.Delete(ctx, "s1", "anna"))
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	empty, err := repo.ListByEmployee(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSaleRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewSaleRepository()
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, payroll.Sale{ID: "x1", EmployeeID: "anna", Timestamp: ts, Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)

	sale, err := repo.GetByID(ctx, "x1", "anna")
	require.NoError(t, err)
	sale.Note = "corrected"
	require.NoError(t, repo.Update(ctx, sale))

	got, err := repo.GetByID(ctx, "x1", "anna")
	require.NoError(t, err)
	assert.Equal(t, "corrected", got.Note)

	_, err = repo.GetByID(ctx, "x1", "bjorn")
	assert.ErrorIs(t, err, payroll.ErrSaleNotFound)

	require.NoError(t, repo.Delete(ctx, "x1", "anna"))
	_, err = repo.GetByID(ctx, "x1", "anna")
	assert.ErrorIs(t, err, payroll.ErrSaleNotFound)
}
