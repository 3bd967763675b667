package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/launa-backend-go/internal/config"
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/launa-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/launa-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/launa-backend-go/internal/repository/sheets"
)

// recordStore bundles the repositories of the configured backend.
type recordStore struct {
	employees  employee.EmployeeRepository
	shifts     payroll.ShiftRepository
	sales      payroll.SaleRepository
	transactor database.Transactor
	close      func()
}

func openStore(ctx context.Context, cfg *config.Config) (recordStore, error) {
	switch cfg.Store.Type {
	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return recordStore{}, fmt.Errorf("error connecting to database: %w", err)
		}
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return recordStore{}, err
		}
		return recordStore{
			employees:  postgresql.NewEmployeeRepository(db),
			shifts:     postgresql.NewShiftRepository(db),
			sales:      postgresql.NewSaleRepository(db),
			transactor: postgresql.NewTransactor(db),
			close:      db.Close,
		}, nil

	case config.StoreSheets:
		creds, err := cfg.SheetsCredentials()
		if err != nil {
			return recordStore{}, err
		}
		client, err := sheets.NewClient(ctx, cfg.Sheets.SpreadsheetID, creds)
		if err != nil {
			return recordStore{}, err
		}
		if err := client.Ping(ctx); err != nil {
			return recordStore{}, fmt.Errorf("error opening spreadsheet: %w", err)
		}
		return recordStore{
			employees:  sheets.NewEmployeeRepository(client.Table(sheets.TabUsers, sheets.UsersHeader)),
			shifts:     sheets.NewShiftRepository(client.Table(sheets.TabShifts, sheets.ShiftsHeader)),
			sales:      sheets.NewSaleRepository(client.Table(sheets.TabSales, sheets.SalesHeader)),
			transactor: database.NoopTransactor(),
			close:      func() {},
		}, nil

	default:
		seed := memory.ParseSeed(cfg.Store.MemoryEmployees)
		slog.Warn("Using the in-memory record store; records are lost on restart", "employees", len(seed))
		return recordStore{
			employees:  memory.NewEmployeeRepository(seed...),
			shifts:     memory.NewShiftRepository(),
			sales:      memory.NewSaleRepository(),
			transactor: database.NoopTransactor(),
			close:      func() {},
		}, nil
	}
}
