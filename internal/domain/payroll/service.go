package payroll

import "context"

// PayrollService is the computational and record-keeping surface used by the HTTP layer.
// Every method acts on behalf of the session employee found in ctx.
type PayrollService interface {
	// Sales
	RecordSale(ctx context.Context, req RecordSaleRequest) (SaleResponse, error)
	UpdateSale(ctx context.Context, req UpdateSaleRequest) (SaleResponse, error)
	DeleteSale(ctx context.Context, id string) error
	ListSales(ctx context.Context, filter SaleFilter) ([]SaleResponse, error)

	// Shifts
	RecordShift(ctx context.Context, req RecordShiftRequest) (ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error
	ListShifts(ctx context.Context, filter ShiftFilter) ([]ShiftResponse, error)

	// Calculations
	PreviewPay(ctx context.Context, req PreviewPayRequest) (PayPreviewResponse, error)
	EstimateNet(ctx context.Context, req EstimateNetRequest) (NetSalaryResponse, error)
	GetPeriodSummary(ctx context.Context, period string) (PeriodSummaryResponse, error)
}
