package payroll

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	shiftRepo    payroll.ShiftRepository
	saleRepo     payroll.SaleRepository
	calculator   *Calculator
	netEstimator *NetEstimator
	publisher    sse.Publisher
	now          func() time.Time
}

func NewPayrollService(
	shiftRepo payroll.ShiftRepository,
	saleRepo payroll.SaleRepository,
	calculator *Calculator,
	netEstimator *NetEstimator,
	publisher sse.Publisher,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		shiftRepo:    shiftRepo,
		saleRepo:     saleRepo,
		calculator:   calculator,
		netEstimator: netEstimator,
		publisher:    publisher,
		now:          time.Now,
	}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

func (s *PayrollServiceImpl) publish(employeeID, event string, data interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(employeeID, sse.Event{Event: event, Data: data})
}

// ========== SALES ==========

func (s *PayrollServiceImpl) RecordSale(ctx context.Context, req payroll.RecordSaleRequest) (payroll.SaleResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SaleResponse{}, err
	}

	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return payroll.SaleResponse{}, err
	}

	timestamp := s.now()
	if req.Timestamp != nil {
		timestamp, _ = validator.IsValidDateTime(*req.Timestamp)
	}

	id, err := newID()
	if err != nil {
		return payroll.SaleResponse{}, err
	}

	created, err := s.saleRepo.Create(ctx, payroll.Sale{
		ID:         id,
		EmployeeID: session.EmployeeID,
		Timestamp:  timestamp,
		Amount:     req.Amount,
		Note:       req.Note,
	})
	metrics.ObserveWrite("sales", "create", err)
	if err != nil {
		return payroll.SaleResponse{}, err
	}

	result := payroll.NewSaleResponse(created)
	s.publish(session.EmployeeID, sse.EventSaleRecorded, result)
	return result, nil
}

func (s *PayrollServiceImpl) UpdateSale(ctx context.Context, req payroll.UpdateSaleRequest) (payroll.SaleResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SaleResponse{}, err
	}

	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return payroll.SaleResponse{}, err
	}

	current, err := s.saleRepo.GetByID(ctx, req.ID, session.EmployeeID)
	if err != nil {
		return payroll.SaleResponse{}, err
	}

	if req.Amount != nil {
		current.Amount = *req.Amount
	}
	if req.Note != nil {
		current.Note = *req.Note
	}
	if req.Timestamp != nil {
		current.Timestamp, _ = validator.IsValidDateTime(*req.Timestamp)
	}

	err = s.saleRepo.Update(ctx, current)
	metrics.ObserveWrite("sales", "update", err)
	if err != nil {
		return payroll.SaleResponse{}, err
	}

	result := payroll.NewSaleResponse(current)
	s.publish(session.EmployeeID, sse.EventSaleUpdated, result)
	return result, nil
}

func (s *PayrollServiceImpl) DeleteSale(ctx context.Context, id string) error {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return err
	}

	err = s.saleRepo.Delete(ctx, id, session.EmployeeID)
	metrics.ObserveWrite("sales", "delete", err)
	if err != nil {
		return err
	}

	s.publish(session.EmployeeID, sse.EventSaleDeleted, map[string]string{"id": id})
	return nil
}

func (s *PayrollServiceImpl) ListSales(ctx context.Context, filter payroll.SaleFilter) ([]payroll.SaleResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListByEmployee(ctx, session.EmployeeID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Timestamp.After(sales[j].Timestamp)
	})

	result := make([]payroll.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		if filter.Date != nil && sale.Day() != *filter.Date {
			continue
		}
		result = append(result, payroll.NewSaleResponse(sale))
	}

	return result, nil
}

// salesTotalOn sums the employee's sales logged on the UTC calendar day of date.
func (s *PayrollServiceImpl) salesTotalOn(ctx context.Context, employeeID string, date time.Time) (decimal.Decimal, error) {
	sales, err := s.saleRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return decimal.Zero, err
	}

	day := date.UTC().Format("2006-01-02")
	total := decimal.Zero
	for _, sale := range sales {
		if sale.Day() == day {
			total = total.Add(sale.Amount)
		}
	}
	return total, nil
}

// ========== SHIFTS ==========

func (s *PayrollServiceImpl) RecordShift(ctx context.Context, req payroll.RecordShiftRequest) (payroll.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ShiftResponse{}, err
	}

	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return payroll.ShiftResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	var salesTotal decimal.Decimal
	if req.SalesTotal != nil {
		salesTotal = *req.SalesTotal
	} else {
		salesTotal, err = s.salesTotalOn(ctx, session.EmployeeID, date)
		if err != nil {
			return payroll.ShiftResponse{}, err
		}
	}

	id, err := newID()
	if err != nil {
		return payroll.ShiftResponse{}, err
	}

	shift := s.calculator.Derive(payroll.Shift{
		ID:           id,
		EmployeeID:   session.EmployeeID,
		Date:         date,
		DayHours:     req.DayHours,
		EveningHours: req.EveningHours,
		SalesTotal:   salesTotal,
	})

	created, err := s.shiftRepo.Create(ctx, shift)
	metrics.ObserveWrite("shifts", "create", err)
	if err != nil {
		return payroll.ShiftResponse{}, err
	}

	result := payroll.NewShiftResponse(created)
	s.publish(session.EmployeeID, sse.EventShiftRecorded, result)
	return result, nil
}

func (s *PayrollServiceImpl) UpdateShift(ctx context.Context, req payroll.UpdateShiftRequest) (payroll.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ShiftResponse{}, err
	}

	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return payroll.ShiftResponse{}, err
	}

	current, err := s.shiftRepo.GetByID(ctx, req.ID, session.EmployeeID)
	if err != nil {
		return payroll.ShiftResponse{}, err
	}

	if req.Date != nil {
		current.Date, _ = validator.IsValidDate(*req.Date)
	}
	if req.DayHours != nil {
		current.DayHours = *req.DayHours
	}
	if req.EveningHours != nil {
		current.EveningHours = *req.EveningHours
	}
	if req.SalesTotal != nil {
		current.SalesTotal = *req.SalesTotal
	}

	if current.TotalHours().GreaterThan(validator.MaxHoursPerDay) {
		return payroll.ShiftResponse{}, validator.ValidationErrors{
			{Field: "evening_hours", Message: "day and evening hours must not exceed 24 in total"},
		}
	}

	current = s.calculator.Derive(current)

	err = s.shiftRepo.Update(ctx, current)
	metrics.ObserveWrite("shifts", "update", err)
	if err != nil {
		return payroll.ShiftResponse{}, err
	}

	result := payroll.NewShiftResponse(current)
	s.publish(session.EmployeeID, sse.EventShiftUpdated, result)
	return result, nil
}

func (s *PayrollServiceImpl) DeleteShift(ctx context.Context, id string) error {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return err
	}

	err = s.shiftRepo.Delete(ctx, id, session.EmployeeID)
	metrics.ObserveWrite("shifts", "delete", err)
	if err != nil {
		return err
	}

	s.publish(session.EmployeeID, sse.EventShiftDeleted, map[string]string{"id": id})
	return nil
}

func (s *PayrollServiceImpl) ListShifts(ctx context.Context, filter payroll.ShiftFilter) ([]payroll.ShiftResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var period string
	if filter.Period != nil {
		period, err = NormalizePeriod(*filter.Period)
		if err != nil {
			return nil, err
		}
	}

	shifts, err := s.shiftRepo.ListByEmployee(ctx, session.EmployeeID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(shifts, func(i, j int) bool {
		return shifts[i].Date.After(shifts[j].Date)
	})

	result := make([]payroll.ShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		if period != "" && shift.PayPeriod != period {
			continue
		}
		result = append(result, payroll.NewShiftResponse(shift))
	}

	return result, nil
}

// ========== CALCULATIONS ==========

func (s *PayrollServiceImpl) PreviewPay(ctx context.Context, req payroll.PreviewPayRequest) (payroll.PayPreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayPreviewResponse{}, err
	}

	result := s.calculator.Compute(req.DayHours, req.EveningHours, req.Sales)
	preview := payroll.PayPreviewResponse{
		Wage:      result.Wage,
		Threshold: result.Threshold,
		Bonus:     result.Bonus,
		Total:     result.Total,
	}
	if req.Date != nil {
		preview.PayPeriod = ResolvePeriodString(*req.Date)
	}

	return preview, nil
}

func (s *PayrollServiceImpl) EstimateNet(ctx context.Context, req payroll.EstimateNetRequest) (payroll.NetSalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.NetSalaryResponse{}, err
	}

	usage := decimal.NewFromInt(1)
	if req.AllowanceUsage != nil {
		usage = *req.AllowanceUsage
	}

	return payroll.NewNetSalaryResponse(s.netEstimator.Estimate(req.Gross, usage)), nil
}

func (s *PayrollServiceImpl) GetPeriodSummary(ctx context.Context, period string) (payroll.PeriodSummaryResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	label, err := NormalizePeriod(period)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	shifts, err := s.shiftRepo.ListByEmployee(ctx, session.EmployeeID)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	result := payroll.NewPeriodSummaryResponse(Aggregate(shifts, label))
	if from, to, err := PeriodBounds(label); err == nil {
		result.PeriodFrom = from.Format("2006-01-02")
		result.PeriodTo = to.Format("2006-01-02")
	}

	return result, nil
}
