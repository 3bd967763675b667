package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	payrollService "github.com/cmlabs-hris/launa-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	shiftRepo    payroll.ShiftRepository
	saleRepo     payroll.SaleRepository
	netEstimator *payrollService.NetEstimator
	now          func() time.Time
}

func NewDashboardService(shiftRepo payroll.ShiftRepository, saleRepo payroll.SaleRepository, netEstimator *payrollService.NetEstimator) dashboard.DashboardService {
	return &DashboardServiceImpl{
		shiftRepo:    shiftRepo,
		saleRepo:     saleRepo,
		netEstimator: netEstimator,
		now:          time.Now,
	}
}

// GetDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, period string) (dashboard.DashboardResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	now := s.now()
	label := payrollService.ResolvePeriod(now)
	if period != "" {
		label, err = payrollService.NormalizePeriod(period)
		if err != nil {
			return dashboard.DashboardResponse{}, err
		}
	}

	var (
		shifts []payroll.Shift
		sales  []payroll.Sale
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		shifts, err = s.shiftRepo.ListByEmployee(gCtx, session.EmployeeID)
		return err
	})

	g.Go(func() error {
		var err error
		sales, err = s.saleRepo.ListByEmployee(gCtx, session.EmployeeID)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	summary := payrollService.Aggregate(shifts, label)
	summaryResponse := payroll.NewPeriodSummaryResponse(summary)
	if from, to, err := payrollService.PeriodBounds(label); err == nil {
		summaryResponse.PeriodFrom = from.Format("2006-01-02")
		summaryResponse.PeriodTo = to.Format("2006-01-02")
	}

	periods := payrollService.Periods(shifts)

	return dashboard.DashboardResponse{
		Period:           label,
		Summary:          summaryResponse,
		NetEstimate:      payroll.NewNetSalaryResponse(s.netEstimator.EstimateFullAllowance(summary.TotalPay)),
		Periods:          periods,
		Chart:            buildChart(shifts, periods),
		Today:            todayTally(sales, now),
		UnassignedShifts: payrollService.CountUnassigned(shifts),
	}, nil
}

// buildChart returns one point per period, oldest first.
func buildChart(shifts []payroll.Shift, periods []string) []dashboard.ChartPoint {
	ordered := make([]string, len(periods))
	copy(ordered, periods)
	sort.Strings(ordered)

	chart := make([]dashboard.ChartPoint, 0, len(ordered))
	for _, p := range ordered {
		sum := payrollService.Aggregate(shifts, p)
		chart = append(chart, dashboard.ChartPoint{
			Period:     p,
			TotalPay:   sum.TotalPay,
			TotalBonus: sum.TotalBonus,
			TotalHours: sum.TotalHours,
			ShiftCount: sum.ShiftCount,
		})
	}
	return chart
}

func todayTally(sales []payroll.Sale, now time.Time) dashboard.TodayResponse {
	today := now.UTC().Format("2006-01-02")
	tally := dashboard.TodayResponse{Date: today, SalesTotal: decimal.Zero}
	for _, sale := range sales {
		if sale.Day() == today {
			tally.SalesTotal = tally.SalesTotal.Add(sale.Amount)
			tally.SalesCount++
		}
	}
	return tally
}
