package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/launa-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Sales
	RecordSale(w http.ResponseWriter, r *http.Request)
	ListSales(w http.ResponseWriter, r *http.Request)
	UpdateSale(w http.ResponseWriter, r *http.Request)
	DeleteSale(w http.ResponseWriter, r *http.Request)

	// Shifts
	RecordShift(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)

	// Calculations
	PreviewPay(w http.ResponseWriter, r *http.Request)
	EstimateNet(w http.ResponseWriter, r *http.Request)
	GetPeriodSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== SALES ==========

func (h *payrollHandlerImpl) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req payroll.RecordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.RecordSale(r.Context(), req)
	if err != nil {
		slog.Error("RecordSale service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Sale recorded", result)
}

func (h *payrollHandlerImpl) ListSales(w http.ResponseWriter, r *http.Request) {
	var filter payroll.SaleFilter
	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}

	result, err := h.payrollService.ListSales(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateSale(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.UpdateSale(r.Context(), req)
	if err != nil {
		slog.Error("UpdateSale service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Sale ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteSale(r.Context(), id); err != nil {
		slog.Error("DeleteSale service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sale deleted", nil)
}

// ========== SHIFTS ==========

func (h *payrollHandlerImpl) RecordShift(w http.ResponseWriter, r *http.Request) {
	var req payroll.RecordShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.RecordShift(r.Context(), req)
	if err != nil {
		slog.Error("RecordShift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift recorded", result)
}

func (h *payrollHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	var filter payroll.ShiftFilter
	if period := r.URL.Query().Get("period"); period != "" {
		filter.Period = &period
	}

	result, err := h.payrollService.ListShifts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.UpdateShift(r.Context(), req)
	if err != nil {
		slog.Error("UpdateShift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteShift(r.Context(), id); err != nil {
		slog.Error("DeleteShift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// ========== CALCULATIONS ==========

func (h *payrollHandlerImpl) PreviewPay(w http.ResponseWriter, r *http.Request) {
	var req payroll.PreviewPayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.PreviewPay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) EstimateNet(w http.ResponseWriter, r *http.Request) {
	var req payroll.EstimateNetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.EstimateNet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPeriodSummary handles GET /payroll/periods/{period}/summary
func (h *payrollHandlerImpl) GetPeriodSummary(w http.ResponseWriter, r *http.Request) {
	period, err := url.PathUnescape(chi.URLParam(r, "period"))
	if err != nil {
		response.BadRequest(w, "Invalid pay period", nil)
		return
	}

	result, err := h.payrollService.GetPeriodSummary(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
