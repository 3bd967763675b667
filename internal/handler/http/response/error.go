package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidEmployeeCode):
		Unauthorized(w, "Unknown employee code")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrNoSession):
		Unauthorized(w, "Not logged in")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, payroll.ErrSaleNotFound):
		NotFound(w, "Sale not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid pay period, expected YYYY-MM", nil)

	// Store errors
	case errors.Is(err, database.ErrStoreUnavailable):
		slog.Error("record store unavailable", "error", err)
		ServiceUnavailable(w, "Record store is unavailable, try again shortly")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
