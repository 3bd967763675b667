package auth

import (
	"strings"

	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/validator"
)

type LoginEmployeeCodeRequest struct {
	EmployeeCode string `json:"employee_code"`
}

func (r *LoginEmployeeCodeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code may only contain letters, numbers, dots, underscores, and hyphens",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresAt int64  `json:"access_token_expires_at"`
	EmployeeID           string `json:"employee_id"`
	DisplayName          string `json:"display_name"`
}

type SessionResponse struct {
	EmployeeID  string `json:"employee_id"`
	DisplayName string `json:"display_name"`
}

type EventTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
