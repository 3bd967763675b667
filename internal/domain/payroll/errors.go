package payroll

import "errors"

var (
	ErrShiftNotFound = errors.New("shift not found")
	ErrSaleNotFound  = errors.New("sale not found")
	ErrInvalidPeriod = errors.New("invalid pay period")
)
