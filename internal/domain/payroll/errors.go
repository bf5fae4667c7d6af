package payroll

import "errors"

var (
	ErrRunNotFound    = errors.New("pay run not found")
	ErrResultNotFound = errors.New("pay result not found")
	ErrForbidden      = errors.New("forbidden")
)
