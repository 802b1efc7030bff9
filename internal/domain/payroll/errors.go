package payroll

import "errors"

var (
	ErrPayrollRecordNotFound = errors.New("payroll record not found")
	ErrAlreadySigned         = errors.New("payroll record already signed")
	ErrInvalidSalaryMonth    = errors.New("invalid salary month")
	ErrInvalidPayrollType    = errors.New("invalid payroll type")
)
