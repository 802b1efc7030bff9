package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is inactive")
	ErrEmployeeIDExists = errors.New("employee id already exists")
	ErrInvalidCCCD      = errors.New("invalid cccd")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrWeakPassword     = errors.New("password does not meet requirements")
	ErrForbiddenScope   = errors.New("requested data is outside the caller's scope")
)
