package mapping

import "errors"

var (
	ErrConfigNotFound   = errors.New("mapping configuration not found")
	ErrConfigNameExists = errors.New("mapping configuration name already exists")
)
