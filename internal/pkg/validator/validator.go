package validator

import (
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Employee IDs are alphanumeric (optionally with - or _), 2 to 20 characters.
var employeeIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{2,20}$`)

func IsValidEmployeeID(id string) bool {
	return employeeIDRegex.MatchString(strings.TrimSpace(id))
}

// CCCD is the 12-digit Vietnamese national ID.
func IsValidCCCD(cccd string) bool {
	return len(cccd) == 12 && IsNumeric(cccd)
}
