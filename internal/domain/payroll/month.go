package payroll

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	monthlyMonthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	t13MonthRegex     = regexp.MustCompile(`^\d{4}-13$`)
)

// ValidSalaryMonth reports whether month matches the format for the given
// payroll type: YYYY-MM for monthly, YYYY-13 for the 13th-month bonus.
func ValidSalaryMonth(month string, t PayrollType) bool {
	if t == TypeT13 {
		return t13MonthRegex.MatchString(month)
	}
	return monthlyMonthRegex.MatchString(month)
}

// TypeForMonth resolves the payroll type from the is_t13 flag.
func TypeForMonth(isT13 bool) PayrollType {
	if isT13 {
		return TypeT13
	}
	return TypeMonthly
}

// DisplayMonth renders a salary month for Vietnamese UI text:
// "2025-05" -> "tháng 05/2025", "2025-13" -> "lương tháng 13 năm 2025".
func DisplayMonth(month string) string {
	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 {
		return month
	}
	if parts[1] == "13" {
		return fmt.Sprintf("lương tháng 13 năm %s", parts[0])
	}
	return fmt.Sprintf("tháng %s/%s", parts[1], parts[0])
}
