package importer

import "sort"

// ErrorReportRow pairs one import error with the original row's raw cell
// values so the error report can be re-exported as a spreadsheet the admin
// can fix and re-upload.
type ErrorReportRow struct {
	Row         int
	EmployeeID  string
	SalaryMonth string
	Field       string
	Message     string
	Type        ErrorType
	Original    map[string]string
}

// CreateErrorReportData merges errors with the original raw rows, ordered by
// row number. originalRows is keyed by the 1-based spreadsheet row.
func CreateErrorReportData(errs []ImportErrorRecord, originalRows map[int]map[string]string) []ErrorReportRow {
	report := make([]ErrorReportRow, 0, len(errs))
	for _, e := range errs {
		report = append(report, ErrorReportRow{
			Row:         e.Row,
			EmployeeID:  e.EmployeeID,
			SalaryMonth: e.SalaryMonth,
			Field:       e.Field,
			Message:     e.Message,
			Type:        e.Type,
			Original:    originalRows[e.Row],
		})
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Row < report[j].Row })
	return report
}
