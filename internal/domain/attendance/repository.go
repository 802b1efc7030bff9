package attendance

import (
	"context"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
)

type AttendanceRepository interface {
	// UpsertDaily and UpsertMonthly write in independent chunks with
	// replace-on-reimport conflict handling; each batch reports its own
	// outcome.
	UpsertDaily(ctx context.Context, records []AttendanceDaily, batchSize int) ([]payroll.BatchResult, error)
	UpsertMonthly(ctx context.Context, records []AttendanceMonthly, batchSize int) ([]payroll.BatchResult, error)

	ListDaily(ctx context.Context, employeeID string, year, month int) ([]AttendanceDaily, error)
	GetMonthly(ctx context.Context, employeeID string, year, month int) (AttendanceMonthly, error)
}
