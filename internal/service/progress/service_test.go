package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/signature"
)

type fakePayrollRepo struct {
	payroll.PayrollRepository

	signed   int
	total    int
	recent   []payroll.SignedActivity
	unsigned []payroll.UnsignedEmployee
}

func (f *fakePayrollRepo) CompletionCounts(context.Context, string, payroll.PayrollType) (int, int, error) {
	return f.signed, f.total, nil
}

func (f *fakePayrollRepo) RecentSigned(context.Context, string, payroll.PayrollType, int) ([]payroll.SignedActivity, error) {
	return f.recent, nil
}

func (f *fakePayrollRepo) UnsignedSample(context.Context, string, payroll.PayrollType, int) ([]payroll.UnsignedEmployee, error) {
	return f.unsigned, nil
}

type fakeSignatureRepo struct {
	signature.SignatureRepository

	active []signature.ManagementSignature
	recent []signature.ManagementSignature
}

func (f *fakeSignatureRepo) ListActive(context.Context, string, payroll.PayrollType) ([]signature.ManagementSignature, error) {
	return f.active, nil
}

func (f *fakeSignatureRepo) RecentManagementSigns(context.Context, string, payroll.PayrollType, int) ([]signature.ManagementSignature, error) {
	return f.recent, nil
}

func at(hour int) time.Time {
	return time.Date(2025, 6, 15, hour, 0, 0, 0, time.UTC)
}

func TestGetProgress(t *testing.T) {
	payrolls := &fakePayrollRepo{
		signed: 2,
		total:  3,
		recent: []payroll.SignedActivity{
			{EmployeeID: "NV001", FullName: "Nguyễn Văn A", SignedAt: at(9)},
			{EmployeeID: "NV002", FullName: "Trần Thị B", SignedAt: at(11)},
		},
	}
	signatures := &fakeSignatureRepo{
		active: []signature.ManagementSignature{
			{SignatureType: signature.TypeKeToan, SignedAt: at(10)},
		},
		recent: []signature.ManagementSignature{
			{SignatureType: signature.TypeKeToan, SignedByID: "KT001", SignedByName: "Lê Văn C", SignedAt: at(10)},
		},
	}
	svc := NewService(payrolls, signatures)

	resp, err := svc.GetProgress(context.Background(), "2025-05", false)
	require.NoError(t, err)

	assert.Equal(t, "2025-05", resp.SalaryMonth)
	assert.Equal(t, payroll.TypeMonthly, resp.PayrollType)

	assert.Equal(t, 2, resp.EmployeeProgress.SignedCount)
	assert.Equal(t, 3, resp.EmployeeProgress.TotalCount)
	assert.InDelta(t, 66.67, resp.EmployeeProgress.CompletionPercentage, 0.001)
	assert.False(t, resp.EmployeeProgress.IsComplete)

	assert.Equal(t, []signature.Type{signature.TypeKeToan}, resp.ManagementProgress.CompletedTypes)
	assert.Equal(t, []signature.Type{signature.TypeGiamDoc, signature.TypeNguoiLapBieu}, resp.ManagementProgress.RemainingTypes)
	assert.InDelta(t, 33.33, resp.ManagementProgress.CompletionPercentage, 0.001)

	// (2 employee signs + 1 management sign) / (3 employees + 3 types).
	assert.InDelta(t, 50.0, resp.Statistics.OverallCompletionPercentage, 0.001)

	// Newest first, employee and management signs interleaved.
	require.Len(t, resp.RecentActivity, 3)
	assert.Equal(t, "employee", resp.RecentActivity[0].Kind)
	assert.Equal(t, "NV002", resp.RecentActivity[0].EmployeeID)
	assert.Equal(t, "management", resp.RecentActivity[1].Kind)
	assert.Equal(t, "ke_toan", resp.RecentActivity[1].SignatureType)
	assert.Equal(t, "NV001", resp.RecentActivity[2].EmployeeID)
}

func TestGetProgressEmptyPeriod(t *testing.T) {
	svc := NewService(&fakePayrollRepo{}, &fakeSignatureRepo{})

	resp, err := svc.GetProgress(context.Background(), "2025-05", false)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.EmployeeProgress.TotalCount)
	assert.Zero(t, resp.EmployeeProgress.CompletionPercentage)
	assert.False(t, resp.EmployeeProgress.IsComplete)
	assert.Len(t, resp.ManagementProgress.RemainingTypes, len(signature.ManagementTypes))
	// 0 signed of 0 employees still leaves 3 unsigned management types.
	assert.Zero(t, resp.Statistics.OverallCompletionPercentage)
	assert.Empty(t, resp.RecentActivity)
}

func TestGetProgressCapsActivity(t *testing.T) {
	payrolls := &fakePayrollRepo{signed: 12, total: 12}
	for i := 0; i < 12; i++ {
		payrolls.recent = append(payrolls.recent, payroll.SignedActivity{
			EmployeeID: "NV001",
			SignedAt:   at(i % 24),
		})
	}
	svc := NewService(payrolls, &fakeSignatureRepo{})

	resp, err := svc.GetProgress(context.Background(), "2025-05", false)
	require.NoError(t, err)
	assert.Len(t, resp.RecentActivity, recentActivityLimit)
}

func TestGetProgressInvalidMonth(t *testing.T) {
	svc := NewService(&fakePayrollRepo{}, &fakeSignatureRepo{})

	_, err := svc.GetProgress(context.Background(), "2025-13", false)
	assert.ErrorIs(t, err, payroll.ErrInvalidSalaryMonth)

	_, err = svc.GetProgress(context.Background(), "2025-05", true)
	assert.ErrorIs(t, err, payroll.ErrInvalidSalaryMonth)

	// The same month is valid once the type matches.
	_, err = svc.GetProgress(context.Background(), "2025-13", true)
	assert.NoError(t, err)
}

func TestGetStatus(t *testing.T) {
	payrolls := &fakePayrollRepo{
		signed: 3,
		total:  3,
		unsigned: []payroll.UnsignedEmployee{
			{EmployeeID: "NV009", FullName: "Phạm Thị D", Department: "May 2"},
		},
	}
	signatures := &fakeSignatureRepo{
		active: []signature.ManagementSignature{
			{SignatureType: signature.TypeGiamDoc, SignedByName: "Trần Văn B", SignedAt: at(10)},
		},
	}
	svc := NewService(payrolls, signatures)

	resp, err := svc.GetStatus(context.Background(), "2025-05", false)
	require.NoError(t, err)

	assert.True(t, resp.EmployeeProgress.IsComplete)
	assert.InDelta(t, 100.0, resp.EmployeeProgress.CompletionPercentage, 0.001)

	require.Len(t, resp.ManagementSignatures, 1)
	assert.Equal(t, signature.TypeGiamDoc, resp.ManagementSignatures[0].SignatureType)
	assert.Equal(t, "Trần Văn B", resp.ManagementSignatures[0].SignedByName)

	require.Len(t, resp.UnsignedSample, 1)
	assert.Equal(t, "NV009", resp.UnsignedSample[0].EmployeeID)
}
