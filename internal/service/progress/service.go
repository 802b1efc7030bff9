// Package progress is the read side of the signature workflow: it composes
// payroll completion counts, management signatures and recent signing
// activity into the snapshot dashboards poll every 30 seconds.
package progress

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/signature"
)

const recentActivityLimit = 10

type EmployeeProgress struct {
	SignedCount          int     `json:"signed_count"`
	TotalCount           int     `json:"total_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
	IsComplete           bool    `json:"is_complete"`
}

type ManagementProgress struct {
	CompletedTypes       []signature.Type `json:"completed_types"`
	RemainingTypes       []signature.Type `json:"remaining_types"`
	CompletionPercentage float64          `json:"completion_percentage"`
}

type ActivityEntry struct {
	Kind          string    `json:"kind"` // "employee" or "management"
	EmployeeID    string    `json:"employee_id,omitempty"`
	Name          string    `json:"name"`
	SignatureType string    `json:"signature_type,omitempty"`
	SignedAt      time.Time `json:"signed_at"`
}

type Statistics struct {
	OverallCompletionPercentage float64 `json:"overall_completion_percentage"`
}

type ProgressResponse struct {
	SalaryMonth        string              `json:"salary_month"`
	PayrollType        payroll.PayrollType `json:"payroll_type"`
	EmployeeProgress   EmployeeProgress    `json:"employee_progress"`
	ManagementProgress ManagementProgress  `json:"management_progress"`
	RecentActivity     []ActivityEntry     `json:"recent_activity"`
	Statistics         Statistics          `json:"statistics"`
}

type StatusResponse struct {
	SalaryMonth          string                                  `json:"salary_month"`
	PayrollType          payroll.PayrollType                     `json:"payroll_type"`
	EmployeeProgress     EmployeeProgress                        `json:"employee_progress"`
	ManagementSignatures []signature.ManagementSignatureResponse `json:"management_signatures"`
	UnsignedSample       []payroll.UnsignedEmployee              `json:"unsigned_sample"`
}

type Service interface {
	GetProgress(ctx context.Context, salaryMonth string, isT13 bool) (ProgressResponse, error)
	GetStatus(ctx context.Context, salaryMonth string, isT13 bool) (StatusResponse, error)
}

type serviceImpl struct {
	payrollRepo   payroll.PayrollRepository
	signatureRepo signature.SignatureRepository
}

func NewService(payrollRepo payroll.PayrollRepository, signatureRepo signature.SignatureRepository) Service {
	return &serviceImpl{payrollRepo: payrollRepo, signatureRepo: signatureRepo}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func employeeProgressOf(signed, total int) EmployeeProgress {
	p := EmployeeProgress{SignedCount: signed, TotalCount: total}
	if total > 0 {
		p.CompletionPercentage = round2(float64(signed) / float64(total) * 100)
		p.IsComplete = signed == total
	}
	return p
}

func managementProgressOf(active []signature.ManagementSignature) ManagementProgress {
	completed := make(map[signature.Type]bool, len(active))
	for _, s := range active {
		completed[s.SignatureType] = true
	}

	p := ManagementProgress{
		CompletedTypes: []signature.Type{},
		RemainingTypes: []signature.Type{},
	}
	for _, t := range signature.ManagementTypes {
		if completed[t] {
			p.CompletedTypes = append(p.CompletedTypes, t)
		} else {
			p.RemainingTypes = append(p.RemainingTypes, t)
		}
	}
	p.CompletionPercentage = round2(float64(len(p.CompletedTypes)) / float64(len(signature.ManagementTypes)) * 100)
	return p
}

func (s *serviceImpl) GetProgress(ctx context.Context, salaryMonth string, isT13 bool) (ProgressResponse, error) {
	t := payroll.TypeForMonth(isT13)
	if !payroll.ValidSalaryMonth(salaryMonth, t) {
		return ProgressResponse{}, payroll.ErrInvalidSalaryMonth
	}

	signed, total, err := s.payrollRepo.CompletionCounts(ctx, salaryMonth, t)
	if err != nil {
		return ProgressResponse{}, err
	}

	active, err := s.signatureRepo.ListActive(ctx, salaryMonth, t)
	if err != nil {
		return ProgressResponse{}, err
	}

	empProgress := employeeProgressOf(signed, total)
	mgmtProgress := managementProgressOf(active)

	activity, err := s.recentActivity(ctx, salaryMonth, t)
	if err != nil {
		return ProgressResponse{}, err
	}

	// Overall completion weighs every employee signature and every
	// management signature type as one unit each.
	overall := 0.0
	denominator := total + len(signature.ManagementTypes)
	if denominator > 0 {
		overall = round2(float64(signed+len(mgmtProgress.CompletedTypes)) / float64(denominator) * 100)
	}

	return ProgressResponse{
		SalaryMonth:        salaryMonth,
		PayrollType:        t,
		EmployeeProgress:   empProgress,
		ManagementProgress: mgmtProgress,
		RecentActivity:     activity,
		Statistics:         Statistics{OverallCompletionPercentage: overall},
	}, nil
}

func (s *serviceImpl) GetStatus(ctx context.Context, salaryMonth string, isT13 bool) (StatusResponse, error) {
	t := payroll.TypeForMonth(isT13)
	if !payroll.ValidSalaryMonth(salaryMonth, t) {
		return StatusResponse{}, payroll.ErrInvalidSalaryMonth
	}

	signed, total, err := s.payrollRepo.CompletionCounts(ctx, salaryMonth, t)
	if err != nil {
		return StatusResponse{}, err
	}

	active, err := s.signatureRepo.ListActive(ctx, salaryMonth, t)
	if err != nil {
		return StatusResponse{}, err
	}
	signatures := make([]signature.ManagementSignatureResponse, 0, len(active))
	for _, sig := range active {
		signatures = append(signatures, signature.ToResponse(sig))
	}

	sample, err := s.payrollRepo.UnsignedSample(ctx, salaryMonth, t, recentActivityLimit)
	if err != nil {
		return StatusResponse{}, err
	}

	return StatusResponse{
		SalaryMonth:          salaryMonth,
		PayrollType:          t,
		EmployeeProgress:     employeeProgressOf(signed, total),
		ManagementSignatures: signatures,
		UnsignedSample:       sample,
	}, nil
}

// recentActivity interleaves the latest employee signs with the latest
// management signs, newest first, capped at recentActivityLimit.
func (s *serviceImpl) recentActivity(ctx context.Context, salaryMonth string, t payroll.PayrollType) ([]ActivityEntry, error) {
	empSigns, err := s.payrollRepo.RecentSigned(ctx, salaryMonth, t, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	mgmtSigns, err := s.signatureRepo.RecentManagementSigns(ctx, salaryMonth, t, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(empSigns)+len(mgmtSigns))
	for _, e := range empSigns {
		entries = append(entries, ActivityEntry{
			Kind:       "employee",
			EmployeeID: e.EmployeeID,
			Name:       e.FullName,
			SignedAt:   e.SignedAt,
		})
	}
	for _, m := range mgmtSigns {
		entries = append(entries, ActivityEntry{
			Kind:          "management",
			EmployeeID:    m.SignedByID,
			Name:          m.SignedByName,
			SignatureType: string(m.SignatureType),
			SignedAt:      m.SignedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].SignedAt.After(entries[j].SignedAt) })
	if len(entries) > recentActivityLimit {
		entries = entries[:recentActivityLimit]
	}
	return entries, nil
}
