package service

import (
	"context"
	"time"

	"github.com/sanchaypro/sanchay-server/internal/models"
	"github.com/sanchaypro/sanchay-server/internal/notify"
	"go.uber.org/zap"
)

// Balance views are always recomputed from a full payment scan; nothing is
// cached between requests. Fines are fees, not savings, so deposit totals sum
// the base amount only, and pending payments never count.

// totalDeposited sums verified base amounts for one member
func totalDeposited(payments []models.Payment, memberID string) int64 {
	var total int64
	for _, p := range payments {
		if p.MemberID == memberID && p.Status != models.StatusPending {
			total += p.Amount
		}
	}
	return total
}

// lastPayment returns the member's most recent verified payment in store
// insertion order, or nil
func lastPayment(payments []models.Payment, memberID string) *models.Payment {
	var last *models.Payment
	for i := range payments {
		if payments[i].MemberID == memberID && payments[i].Status != models.StatusPending {
			last = &payments[i]
		}
	}
	return last
}

func pendingCount(payments []models.Payment) int {
	count := 0
	for _, p := range payments {
		if p.Status == models.StatusPending {
			count++
		}
	}
	return count
}

// sameLocalDay reports whether two instants fall on the same local calendar day
func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// sameLocalMonth reports whether two instants fall in the same local calendar month
func sameLocalMonth(a, b time.Time) bool {
	ay, am, _ := a.Local().Date()
	by, bm, _ := b.Local().Date()
	return ay == by && am == bm
}

// MemberSummary is a member's own balance view: total deposited plus the last
// verified payment
func (s *DefaultService) MemberSummary(ctx context.Context, memberID string) *models.MemberSummary {
	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		s.logger.Warn("failed to list payments", zap.Error(err))
		payments = nil
	}

	return &models.MemberSummary{
		Status:         "success",
		MemberID:       memberID,
		TotalDeposited: totalDeposited(payments, memberID),
		LastPayment:    lastPayment(payments, memberID),
	}
}

// DashboardSummary backs the admin dashboard: active member count, today's
// and this month's collection, pending approvals and the latest entries.
func (s *DefaultService) DashboardSummary(ctx context.Context) *models.DashboardSummary {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		s.logger.Warn("failed to list members", zap.Error(err))
		members = nil
	}

	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		s.logger.Warn("failed to list payments", zap.Error(err))
		payments = nil
	}

	active := 0
	for _, m := range members {
		if m.Status == models.MemberActive {
			active++
		}
	}

	now := s.now()
	// Collection windows count pending submissions too
	var today, monthly int64
	for _, p := range payments {
		if sameLocalDay(p.Date, now) {
			today += p.Amount
		}
		if sameLocalMonth(p.Date, now) {
			monthly += p.Amount
		}
	}

	// Last five payments, newest first
	recent := make([]models.Payment, 0, 5)
	for i := len(payments) - 1; i >= 0 && len(recent) < 5; i-- {
		recent = append(recent, payments[i])
	}

	return &models.DashboardSummary{
		Status:            "success",
		ActiveMembers:     active,
		TodayCollection:   today,
		MonthlyCollection: monthly,
		PendingApprovals:  pendingCount(payments),
		RecentPayments:    recent,
	}
}

// ReportSummary is the society-wide report: total collection, pending
// approvals and per-member balances for active members.
func (s *DefaultService) ReportSummary(ctx context.Context) *models.ReportSummary {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		s.logger.Warn("failed to list members", zap.Error(err))
		members = nil
	}

	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		s.logger.Warn("failed to list payments", zap.Error(err))
		payments = nil
	}

	var total int64
	for _, p := range payments {
		if p.Status != models.StatusPending {
			total += p.Amount
		}
	}

	balances := make([]models.MemberBalance, 0)
	for _, m := range members {
		if m.Status != models.MemberActive {
			continue
		}
		balances = append(balances, models.MemberBalance{
			MemberID: m.MemberID,
			NameEn:   m.NameEn,
			NameBn:   m.NameBn,
			Balance:  totalDeposited(payments, m.MemberID),
		})
	}

	return &models.ReportSummary{
		Status:           "success",
		TotalMembers:     len(members),
		TotalCollection:  total,
		PendingApprovals: pendingCount(payments),
		Balances:         balances,
	}
}

// SendReportSummary pushes the current report to the notification channel
func (s *DefaultService) SendReportSummary(ctx context.Context) {
	report := s.ReportSummary(ctx)
	stats := notify.ReportStats{
		TotalMembers:     report.TotalMembers,
		TotalCollection:  report.TotalCollection,
		PendingApprovals: report.PendingApprovals,
	}

	s.dispatch(func(ctx context.Context) {
		s.notifier.NotifyReportSummary(ctx, stats)
	})
}
