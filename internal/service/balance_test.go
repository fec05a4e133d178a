package service

import (
	"context"
	"testing"
	"time"

	"github.com/sanchaypro/sanchay-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTotalDepositedExcludesPendingAndFines(t *testing.T) {
	svc, repo, _ := newTestService(t)

	now := time.Now().UTC()
	seedPayment(t, repo, "A010", 100, 0, models.StatusPaid, now)
	seedPayment(t, repo, "A010", 200, 50, models.StatusLate, now)
	seedPayment(t, repo, "A010", 300, 0, models.StatusPending, now)

	summary := svc.MemberSummary(context.Background(), "A010")

	// 100 + 200: fines are fees, not savings, and pending never counts
	assert.Equal(t, int64(300), summary.TotalDeposited)
}

func TestLastPaymentFollowsInsertionOrder(t *testing.T) {
	svc, repo, _ := newTestService(t)

	first := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	seedPayment(t, repo, "A011", 100, 0, models.StatusPaid, first)
	// Inserted later but dated earlier: insertion order wins
	seedPayment(t, repo, "A011", 200, 0, models.StatusPaid, earlier)
	seedPayment(t, repo, "A011", 300, 0, models.StatusPending, time.Now().UTC())

	summary := svc.MemberSummary(context.Background(), "A011")
	assert.NotNil(t, summary.LastPayment)
	assert.Equal(t, int64(200), summary.LastPayment.Amount)
}

func TestMemberSummaryEmptyHistory(t *testing.T) {
	svc, _, _ := newTestService(t)

	summary := svc.MemberSummary(context.Background(), "A012")
	assert.Equal(t, int64(0), summary.TotalDeposited)
	assert.Nil(t, summary.LastPayment)
}

func TestDashboardSummary(t *testing.T) {
	svc, repo, _ := newTestService(t)
	setClock(svc, time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local))

	seedMember(t, repo, "A013", "01811111111", "pass", models.RoleMember, models.PaymentWeekly, 500)
	inactive := seedMember(t, repo, "A014", "01822222222", "pass", models.RoleMember, models.PaymentMonthly, 500)
	inactive.Status = models.MemberInactive
	assert.NoError(t, repo.UpdateMember(context.Background(), inactive))

	today := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)
	sameMonth := time.Date(2024, time.March, 2, 9, 0, 0, 0, time.Local)
	lastMonth := time.Date(2024, time.February, 15, 9, 0, 0, 0, time.Local)

	seedPayment(t, repo, "A013", 500, 50, models.StatusLate, today)
	seedPayment(t, repo, "A013", 400, 0, models.StatusPaid, sameMonth)
	seedPayment(t, repo, "A013", 300, 0, models.StatusPaid, lastMonth)
	seedPayment(t, repo, "A014", 200, 0, models.StatusPending, today)

	summary := svc.DashboardSummary(context.Background())

	assert.Equal(t, 1, summary.ActiveMembers)
	assert.Equal(t, int64(700), summary.TodayCollection)
	assert.Equal(t, int64(1100), summary.MonthlyCollection)
	assert.Equal(t, 1, summary.PendingApprovals)
	assert.Len(t, summary.RecentPayments, 4)
	// Newest first
	assert.Equal(t, int64(200), summary.RecentPayments[0].Amount)
}

func TestReportSummary(t *testing.T) {
	svc, repo, rec := newTestService(t)

	seedMember(t, repo, "A015", "01833333333", "pass", models.RoleMember, models.PaymentWeekly, 500)
	seedMember(t, repo, "A016", "01844444444", "pass", models.RoleMember, models.PaymentMonthly, 500)
	inactive := seedMember(t, repo, "A017", "01855555555", "pass", models.RoleMember, models.PaymentMonthly, 500)
	inactive.Status = models.MemberInactive
	assert.NoError(t, repo.UpdateMember(context.Background(), inactive))

	now := time.Now().UTC()
	seedPayment(t, repo, "A015", 1000, 0, models.StatusPaid, now)
	seedPayment(t, repo, "A016", 500, 50, models.StatusLate, now)
	seedPayment(t, repo, "A016", 700, 0, models.StatusPending, now)

	report := svc.ReportSummary(context.Background())

	assert.Equal(t, 3, report.TotalMembers)
	assert.Equal(t, int64(1500), report.TotalCollection)
	assert.Equal(t, 1, report.PendingApprovals)

	// Balances cover active members only
	assert.Len(t, report.Balances, 2)
	balances := map[string]int64{}
	for _, b := range report.Balances {
		balances[b.MemberID] = b.Balance
	}
	assert.Equal(t, int64(1000), balances["A015"])
	assert.Equal(t, int64(500), balances["A016"])

	svc.SendReportSummary(context.Background())
	assert.Len(t, rec.reports, 1)
	assert.Equal(t, int64(1500), rec.reports[0].TotalCollection)
	assert.Equal(t, 1, rec.reports[0].PendingApprovals)
}
