package service

import (
	"context"
	"testing"
	"time"

	"github.com/sanchaypro/sanchay-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSubmitPaymentLateMonth(t *testing.T) {
	svc, repo, rec := newTestService(t)
	setClock(svc, time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))

	member := seedMember(t, repo, "A002", "01711111111", "pass", models.RoleMember, models.PaymentWeekly, 500)
	method := &models.PaymentMethod{Name: "bKash", Number: "01900000000"}
	assert.NoError(t, repo.CreateMethod(context.Background(), method))

	payment, err := svc.SubmitPayment(context.Background(), member, models.SubmitPaymentRequest{
		Amount:        500,
		MethodID:      method.ID,
		SenderNumber:  "01711111111",
		TransactionID: "TX123",
	})
	assert.NoError(t, err)

	assert.Equal(t, models.StatusPending, payment.Status)
	assert.Equal(t, int64(500), payment.Amount)
	assert.Equal(t, int64(50), payment.FineAmount)
	assert.Equal(t, int64(550), payment.TotalPaid)
	assert.Equal(t, models.PaymentWeekly, payment.Type)
	assert.Equal(t, "bKash", payment.MethodName)
	assert.Equal(t, "TX123", payment.TransactionID)
	assert.Empty(t, payment.AdminID)

	// A payment-request notification carries the full submission
	assert.Len(t, rec.requested, 1)
	assert.Equal(t, int64(550), rec.requested[0].TotalPaid)
	assert.Empty(t, rec.verified)
}

func TestSubmitPaymentWithinGrace(t *testing.T) {
	svc, repo, rec := newTestService(t)
	setClock(svc, time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC))

	member := seedMember(t, repo, "A003", "01722222222", "pass", models.RoleMember, models.PaymentMonthly, 1000)

	payment, err := svc.SubmitPayment(context.Background(), member, models.SubmitPaymentRequest{
		Amount:        1000,
		MethodID:      "missing-method",
		SenderNumber:  "01722222222",
		TransactionID: "TX456",
	})
	assert.NoError(t, err)

	assert.Equal(t, models.StatusPending, payment.Status)
	assert.Equal(t, int64(0), payment.FineAmount)
	assert.Equal(t, int64(1000), payment.TotalPaid)
	// Unknown method falls back to the generic gateway label
	assert.Equal(t, "Gateway", payment.MethodName)
	assert.Len(t, rec.requested, 1)
}

func TestRecordPaymentPaid(t *testing.T) {
	svc, repo, rec := newTestService(t)
	setClock(svc, time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC))

	admin := seedMember(t, repo, "admin", "01000000000", "admin123", models.RoleMainAdmin, models.PaymentMonthly, 0)
	seedMember(t, repo, "A004", "01733333333", "pass", models.RoleMember, models.PaymentMonthly, 800)

	payment, err := svc.RecordPayment(context.Background(), admin.ID, models.RecordPaymentRequest{
		MemberID: "A004",
		Amount:   800,
		Remarks:  "cash at office",
	})
	assert.NoError(t, err)

	// No Pending state for admin entries
	assert.Equal(t, models.StatusPaid, payment.Status)
	assert.Equal(t, int64(0), payment.FineAmount)
	assert.Equal(t, int64(800), payment.TotalPaid)
	assert.Equal(t, admin.ID, payment.AdminID)
	assert.Len(t, rec.verified, 1)
	assert.Empty(t, rec.requested)
}

func TestRecordPaymentLate(t *testing.T) {
	svc, repo, _ := newTestService(t)
	setClock(svc, time.Date(2024, time.March, 11, 9, 0, 0, 0, time.UTC))

	admin := seedMember(t, repo, "admin", "01000000000", "admin123", models.RoleMainAdmin, models.PaymentMonthly, 0)
	seedMember(t, repo, "A005", "01744444444", "pass", models.RoleMember, models.PaymentWeekly, 500)

	payment, err := svc.RecordPayment(context.Background(), admin.ID, models.RecordPaymentRequest{
		MemberID: "A005",
		Amount:   500,
	})
	assert.NoError(t, err)

	assert.Equal(t, models.StatusLate, payment.Status)
	assert.Equal(t, int64(50), payment.FineAmount)
	assert.Equal(t, int64(550), payment.TotalPaid)
}

func TestRecordPaymentUnknownMember(t *testing.T) {
	svc, repo, _ := newTestService(t)
	admin := seedMember(t, repo, "admin", "01000000000", "admin123", models.RoleMainAdmin, models.PaymentMonthly, 0)

	_, err := svc.RecordPayment(context.Background(), admin.ID, models.RecordPaymentRequest{
		MemberID: "nobody",
		Amount:   100,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApprovePaymentUsesStoredFine(t *testing.T) {
	svc, repo, rec := newTestService(t)
	admin := seedMember(t, repo, "admin", "01000000000", "admin123", models.RoleMainAdmin, models.PaymentMonthly, 0)
	seedMember(t, repo, "A006", "01755555555", "pass", models.RoleMember, models.PaymentMonthly, 500)

	// Pending with no fine approves to Paid
	clean := seedPayment(t, repo, "A006", 500, 0, models.StatusPending, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	// Pending with a fine approves to Late even if approval happens early in a month
	setClock(svc, time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC))
	fined := seedPayment(t, repo, "A006", 500, 50, models.StatusPending, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))

	approved, err := svc.ApprovePayment(context.Background(), clean.ID, admin.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPaid, approved.Status)
	assert.Equal(t, admin.ID, approved.AdminID)
	// Nothing else changes on approval
	assert.Equal(t, clean.Amount, approved.Amount)
	assert.Equal(t, clean.FineAmount, approved.FineAmount)
	assert.Equal(t, clean.TotalPaid, approved.TotalPaid)
	assert.Equal(t, clean.TransactionID, approved.TransactionID)

	approved, err = svc.ApprovePayment(context.Background(), fined.ID, admin.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusLate, approved.Status)
	assert.Equal(t, admin.ID, approved.AdminID)

	assert.Len(t, rec.verified, 2)
}

func TestApprovePaymentNotFound(t *testing.T) {
	svc, repo, rec := newTestService(t)
	admin := seedMember(t, repo, "admin", "01000000000", "admin123", models.RoleMainAdmin, models.PaymentMonthly, 0)

	_, err := svc.ApprovePayment(context.Background(), "missing-id", admin.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, rec.verified)
}

func TestRejectPaymentDeletesRecord(t *testing.T) {
	svc, repo, rec := newTestService(t)
	seedMember(t, repo, "A007", "01766666666", "pass", models.RoleMember, models.PaymentMonthly, 500)
	payment := seedPayment(t, repo, "A007", 500, 50, models.StatusPending, time.Now().UTC())

	err := svc.RejectPayment(context.Background(), payment.ID)
	assert.NoError(t, err)

	// Rejection is deletion: the record ceases to exist
	payments := svc.ListPayments(context.Background(), "")
	assert.Empty(t, payments)

	// Rejection is silent
	assert.Empty(t, rec.verified)
	assert.Empty(t, rec.requested)

	// A second reject, and an approve of the deleted record, both miss
	assert.ErrorIs(t, svc.RejectPayment(context.Background(), payment.ID), ErrNotFound)
	_, err = svc.ApprovePayment(context.Background(), payment.ID, "any-admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPaymentsScopedToMember(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedPayment(t, repo, "A008", 100, 0, models.StatusPaid, time.Now().UTC())
	seedPayment(t, repo, "A009", 200, 0, models.StatusPaid, time.Now().UTC())
	seedPayment(t, repo, "A008", 300, 0, models.StatusPending, time.Now().UTC())

	all := svc.ListPayments(context.Background(), "")
	assert.Len(t, all, 3)

	own := svc.ListPayments(context.Background(), "A008")
	assert.Len(t, own, 2)
	for _, p := range own {
		assert.Equal(t, "A008", p.MemberID)
	}

	pending := svc.ListPendingPayments(context.Background())
	assert.Len(t, pending, 1)
	assert.Equal(t, int64(300), pending[0].Amount)
}
