package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sanchaypro/sanchay-server/internal/models"
	"github.com/sanchaypro/sanchay-server/internal/notify"
	"github.com/sanchaypro/sanchay-server/internal/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// recordingNotifier captures dispatched notifications for assertions
type recordingNotifier struct {
	mu         sync.Mutex
	newMembers []models.Member
	requested  []models.Payment
	verified   []models.Payment
	reports    []notify.ReportStats
}

func (n *recordingNotifier) NotifyNewMember(ctx context.Context, member *models.Member) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.newMembers = append(n.newMembers, *member)
}

func (n *recordingNotifier) NotifyPaymentRequest(ctx context.Context, payment *models.Payment, member *models.Member) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requested = append(n.requested, *payment)
}

func (n *recordingNotifier) NotifyPaymentVerified(ctx context.Context, payment *models.Payment, member *models.Member) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.verified = append(n.verified, *payment)
}

func (n *recordingNotifier) NotifyReportSummary(ctx context.Context, stats notify.ReportStats) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reports = append(n.reports, stats)
}

// newTestService wires the engine over an in-memory store with synchronous
// notification dispatch so tests can assert on side effects deterministically
func newTestService(t *testing.T) (*DefaultService, *repository.MemoryRepository, *recordingNotifier) {
	t.Helper()

	repo := repository.NewMemoryRepository()
	rec := &recordingNotifier{}
	svc := NewDefaultService(repo, rec, zap.NewNop(), "test-secret-key")
	svc.dispatch = func(fn func(ctx context.Context)) {
		fn(context.Background())
	}
	return svc, repo, rec
}

// setClock pins the service clock to a fixed instant
func setClock(svc *DefaultService, at time.Time) {
	svc.now = func() time.Time { return at }
}

// seedMember inserts a member directly into the store with a hashed password
func seedMember(t *testing.T, repo repository.Repository, memberID, mobile, password string, role models.Role, plan models.PaymentType, fixedAmount int64) *models.Member {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	member := &models.Member{
		MemberID:    memberID,
		NameEn:      "Test Member " + memberID,
		NameBn:      "সদস্য " + memberID,
		Mobile:      mobile,
		Address:     "Test Address",
		PaymentType: plan,
		FixedAmount: fixedAmount,
		Role:        role,
		Status:      models.MemberActive,
		Password:    string(hashed),
	}

	err = repo.CreateMember(context.Background(), member)
	assert.NoError(t, err)
	return member
}

// seedPayment inserts a payment directly into the store
func seedPayment(t *testing.T, repo repository.Repository, memberID string, amount, fine int64, status models.PaymentStatus, date time.Time) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		MemberID:   memberID,
		Amount:     amount,
		FineAmount: fine,
		TotalPaid:  amount + fine,
		Date:       date,
		Status:     status,
		Type:       models.PaymentMonthly,
	}

	err := repo.CreatePayment(context.Background(), payment)
	assert.NoError(t, err)
	return payment
}
