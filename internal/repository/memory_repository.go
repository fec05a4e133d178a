package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sanchaypro/sanchay-server/internal/models"
)

// MemoryRepository is an in-memory Repository used by the test suites. It
// keeps the same insertion-order semantics as the Postgres implementation.
type MemoryRepository struct {
	mu       sync.Mutex
	members  []models.Member
	payments []models.Payment
	methods  []models.PaymentMethod
	notices  []models.Notice
	settings *models.AppSettings
	nextSeq  int64
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Member repository methods
func (r *MemoryRepository) ListMembers(ctx context.Context) ([]models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Member, len(r.members))
	copy(out, r.members)
	return out, nil
}

func (r *MemoryRepository) GetMemberByID(ctx context.Context, id string) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.members {
		if r.members[i].ID == id {
			member := r.members[i]
			return &member, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) CreateMember(ctx context.Context, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.JoinedDate.IsZero() {
		member.JoinedDate = time.Now().UTC()
	}

	r.members = append(r.members, *member)
	return nil
}

func (r *MemoryRepository) UpdateMember(ctx context.Context, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.members {
		if r.members[i].ID == member.ID {
			r.members[i] = *member
			return nil
		}
	}
	return nil
}

func (r *MemoryRepository) DeleteMember(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.members {
		if r.members[i].ID == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return nil
}

// Payment repository methods
func (r *MemoryRepository) ListPayments(ctx context.Context) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Payment, len(r.payments))
	copy(out, r.payments)
	return out, nil
}

func (r *MemoryRepository) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.payments {
		if r.payments[i].ID == id {
			payment := r.payments[i]
			return &payment, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now().UTC()
	}

	r.nextSeq++
	payment.Seq = r.nextSeq
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *MemoryRepository) ApprovePayment(ctx context.Context, id, adminID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.payments {
		if r.payments[i].ID == id {
			status := models.StatusPaid
			if r.payments[i].FineAmount > 0 {
				status = models.StatusLate
			}
			r.payments[i].Status = status
			r.payments[i].AdminID = adminID
			payment := r.payments[i]
			return &payment, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) RejectPayment(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.payments {
		if r.payments[i].ID == id {
			r.payments = append(r.payments[:i], r.payments[i+1:]...)
			return nil
		}
	}
	return nil
}

// Payment method repository methods
func (r *MemoryRepository) ListMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.PaymentMethod, len(r.methods))
	copy(out, r.methods)
	return out, nil
}

func (r *MemoryRepository) GetMethod(ctx context.Context, id string) (*models.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.methods {
		if r.methods[i].ID == id {
			method := r.methods[i]
			return &method, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) CreateMethod(ctx context.Context, method *models.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if method.ID == "" {
		method.ID = uuid.New().String()
	}
	r.methods = append(r.methods, *method)
	return nil
}

func (r *MemoryRepository) UpdateMethod(ctx context.Context, method *models.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.methods {
		if r.methods[i].ID == method.ID {
			r.methods[i] = *method
			return nil
		}
	}
	return nil
}

func (r *MemoryRepository) DeleteMethod(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.methods {
		if r.methods[i].ID == id {
			r.methods = append(r.methods[:i], r.methods[i+1:]...)
			return nil
		}
	}
	return nil
}

// Notice repository methods
func (r *MemoryRepository) ListNotices(ctx context.Context) ([]models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Newest first, matching the Postgres ordering
	out := make([]models.Notice, 0, len(r.notices))
	for i := len(r.notices) - 1; i >= 0; i-- {
		out = append(out, r.notices[i])
	}
	return out, nil
}

func (r *MemoryRepository) CreateNotice(ctx context.Context, notice *models.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notice.ID == "" {
		notice.ID = uuid.New().String()
	}
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = time.Now().UTC()
	}
	r.notices = append(r.notices, *notice)
	return nil
}

func (r *MemoryRepository) DeleteNotice(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notices {
		if r.notices[i].ID == id {
			r.notices = append(r.notices[:i], r.notices[i+1:]...)
			return nil
		}
	}
	return nil
}

// Settings repository methods
func (r *MemoryRepository) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.settings == nil {
		return models.DefaultSettings(), nil
	}
	settings := *r.settings
	return &settings, nil
}

func (r *MemoryRepository) SaveSettings(ctx context.Context, settings *models.AppSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := *settings
	r.settings = &s
	return nil
}
