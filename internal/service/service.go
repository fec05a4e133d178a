package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sanchaypro/sanchay-server/internal/models"
	"github.com/sanchaypro/sanchay-server/internal/notify"
	"github.com/sanchaypro/sanchay-server/internal/repository"
	"go.uber.org/zap"
)

// Sentinel errors surfaced to the API layer
var (
	// ErrNotFound means the operation targeted a missing record id
	ErrNotFound = errors.New("record not found")
	// ErrValidation means the request was rejected before any store call
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials is the uniform login failure; it never reveals
	// whether the identifier or the password was wrong
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service defines all the business logic operations
type Service interface {
	// Bootstrap and sessions
	Bootstrap(ctx context.Context) error
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	ChangePassword(ctx context.Context, memberID string, req models.ChangePasswordRequest) error

	// Members
	ListMembers(ctx context.Context) []models.Member
	GetMember(ctx context.Context, id string) (*models.Member, error)
	CreateMember(ctx context.Context, req models.CreateMemberRequest) (*models.Member, error)
	UpdateMember(ctx context.Context, id string, req models.UpdateMemberRequest) (*models.Member, error)
	DeleteMember(ctx context.Context, id string) error

	// Payment lifecycle
	SubmitPayment(ctx context.Context, member *models.Member, req models.SubmitPaymentRequest) (*models.Payment, error)
	RecordPayment(ctx context.Context, adminID string, req models.RecordPaymentRequest) (*models.Payment, error)
	ApprovePayment(ctx context.Context, paymentID, adminID string) (*models.Payment, error)
	RejectPayment(ctx context.Context, paymentID string) error
	ListPayments(ctx context.Context, memberID string) []models.Payment
	ListPendingPayments(ctx context.Context) []models.Payment

	// Balance views
	MemberSummary(ctx context.Context, memberID string) *models.MemberSummary
	DashboardSummary(ctx context.Context) *models.DashboardSummary
	ReportSummary(ctx context.Context) *models.ReportSummary
	SendReportSummary(ctx context.Context)

	// Payment methods
	ListMethods(ctx context.Context) []models.PaymentMethod
	CreateMethod(ctx context.Context, req models.CreateMethodRequest) (*models.PaymentMethod, error)
	UpdateMethod(ctx context.Context, id string, req models.CreateMethodRequest) (*models.PaymentMethod, error)
	DeleteMethod(ctx context.Context, id string) error

	// Notices
	ListNotices(ctx context.Context) []models.Notice
	CreateNotice(ctx context.Context, req models.CreateNoticeRequest) (*models.Notice, error)
	DeleteNotice(ctx context.Context, id string) error

	// Settings
	GetSettings(ctx context.Context) *models.AppSettings
	SaveSettings(ctx context.Context, req models.SaveSettingsRequest) (*models.AppSettings, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	notifier      notify.Notifier
	logger        *zap.Logger
	jwtSecret     []byte
	tokenDuration time.Duration
	now           func() time.Time

	// dispatch hands a notification off without blocking the transition.
	// Notifications are fire-and-forget: they run detached from the request
	// context and their failure never rolls back a state change.
	dispatch func(fn func(ctx context.Context))
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, notifier notify.Notifier, logger *zap.Logger, jwtSecret string) *DefaultService {
	return &DefaultService{
		repo:          repo,
		notifier:      notifier,
		logger:        logger,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
		now:           time.Now,
		dispatch: func(fn func(ctx context.Context)) {
			go fn(context.Background())
		},
	}
}

// generateJWT issues a signed session token for a member
func (s *DefaultService) generateJWT(member *models.Member) (string, error) {
	expirationTime := s.now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub":  member.ID, // subject: store record id
		"mid":  member.MemberID,
		"role": string(member.Role),
		"exp":  expirationTime.Unix(),
		"iat":  s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// findByMemberID scans the member collection for a human member id. Validity
// of the payment->member link is the engine's job, not the store's.
func (s *DefaultService) findByMemberID(ctx context.Context, memberID string) (*models.Member, error) {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range members {
		if members[i].MemberID == memberID {
			return &members[i], nil
		}
	}
	return nil, nil
}
