package service

import (
	"context"
	"fmt"

	"github.com/sanchaypro/sanchay-server/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Bootstrap admin defaults, created only when the member collection is empty
const (
	bootstrapMemberID = "admin"
	bootstrapPassword = "admin123"
)

// Bootstrap seeds the first administrator when the store is empty. It runs
// once at startup; the check-then-write is unguarded, matching the store's
// concurrency model.
func (s *DefaultService) Bootstrap(ctx context.Context) error {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("error listing members: %w", err)
	}

	if len(members) > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(bootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	admin := &models.Member{
		MemberID:    bootstrapMemberID,
		NameEn:      "Main Admin",
		NameBn:      "প্রধান অ্যাডমিন",
		Mobile:      "01000000000",
		Address:     "System",
		PaymentType: models.PaymentMonthly,
		FixedAmount: 0,
		Role:        models.RoleMainAdmin,
		Status:      models.MemberActive,
		Password:    string(hashedPassword),
	}

	if err := s.repo.CreateMember(ctx, admin); err != nil {
		return fmt.Errorf("error creating bootstrap admin: %w", err)
	}

	return nil
}

// Login grants a session when the identifier matches a member's id or mobile
// and the password matches. Failures are uniform: the caller never learns
// whether the identifier or the password was wrong.
func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing members: %w", err)
	}

	var member *models.Member
	for i := range members {
		if members[i].MemberID == req.Identifier || members[i].Mobile == req.Identifier {
			member = &members[i]
			break
		}
	}

	if member == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(member)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.LoginResponse{
		Status:    "success",
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
		Member:    member,
	}, nil
}

// ChangePassword replaces a member's credential after re-verifying the
// current one. Checks run in fixed order: current password, confirmation,
// minimum length.
func (s *DefaultService) ChangePassword(ctx context.Context, memberID string, req models.ChangePasswordRequest) error {
	member, err := s.repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return fmt.Errorf("error getting member: %w", err)
	}
	if member == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrValidation)
	}

	if req.NewPassword != req.ConfirmPassword {
		return fmt.Errorf("%w: new passwords do not match", ErrValidation)
	}

	if len(req.NewPassword) < 4 {
		return fmt.Errorf("%w: password must be at least 4 characters", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	member.Password = string(hashedPassword)
	if err := s.repo.UpdateMember(ctx, member); err != nil {
		return fmt.Errorf("error updating member: %w", err)
	}

	return nil
}
