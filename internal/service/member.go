package service

import (
	"context"
	"fmt"

	"github.com/sanchaypro/sanchay-server/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ListMembers returns all members. Read failures degrade to an empty list so
// the caller stays usable.
func (s *DefaultService) ListMembers(ctx context.Context) []models.Member {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		s.logger.Warn("failed to list members", zap.Error(err))
		return []models.Member{}
	}
	return members
}

// GetMember returns one member by store record id
func (s *DefaultService) GetMember(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting member: %w", err)
	}
	if member == nil {
		return nil, ErrNotFound
	}
	return member, nil
}

// CreateMember registers a new member. The human member id must be unique
// across the society.
func (s *DefaultService) CreateMember(ctx context.Context, req models.CreateMemberRequest) (*models.Member, error) {
	existing, err := s.findByMemberID(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("error checking member existence: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: member id already in use", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	member := &models.Member{
		MemberID:    req.MemberID,
		NameEn:      req.NameEn,
		NameBn:      req.NameBn,
		Mobile:      req.Mobile,
		Address:     req.Address,
		NidURL:      req.NidURL,
		PhotoURL:    req.PhotoURL,
		PaymentType: req.PaymentType,
		FixedAmount: req.FixedAmount,
		Role:        req.Role,
		Status:      models.MemberActive,
		Password:    string(hashedPassword),
	}

	if err := s.repo.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("error creating member: %w", err)
	}

	s.dispatch(func(ctx context.Context) {
		s.notifier.NotifyNewMember(ctx, member)
	})

	return member, nil
}

// UpdateMember applies a partial update to an existing member
func (s *DefaultService) UpdateMember(ctx context.Context, id string, req models.UpdateMemberRequest) (*models.Member, error) {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting member: %w", err)
	}
	if member == nil {
		return nil, ErrNotFound
	}

	if req.NameEn != "" {
		member.NameEn = req.NameEn
	}
	if req.NameBn != "" {
		member.NameBn = req.NameBn
	}
	if req.Mobile != "" {
		member.Mobile = req.Mobile
	}
	if req.Address != "" {
		member.Address = req.Address
	}
	if req.NidURL != "" {
		member.NidURL = req.NidURL
	}
	if req.PhotoURL != "" {
		member.PhotoURL = req.PhotoURL
	}
	if req.PaymentType != "" {
		member.PaymentType = req.PaymentType
	}
	if req.FixedAmount != nil {
		member.FixedAmount = *req.FixedAmount
	}
	if req.Role != "" {
		member.Role = req.Role
	}
	if req.Status != "" {
		member.Status = req.Status
	}

	if err := s.repo.UpdateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("error updating member: %w", err)
	}

	return member, nil
}

// DeleteMember removes a member record. Their payment history is kept.
func (s *DefaultService) DeleteMember(ctx context.Context, id string) error {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting member: %w", err)
	}
	if member == nil {
		return ErrNotFound
	}

	if err := s.repo.DeleteMember(ctx, id); err != nil {
		return fmt.Errorf("error deleting member: %w", err)
	}

	return nil
}
