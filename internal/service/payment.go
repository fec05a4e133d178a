package service

import (
	"context"
	"fmt"

	"github.com/sanchaypro/sanchay-server/internal/models"
	"go.uber.org/zap"
)

// SubmitPayment records a member's own payment submission. The payment enters
// the Pending state with the fine captured at submission time; an admin later
// approves or rejects it.
func (s *DefaultService) SubmitPayment(ctx context.Context, member *models.Member, req models.SubmitPaymentRequest) (*models.Payment, error) {
	methodName := "Gateway"
	method, err := s.repo.GetMethod(ctx, req.MethodID)
	if err != nil {
		return nil, fmt.Errorf("error getting payment method: %w", err)
	}
	if method != nil {
		methodName = method.Name
	}

	now := s.now()
	fine := ComputeFine(now)

	payment := &models.Payment{
		MemberID:      member.MemberID,
		Amount:        req.Amount,
		FineAmount:    fine,
		TotalPaid:     req.Amount + fine,
		Date:          now.UTC(),
		Status:        models.StatusPending,
		Type:          member.PaymentType,
		TransactionID: req.TransactionID,
		SenderNumber:  req.SenderNumber,
		MethodName:    methodName,
		Remarks:       fmt.Sprintf("Submitted by member via %s", methodName),
	}

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("error creating payment: %w", err)
	}

	s.dispatch(func(ctx context.Context) {
		s.notifier.NotifyPaymentRequest(ctx, payment, member)
	})

	return payment, nil
}

// RecordPayment is a direct admin entry. No Pending state is entered: the
// payment is Late when a fine applies at entry time, otherwise Paid.
func (s *DefaultService) RecordPayment(ctx context.Context, adminID string, req models.RecordPaymentRequest) (*models.Payment, error) {
	member, err := s.findByMemberID(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("error getting member: %w", err)
	}
	if member == nil {
		return nil, ErrNotFound
	}

	now := s.now()
	fine := ComputeFine(now)

	status := models.StatusPaid
	if fine > 0 {
		status = models.StatusLate
	}

	payment := &models.Payment{
		MemberID:   member.MemberID,
		Amount:     req.Amount,
		FineAmount: fine,
		TotalPaid:  req.Amount + fine,
		Date:       now.UTC(),
		Status:     status,
		Type:       member.PaymentType,
		AdminID:    adminID,
		Remarks:    req.Remarks,
	}

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("error creating payment: %w", err)
	}

	memberCopy := *member
	s.dispatch(func(ctx context.Context) {
		s.notifier.NotifyPaymentVerified(ctx, payment, &memberCopy)
	})

	return payment, nil
}

// ApprovePayment verifies a pending payment. The stored fine decides the
// terminal status; the approving admin is recorded on the payment.
func (s *DefaultService) ApprovePayment(ctx context.Context, paymentID, adminID string) (*models.Payment, error) {
	payment, err := s.repo.ApprovePayment(ctx, paymentID, adminID)
	if err != nil {
		return nil, fmt.Errorf("error approving payment: %w", err)
	}
	if payment == nil {
		return nil, ErrNotFound
	}

	member, err := s.findByMemberID(ctx, payment.MemberID)
	if err != nil {
		s.logger.Warn("approve: failed to resolve member for notification",
			zap.String("memberId", payment.MemberID), zap.Error(err))
		member = nil
	}

	s.dispatch(func(ctx context.Context) {
		s.notifier.NotifyPaymentVerified(ctx, payment, member)
	})

	return payment, nil
}

// RejectPayment deletes a pending payment. No record of the rejection is
// kept, and no notification is sent.
func (s *DefaultService) RejectPayment(ctx context.Context, paymentID string) error {
	payment, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("error getting payment: %w", err)
	}
	if payment == nil {
		return ErrNotFound
	}

	if err := s.repo.RejectPayment(ctx, paymentID); err != nil {
		return fmt.Errorf("error rejecting payment: %w", err)
	}

	return nil
}

// ListPayments returns the full history, or a single member's slice of it
// when memberID is non-empty. Read failures degrade to an empty list.
func (s *DefaultService) ListPayments(ctx context.Context, memberID string) []models.Payment {
	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		s.logger.Warn("failed to list payments", zap.Error(err))
		return []models.Payment{}
	}

	if memberID == "" {
		return payments
	}

	own := make([]models.Payment, 0)
	for _, p := range payments {
		if p.MemberID == memberID {
			own = append(own, p)
		}
	}
	return own
}

// ListPendingPayments returns all payments awaiting verification
func (s *DefaultService) ListPendingPayments(ctx context.Context) []models.Payment {
	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		s.logger.Warn("failed to list payments", zap.Error(err))
		return []models.Payment{}
	}

	pending := make([]models.Payment, 0)
	for _, p := range payments {
		if p.Status == models.StatusPending {
			pending = append(pending, p)
		}
	}
	return pending
}
