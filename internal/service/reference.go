package service

import (
	"context"
	"fmt"

	"github.com/sanchaypro/sanchay-server/internal/models"
	"go.uber.org/zap"
)

// Payment methods and notices are plain reference data: admins maintain them,
// members only read them.

func (s *DefaultService) ListMethods(ctx context.Context) []models.PaymentMethod {
	methods, err := s.repo.ListMethods(ctx)
	if err != nil {
		s.logger.Warn("failed to list payment methods", zap.Error(err))
		return []models.PaymentMethod{}
	}
	return methods
}

func (s *DefaultService) CreateMethod(ctx context.Context, req models.CreateMethodRequest) (*models.PaymentMethod, error) {
	method := &models.PaymentMethod{
		Name:         req.Name,
		Number:       req.Number,
		Instructions: req.Instructions,
	}

	if err := s.repo.CreateMethod(ctx, method); err != nil {
		return nil, fmt.Errorf("error creating payment method: %w", err)
	}

	return method, nil
}

func (s *DefaultService) UpdateMethod(ctx context.Context, id string, req models.CreateMethodRequest) (*models.PaymentMethod, error) {
	method, err := s.repo.GetMethod(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting payment method: %w", err)
	}
	if method == nil {
		return nil, ErrNotFound
	}

	method.Name = req.Name
	method.Number = req.Number
	method.Instructions = req.Instructions

	if err := s.repo.UpdateMethod(ctx, method); err != nil {
		return nil, fmt.Errorf("error updating payment method: %w", err)
	}

	return method, nil
}

func (s *DefaultService) DeleteMethod(ctx context.Context, id string) error {
	method, err := s.repo.GetMethod(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting payment method: %w", err)
	}
	if method == nil {
		return ErrNotFound
	}

	if err := s.repo.DeleteMethod(ctx, id); err != nil {
		return fmt.Errorf("error deleting payment method: %w", err)
	}

	return nil
}

func (s *DefaultService) ListNotices(ctx context.Context) []models.Notice {
	notices, err := s.repo.ListNotices(ctx)
	if err != nil {
		s.logger.Warn("failed to list notices", zap.Error(err))
		return []models.Notice{}
	}
	return notices
}

func (s *DefaultService) CreateNotice(ctx context.Context, req models.CreateNoticeRequest) (*models.Notice, error) {
	notice := &models.Notice{
		Title:    req.Title,
		Content:  req.Content,
		PhotoURL: req.PhotoURL,
	}

	if err := s.repo.CreateNotice(ctx, notice); err != nil {
		return nil, fmt.Errorf("error creating notice: %w", err)
	}

	return notice, nil
}

func (s *DefaultService) DeleteNotice(ctx context.Context, id string) error {
	if err := s.repo.DeleteNotice(ctx, id); err != nil {
		return fmt.Errorf("error deleting notice: %w", err)
	}
	return nil
}

// GetSettings returns the app settings, falling back to the hard-coded
// default when the store is unavailable
func (s *DefaultService) GetSettings(ctx context.Context) *models.AppSettings {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		s.logger.Warn("failed to load settings", zap.Error(err))
		return models.DefaultSettings()
	}
	return settings
}

func (s *DefaultService) SaveSettings(ctx context.Context, req models.SaveSettingsRequest) (*models.AppSettings, error) {
	settings := &models.AppSettings{
		AppName:             req.AppName,
		LogoURL:             req.LogoURL,
		EnableNotifications: req.EnableNotifications,
		TelegramBotToken:    req.TelegramBotToken,
		TelegramChatID:      req.TelegramChatID,
	}

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("error saving settings: %w", err)
	}

	return settings, nil
}
