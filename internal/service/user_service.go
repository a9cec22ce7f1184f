package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/live_lessons/internal/model"
)

// UserService чтение профилей пользователей
type UserService struct {
	profiles ProfileStore
	logger   *zap.Logger
}

func NewUserService(profiles ProfileStore, logger *zap.Logger) *UserService {
	return &UserService{
		profiles: profiles,
		logger:   logger,
	}
}

// GetProfile возвращает профиль или ErrUserNotFound
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return profile, nil
}

// IsAdmin проверяет роль admin в профиле пользователя
func (s *UserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile.IsAdmin(), nil
}
