package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/repository/base"
	"github.com/google/uuid"
)

type ProfileRepository struct {
	pool base.DB
}

func NewProfileRepository(pool base.DB) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// GetByID получает профиль по ID пользователя
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `
		SELECT id, full_name, email, phone, role
		FROM profiles
		WHERE id = $1
	`

	var profile model.Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Email,
		&profile.Phone,
		&profile.Role,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by id: %w", err)
	}

	return &profile, nil
}
