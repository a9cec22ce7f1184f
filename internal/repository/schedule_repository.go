package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/repository/base"
	"github.com/google/uuid"
)

type ScheduleRepository struct {
	pool base.DB
}

func NewScheduleRepository(pool base.DB) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// Create создаёт запись на урок. Уникальность (user, lesson, время) не проверяется.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	query := `
		INSERT INTO schedules (user_id, lesson_id, scheduled_at, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		schedule.UserID,
		schedule.LessonID,
		schedule.ScheduledAt,
		schedule.Status,
	).Scan(&schedule.ID, &schedule.CreatedAt)

	if err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}

	return nil
}

// GetLatest получает самую позднюю по времени урока запись пользователя
func (r *ScheduleRepository) GetLatest(ctx context.Context, userID, lessonID uuid.UUID) (*model.Schedule, error) {
	query := `
		SELECT id, user_id, lesson_id, scheduled_at, status, created_at
		FROM schedules
		WHERE lesson_id = $1 AND user_id = $2
		ORDER BY scheduled_at DESC
		LIMIT 1
	`

	var schedule model.Schedule
	err := r.pool.QueryRow(ctx, query, lessonID, userID).Scan(
		&schedule.ID,
		&schedule.UserID,
		&schedule.LessonID,
		&schedule.ScheduledAt,
		&schedule.Status,
		&schedule.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest schedule: %w", err)
	}

	return &schedule, nil
}
