package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/repository/base"
)

// EmailDispatchRepository учёт отправленных писем ремаркетинга
type EmailDispatchRepository struct {
	pool base.DB
}

func NewEmailDispatchRepository(pool base.DB) *EmailDispatchRepository {
	return &EmailDispatchRepository{pool: pool}
}

// ListDue самые поздние записи каждой пары (user, lesson), если их урок попал в интервал (from, to]
// и письмо этого типа по ним ещё не отправлялось. Более ранние записи пары не рассматриваются.
func (r *EmailDispatchRepository) ListDue(ctx context.Context, templateType model.EmailTemplateType, from, to time.Time) ([]*model.Schedule, error) {
	query := `
		SELECT s.id, s.user_id, s.lesson_id, s.scheduled_at, s.status, s.created_at
		FROM (
			SELECT DISTINCT ON (user_id, lesson_id)
				id, user_id, lesson_id, scheduled_at, status, created_at
			FROM schedules
			WHERE scheduled_at <= $2
			ORDER BY user_id, lesson_id, scheduled_at DESC
		) s
		WHERE s.scheduled_at > $1
			AND NOT EXISTS (
				SELECT 1 FROM email_dispatches d
				WHERE d.schedule_id = s.id AND d.type = $3
			)
		ORDER BY s.scheduled_at
	`

	rows, err := r.pool.Query(ctx, query, from, to, templateType)
	if err != nil {
		return nil, fmt.Errorf("query due schedules: %w", err)
	}
	defer rows.Close()

	schedules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.Schedule, error) {
		var s model.Schedule
		err := row.Scan(&s.ID, &s.UserID, &s.LessonID, &s.ScheduledAt, &s.Status, &s.CreatedAt)
		return &s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan due schedules: %w", err)
	}

	return schedules, nil
}

// Claim помечает письмо как отправленное. false, если его уже забрал другой процесс.
func (r *EmailDispatchRepository) Claim(ctx context.Context, scheduleID uuid.UUID, templateType model.EmailTemplateType) (bool, error) {
	affected, err := base.ExecAffected(ctx, r.pool, `
		INSERT INTO email_dispatches (schedule_id, type)
		VALUES ($1, $2)
		ON CONFLICT (schedule_id, type) DO NOTHING
	`, scheduleID, templateType)
	if err != nil {
		return false, fmt.Errorf("claim email dispatch: %w", err)
	}
	return affected == 1, nil
}

// Release снимает отметку, если отправка не удалась
func (r *EmailDispatchRepository) Release(ctx context.Context, scheduleID uuid.UUID, templateType model.EmailTemplateType) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM email_dispatches WHERE schedule_id = $1 AND type = $2`, scheduleID, templateType)
	if err != nil {
		return fmt.Errorf("release email dispatch: %w", err)
	}
	return nil
}
