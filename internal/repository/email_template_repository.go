package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/repository/base"
)

type EmailTemplateRepository struct {
	pool base.DB
}

func NewEmailTemplateRepository(pool base.DB) *EmailTemplateRepository {
	return &EmailTemplateRepository{pool: pool}
}

// GetByType получает шаблон письма по типу
func (r *EmailTemplateRepository) GetByType(ctx context.Context, templateType model.EmailTemplateType) (*model.EmailTemplate, error) {
	query := `
		SELECT type, subject, body, updated_at
		FROM email_templates
		WHERE type = $1
	`

	var tmpl model.EmailTemplate
	err := r.pool.QueryRow(ctx, query, templateType).Scan(
		&tmpl.Type,
		&tmpl.Subject,
		&tmpl.Body,
		&tmpl.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get email template: %w", err)
	}

	return &tmpl, nil
}

// Upsert создаёт или обновляет шаблон (конфликт по type)
func (r *EmailTemplateRepository) Upsert(ctx context.Context, tmpl *model.EmailTemplate) error {
	query := `
		INSERT INTO email_templates (type, subject, body, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (type) DO UPDATE
		SET subject = EXCLUDED.subject,
		    body = EXCLUDED.body,
		    updated_at = NOW()
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, tmpl.Type, tmpl.Subject, tmpl.Body).Scan(&tmpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert email template: %w", err)
	}

	return nil
}
