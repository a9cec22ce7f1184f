package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/notify"
)

// ExtraData необязательные значения для плейсхолдеров
type ExtraData struct {
	Hora       string `json:"hora,omitempty"`
	LessonLink string `json:"lessonLink,omitempty"`
	LessonName string `json:"lessonName,omitempty"`
}

// SendRequest запрос на отправку маркетингового письма
type SendRequest struct {
	Type      model.EmailTemplateType `json:"type" validate:"required"`
	UserID    uuid.UUID               `json:"userId" validate:"required"`
	LessonID  uuid.UUID               `json:"lessonId"`
	ExtraData ExtraData               `json:"extraData"`
}

// MarketingService шаблоны писем и их отправка
type MarketingService struct {
	templates EmailTemplateStore
	profiles  ProfileStore
	sender    notify.Sender
	logger    *zap.Logger
}

func NewMarketingService(
	templates EmailTemplateStore,
	profiles ProfileStore,
	sender notify.Sender,
	logger *zap.Logger,
) *MarketingService {
	return &MarketingService{
		templates: templates,
		profiles:  profiles,
		sender:    sender,
		logger:    logger,
	}
}

// Kinds типы шаблонов с подписями для админки
func (s *MarketingService) Kinds() []model.EmailTemplateKind {
	return model.EmailTemplateKinds
}

// GetTemplate возвращает шаблон. Если он ещё не создан, возвращается пустой.
func (s *MarketingService) GetTemplate(ctx context.Context, templateType model.EmailTemplateType) (*model.EmailTemplate, error) {
	if !templateType.IsKnown() {
		return nil, unknownTemplateError(templateType)
	}

	tmpl, err := s.templates.GetByType(ctx, templateType)
	if err != nil {
		return nil, fmt.Errorf("get email template: %w", err)
	}
	if tmpl == nil {
		return &model.EmailTemplate{Type: templateType}, nil
	}
	return tmpl, nil
}

// SaveTemplate создаёт или обновляет шаблон по типу
func (s *MarketingService) SaveTemplate(ctx context.Context, tmpl *model.EmailTemplate) error {
	if !tmpl.Type.IsKnown() {
		return unknownTemplateError(tmpl.Type)
	}

	if err := s.templates.Upsert(ctx, tmpl); err != nil {
		return fmt.Errorf("save email template: %w", err)
	}

	s.logger.Info("Email template saved", zap.String("type", string(tmpl.Type)))
	return nil
}

// Send подставляет данные пользователя в шаблон и отправляет письмо.
// {{name}} заменяется всегда, остальные плейсхолдеры только если значение передано.
func (s *MarketingService) Send(ctx context.Context, req *SendRequest) error {
	tmpl, err := s.templates.GetByType(ctx, req.Type)
	if err != nil {
		return fmt.Errorf("get email template: %w", err)
	}
	if tmpl == nil {
		return ErrTemplateNotFound
	}

	profile, err := s.profiles.GetByID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return ErrUserNotFound
	}

	values := map[string]string{
		notify.PlaceholderName:       profile.FullName,
		notify.PlaceholderTime:       req.ExtraData.Hora,
		notify.PlaceholderLessonLink: req.ExtraData.LessonLink,
		notify.PlaceholderLessonName: req.ExtraData.LessonName,
	}

	msg := &notify.Message{
		To:      mail.Address{Name: profile.FullName, Address: profile.Email},
		Subject: notify.Render(tmpl.Subject, values),
		Text:    notify.Render(tmpl.Body, values),
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s email: %w", req.Type, err)
	}

	s.logger.Info("Marketing email sent",
		zap.String("type", string(req.Type)),
		zap.String("user_id", req.UserID.String()),
		zap.String("lesson_id", req.LessonID.String()),
	)
	return nil
}

func unknownTemplateError(t model.EmailTemplateType) *ValidationError {
	verr := newValidationError("invalid template type")
	kinds := make([]string, 0, len(model.EmailTemplateKinds))
	for _, k := range model.EmailTemplateKinds {
		kinds = append(kinds, string(k.Type))
	}
	verr.add("type", fmt.Sprintf("%q is not one of %s", t, strings.Join(kinds, ", ")))
	return verr
}
