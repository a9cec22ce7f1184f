package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/live_lessons/internal/model"
)

// RemarketingStep письмо, которое уходит через After после урока
type RemarketingStep struct {
	Type  model.EmailTemplateType
	After time.Duration
}

var RemarketingSteps = []RemarketingStep{
	{Type: model.EmailTemplateDay1, After: 24 * time.Hour},
	{Type: model.EmailTemplateDay3, After: 3 * 24 * time.Hour},
	{Type: model.EmailTemplateDay5, After: 5 * 24 * time.Hour},
	{Type: model.EmailTemplateDay7, After: 7 * 24 * time.Hour},
}

// RemarketingWindow записи старше шага на большее время пропускаются (например после простоя)
const RemarketingWindow = 24 * time.Hour

type DispatchStore interface {
	ListDue(ctx context.Context, templateType model.EmailTemplateType, from, to time.Time) ([]*model.Schedule, error)
	Claim(ctx context.Context, scheduleID uuid.UUID, templateType model.EmailTemplateType) (bool, error)
	Release(ctx context.Context, scheduleID uuid.UUID, templateType model.EmailTemplateType) error
}

// RemarketingService рассылает письма day1..day7 после урока
type RemarketingService struct {
	dispatches DispatchStore
	lessons    LessonStore
	notifier   Notifier
	baseURL    string
	loc        *time.Location
	logger     *zap.Logger
}

func NewRemarketingService(
	dispatches DispatchStore,
	lessons LessonStore,
	notifier Notifier,
	baseURL string,
	loc *time.Location,
	logger *zap.Logger,
) *RemarketingService {
	if loc == nil {
		loc = time.UTC
	}
	return &RemarketingService{
		dispatches: dispatches,
		lessons:    lessons,
		notifier:   notifier,
		baseURL:    baseURL,
		loc:        loc,
		logger:     logger,
	}
}

// DispatchDue отправляет все письма, срок которых наступил к now. Возвращает число отправленных.
func (s *RemarketingService) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	sent := 0
	for _, step := range RemarketingSteps {
		n, err := s.dispatchStep(ctx, step, now)
		sent += n
		if err != nil {
			return sent, err
		}
	}
	return sent, nil
}

func (s *RemarketingService) dispatchStep(ctx context.Context, step RemarketingStep, now time.Time) (int, error) {
	to := now.Add(-step.After)
	schedules, err := s.dispatches.ListDue(ctx, step.Type, to.Add(-RemarketingWindow), to)
	if err != nil {
		return 0, fmt.Errorf("list due %s: %w", step.Type, err)
	}

	sent := 0
	for _, schedule := range schedules {
		claimed, err := s.dispatches.Claim(ctx, schedule.ID, step.Type)
		if err != nil {
			return sent, err
		}
		if !claimed {
			continue
		}

		err = s.send(ctx, step.Type, schedule)
		if err == nil {
			sent++
			continue
		}

		if relErr := s.dispatches.Release(ctx, schedule.ID, step.Type); relErr != nil {
			s.logger.Error("Failed to release email dispatch", zap.Error(relErr))
		}
		if errors.Is(err, ErrTemplateNotFound) {
			// Шаблон не настроен, остальные записи этого шага пропускаем
			s.logger.Debug("Remarketing template not configured", zap.String("type", string(step.Type)))
			return sent, nil
		}
		s.logger.Error("Failed to send remarketing email",
			zap.String("type", string(step.Type)),
			zap.String("schedule_id", schedule.ID.String()),
			zap.Error(err),
		)
	}

	if sent > 0 {
		s.logger.Info("Remarketing emails sent", zap.String("type", string(step.Type)), zap.Int("count", sent))
	}
	return sent, nil
}

func (s *RemarketingService) send(ctx context.Context, templateType model.EmailTemplateType, schedule *model.Schedule) error {
	req := &SendRequest{
		Type:     templateType,
		UserID:   schedule.UserID,
		LessonID: schedule.LessonID,
		ExtraData: ExtraData{
			Hora:       schedule.ScheduledAt.In(s.loc).Format("15:04"),
			LessonLink: lessonLink(s.baseURL, schedule.LessonID),
		},
	}

	lesson, err := s.lessons.GetByID(ctx, schedule.LessonID)
	if err != nil {
		return fmt.Errorf("get lesson: %w", err)
	}
	if lesson != nil {
		req.ExtraData.LessonName = lesson.Title
	}

	return s.notifier.Send(ctx, req)
}
