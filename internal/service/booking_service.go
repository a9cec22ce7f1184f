package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/live_lessons/internal/events"
	"github.com/Freeeeeet/live_lessons/internal/model"
)

// NotificationTimeout ограничение на фоновую отправку письма о записи
const NotificationTimeout = 30 * time.Second

// Notifier отправляет письмо по шаблону (MarketingService)
type Notifier interface {
	Send(ctx context.Context, req *SendRequest) error
}

type BookingService struct {
	lessons   LessonStore
	schedules ScheduleStore
	notifier  Notifier
	publisher events.Publisher
	baseURL   string
	loc       *time.Location
	logger    *zap.Logger

	wg sync.WaitGroup
}

func NewBookingService(
	lessons LessonStore,
	schedules ScheduleStore,
	notifier Notifier,
	publisher events.Publisher,
	baseURL string,
	loc *time.Location,
	logger *zap.Logger,
) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingService{
		lessons:   lessons,
		schedules: schedules,
		notifier:  notifier,
		publisher: publisher,
		baseURL:   baseURL,
		loc:       loc,
		logger:    logger,
	}
}

// BookLesson записывает пользователя на урок в выбранный слот.
// Без урока или слота ничего не делает и возвращает (nil, nil).
// Ошибка записи возвращается как *StorageError, письмо в этом случае не отправляется.
func (s *BookingService) BookLesson(ctx context.Context, userID, lessonID uuid.UUID, slot time.Time) (*model.Schedule, error) {
	if lessonID == uuid.Nil || slot.IsZero() {
		return nil, nil
	}

	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	schedule := &model.Schedule{
		UserID:      userID,
		LessonID:    lesson.ID,
		ScheduledAt: slot.UTC(),
		Status:      model.ScheduleStatusScheduled,
	}

	if err := s.schedules.Create(ctx, schedule); err != nil {
		s.logger.Error("Failed to create schedule",
			zap.String("user_id", userID.String()),
			zap.String("lesson_id", lessonID.String()),
			zap.Error(err),
		)
		return nil, &StorageError{Err: err}
	}

	s.logger.Info("Lesson scheduled",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("lesson_id", lessonID.String()),
		zap.Time("scheduled_at", schedule.ScheduledAt),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.afterBooking(schedule, lesson)
	}()

	return schedule, nil
}

// Wait ждёт завершения фоновых уведомлений (при остановке сервиса)
func (s *BookingService) Wait() {
	s.wg.Wait()
}

// afterBooking письмо-подтверждение и событие. Ошибки только логируются.
func (s *BookingService) afterBooking(schedule *model.Schedule, lesson *model.Lesson) {
	ctx, cancel := context.WithTimeout(context.Background(), NotificationTimeout)
	defer cancel()

	req := &SendRequest{
		Type:     model.EmailTemplateScheduled,
		UserID:   schedule.UserID,
		LessonID: lesson.ID,
		ExtraData: ExtraData{
			Hora:       schedule.ScheduledAt.In(s.loc).Format("15:04"),
			LessonLink: s.LessonLink(lesson.ID),
			LessonName: lesson.Title,
		},
	}
	if err := s.notifier.Send(ctx, req); err != nil {
		s.logger.Error("Failed to send booking confirmation",
			zap.String("schedule_id", schedule.ID.String()),
			zap.Error(err),
		)
	}

	event := events.ScheduleCreated{
		ScheduleID:  schedule.ID,
		UserID:      schedule.UserID,
		LessonID:    lesson.ID,
		LessonTitle: lesson.Title,
		ScheduledAt: schedule.ScheduledAt,
	}
	if lesson.Course != nil {
		event.CourseTitle = lesson.Course.Title
	}
	if err := s.publisher.Publish(ctx, events.TopicScheduleCreated, event); err != nil {
		s.logger.Warn("Failed to publish schedule event",
			zap.String("schedule_id", schedule.ID.String()),
			zap.Error(err),
		)
	}
}

// LessonLink ссылка на страницу просмотра урока
func (s *BookingService) LessonLink(lessonID uuid.UUID) string {
	return lessonLink(s.baseURL, lessonID)
}

func lessonLink(baseURL string, lessonID uuid.UUID) string {
	return baseURL + "/dashboard/lesson/" + lessonID.String()
}
