package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/scheduling"
)

// LessonAccess состояние доступа к уроку для клиента.
// Video заполняется только когда урок идёт.
type LessonAccess struct {
	scheduling.Access
	ScheduledTime string             `json:"scheduled_time,omitempty"`
	Video         *model.VideoSource `json:"video,omitempty"`
}

type AccessService struct {
	lessons   LessonStore
	schedules ScheduleStore
	videos    VideoResolver
	clock     scheduling.Clock
	interval  time.Duration
	loc       *time.Location
	logger    *zap.Logger
}

func NewAccessService(
	lessons LessonStore,
	schedules ScheduleStore,
	videos VideoResolver,
	clock scheduling.Clock,
	interval time.Duration,
	loc *time.Location,
	logger *zap.Logger,
) *AccessService {
	if loc == nil {
		loc = time.UTC
	}
	return &AccessService{
		lessons:   lessons,
		schedules: schedules,
		videos:    videos,
		clock:     clock,
		interval:  interval,
		loc:       loc,
		logger:    logger,
	}
}

// GetLesson урок с курсом (для страницы просмотра)
func (s *AccessService) GetLesson(ctx context.Context, lessonID uuid.UUID) (*model.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}
	return lesson, nil
}

// Access вычисляет доступ пользователя к уроку на текущий момент
func (s *AccessService) Access(ctx context.Context, userID, lessonID uuid.UUID) (*LessonAccess, error) {
	lesson, err := s.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.schedules.GetLatest(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("get latest schedule: %w", err)
	}

	return s.present(ctx, lesson, scheduling.Evaluate(schedule, s.clock.Now()))
}

// Watch отдаёт изменения доступа, пока не отменён ctx.
// Запись загружается асинхронно, до её получения состояние unscheduled.
func (s *AccessService) Watch(ctx context.Context, userID, lessonID uuid.UUID) (<-chan *LessonAccess, error) {
	lesson, err := s.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	watcher := scheduling.NewWatcher(s.clock, s.interval, s.logger)
	updates, unsubscribe := watcher.Subscribe()
	watcher.Start(ctx)

	go func() {
		schedule, err := s.schedules.GetLatest(ctx, userID, lessonID)
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Error("Failed to load schedule for access stream",
					zap.String("lesson_id", lessonID.String()),
					zap.Error(err),
				)
			}
			return
		}
		if !watcher.SetSchedule(schedule) {
			s.logger.Debug("Schedule arrived after stream closed", zap.String("lesson_id", lessonID.String()))
		}
	}()

	out := make(chan *LessonAccess, 1)
	go func() {
		defer close(out)
		defer unsubscribe()
		defer watcher.Stop()

		for access := range updates {
			la, err := s.present(ctx, lesson, access)
			if err != nil {
				// Состояние повторится на следующем тике и видео запросится снова
				s.logger.Error("Failed to prepare lesson access", zap.Error(err))
				watcher.Rearm()
				continue
			}
			select {
			case out <- la:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (s *AccessService) present(ctx context.Context, lesson *model.Lesson, access scheduling.Access) (*LessonAccess, error) {
	la := &LessonAccess{Access: access}
	if access.ScheduledAt != nil {
		la.ScheduledTime = access.ScheduledAt.In(s.loc).Format("15:04")
	}

	if !access.CanWatch() {
		return la, nil
	}

	video, err := s.videos.Playback(ctx, lesson.Video)
	if err != nil {
		return nil, fmt.Errorf("resolve video: %w", err)
	}
	la.Video = &video
	return la, nil
}
