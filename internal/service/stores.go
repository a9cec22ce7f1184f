package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Freeeeeet/live_lessons/internal/model"
)

// Хранилища, с которыми работают сервисы. Реализации в internal/repository.

type LessonStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error)
	GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error)
}

type ScheduleStore interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetLatest(ctx context.Context, userID, lessonID uuid.UUID) (*model.Schedule, error)
}

type CourseStore interface {
	List(ctx context.Context) ([]*model.Course, error)
	ListPublished(ctx context.Context) ([]*model.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	SaveWithLessons(ctx context.Context, course *model.Course, lessons []*model.Lesson) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EmailTemplateStore interface {
	GetByType(ctx context.Context, templateType model.EmailTemplateType) (*model.EmailTemplate, error)
	Upsert(ctx context.Context, tmpl *model.EmailTemplate) error
}

type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// VideoResolver готовит источник видео для плеера
type VideoResolver interface {
	Playback(ctx context.Context, video model.VideoSource) (model.VideoSource, error)
}
