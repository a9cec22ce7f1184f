package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/service"
)

// Сервисы, которые нужны обработчикам. Реализации в internal/service.

type CourseService interface {
	ListPublished(ctx context.Context) ([]*model.Course, error)
	GetDetail(ctx context.Context, courseID uuid.UUID) (*service.CourseDetail, error)
	List(ctx context.Context) ([]*model.Course, error)
	Get(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
	Save(ctx context.Context, input *service.CourseInput) (*model.Course, error)
	Delete(ctx context.Context, courseID uuid.UUID) error
}

type BookingService interface {
	BookLesson(ctx context.Context, userID, lessonID uuid.UUID, slot time.Time) (*model.Schedule, error)
}

type AccessService interface {
	GetLesson(ctx context.Context, lessonID uuid.UUID) (*model.Lesson, error)
	Access(ctx context.Context, userID, lessonID uuid.UUID) (*service.LessonAccess, error)
	Watch(ctx context.Context, userID, lessonID uuid.UUID) (<-chan *service.LessonAccess, error)
}

type MarketingService interface {
	Kinds() []model.EmailTemplateKind
	GetTemplate(ctx context.Context, templateType model.EmailTemplateType) (*model.EmailTemplate, error)
	SaveTemplate(ctx context.Context, tmpl *model.EmailTemplate) error
	Send(ctx context.Context, req *service.SendRequest) error
}

type UserService interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}
