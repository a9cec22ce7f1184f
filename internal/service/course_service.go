package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/repository"
	"github.com/Freeeeeet/live_lessons/internal/scheduling"
)

// CourseDetail курс с уроками и ближайшими слотами для записи
type CourseDetail struct {
	Course  *model.Course   `json:"course"`
	Lessons []*model.Lesson `json:"lessons"`
	Slots   []time.Time     `json:"slots"`
}

// LessonInput урок из формы админки
type LessonInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
}

// CourseInput форма курса. ID пустой для нового курса.
type CourseInput struct {
	ID          uuid.UUID     `json:"-"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	HotmartLink string        `json:"hotmart_link"`
	ButtonText  string        `json:"button_text"`
	Lessons     []LessonInput `json:"lessons"`
}

type CourseService struct {
	courses     CourseStore
	lessons     LessonStore
	templates   EmailTemplateStore
	clock       scheduling.Clock
	storageHost string
	logger      *zap.Logger
}

func NewCourseService(
	courses CourseStore,
	lessons LessonStore,
	templates EmailTemplateStore,
	clock scheduling.Clock,
	storageHost string,
	logger *zap.Logger,
) *CourseService {
	return &CourseService{
		courses:     courses,
		lessons:     lessons,
		templates:   templates,
		clock:       clock,
		storageHost: storageHost,
		logger:      logger,
	}
}

// ListPublished курсы для витрины
func (s *CourseService) ListPublished(ctx context.Context) ([]*model.Course, error) {
	courses, err := s.courses.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published courses: %w", err)
	}
	return courses, nil
}

// GetDetail курс, его уроки по порядку и шесть ближайших слотов
func (s *CourseService) GetDetail(ctx context.Context, courseID uuid.UUID) (*CourseDetail, error) {
	course, err := s.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return &CourseDetail{
		Course:  course,
		Lessons: course.Lessons,
		Slots:   scheduling.GenerateSlots(s.clock.Now()),
	}, nil
}

// List все курсы для админки, новые сверху
func (s *CourseService) List(ctx context.Context) ([]*model.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Get курс с уроками
func (s *CourseService) Get(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	lessons, err := s.lessons.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course lessons: %w", err)
	}
	course.Lessons = lessons

	return course, nil
}

// Save создаёт или обновляет курс и заменяет его уроки.
// Без шаблона письма-подтверждения записи курс не сохраняется.
func (s *CourseService) Save(ctx context.Context, input *CourseInput) (*model.Course, error) {
	if strings.TrimSpace(input.Title) == "" {
		verr := newValidationError("invalid course")
		verr.add("title", "Dê um título ao curso")
		return nil, verr
	}

	tmpl, err := s.templates.GetByType(ctx, model.EmailTemplateScheduled)
	if err != nil {
		return nil, fmt.Errorf("get scheduled template: %w", err)
	}
	if tmpl == nil || strings.TrimSpace(tmpl.Body) == "" {
		return nil, newValidationError(`Configure o "E-mail de Confirmação de Agendamento" na aba Marketing antes de publicar o curso.`)
	}

	course := &model.Course{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		HotmartLink: input.HotmartLink,
		ButtonText:  input.ButtonText,
		IsPublished: input.ID == uuid.Nil,
	}
	if strings.TrimSpace(course.ButtonText) == "" {
		course.ButtonText = model.DefaultButtonText
	}

	lessons := make([]*model.Lesson, 0, len(input.Lessons))
	for _, l := range input.Lessons {
		if strings.TrimSpace(l.Title) == "" {
			continue
		}
		lessons = append(lessons, &model.Lesson{
			Title:       l.Title,
			Description: l.Description,
			VideoURL:    l.VideoURL,
			OrderIndex:  len(lessons),
			Video:       model.ResolveVideo(l.VideoURL, s.storageHost),
		})
	}

	if err := s.courses.SaveWithLessons(ctx, course, lessons); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("save course: %w", err)
	}
	course.Lessons = lessons

	s.logger.Info("Course saved",
		zap.String("course_id", course.ID.String()),
		zap.Bool("created", input.ID == uuid.Nil),
		zap.Int("lessons", len(lessons)),
	)
	return course, nil
}

// Delete удаляет курс вместе с уроками
func (s *CourseService) Delete(ctx context.Context, courseID uuid.UUID) error {
	if err := s.courses.Delete(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("delete course: %w", err)
	}

	s.logger.Info("Course deleted", zap.String("course_id", courseID.String()))
	return nil
}
