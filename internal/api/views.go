package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/live_lessons/internal/model"
)

// lessonView урок без ссылки на видео: ссылка выдаётся только через /access
type lessonView struct {
	ID          uuid.UUID     `json:"id"`
	CourseID    uuid.UUID     `json:"course_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	OrderIndex  int           `json:"order_index"`
	Course      *model.Course `json:"course,omitempty"`
}

func newLessonView(l *model.Lesson) *lessonView {
	return &lessonView{
		ID:          l.ID,
		CourseID:    l.CourseID,
		Title:       l.Title,
		Description: l.Description,
		OrderIndex:  l.OrderIndex,
		Course:      l.Course,
	}
}

func newLessonViews(lessons []*model.Lesson) []*lessonView {
	views := make([]*lessonView, 0, len(lessons))
	for _, l := range lessons {
		views = append(views, newLessonView(l))
	}
	return views
}

type courseDetailView struct {
	Course  *model.Course `json:"course"`
	Lessons []*lessonView `json:"lessons"`
	Slots   []time.Time   `json:"slots"`
}
