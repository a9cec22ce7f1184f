// Package events публикация доменных событий (NATS, Telegram-оповещения админам).
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TopicScheduleCreated = "lessons.schedule.created"
)

// ScheduleCreated пользователь записался на урок
type ScheduleCreated struct {
	ScheduleID  uuid.UUID `json:"schedule_id"`
	UserID      uuid.UUID `json:"user_id"`
	LessonID    uuid.UUID `json:"lesson_id"`
	LessonTitle string    `json:"lesson_title"`
	CourseTitle string    `json:"course_title,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// Publisher публикует доменные события
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
