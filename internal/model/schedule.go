package model

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleStatus string

// ScheduleStatusScheduled единственный статус, который выставляет запись на урок
const ScheduleStatusScheduled ScheduleStatus = "scheduled"

// LessonDuration длительность "живого" окна урока
const LessonDuration = 60 * time.Minute

type Schedule struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	LessonID    uuid.UUID      `json:"lesson_id"`
	ScheduledAt time.Time      `json:"scheduled_at"`
	Status      ScheduleStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

// EndsAt возвращает конец окна [ScheduledAt, ScheduledAt+LessonDuration)
func (s *Schedule) EndsAt() time.Time {
	return s.ScheduledAt.Add(LessonDuration)
}
