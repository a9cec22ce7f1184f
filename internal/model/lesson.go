package model

import "github.com/google/uuid"

type Lesson struct {
	ID          uuid.UUID   `json:"id"`
	CourseID    uuid.UUID   `json:"course_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	VideoURL    string      `json:"video_url"`
	OrderIndex  int         `json:"order_index"`
	Video       VideoSource `json:"-"` // вычисляется один раз при загрузке

	// Дополнительные поля для удобства (не из БД)
	Course *Course `json:"course,omitempty"`
}
