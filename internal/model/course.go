package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultButtonText текст кнопки оффера по умолчанию
const DefaultButtonText = "Garantir Minha Vaga"

type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	HotmartLink string    `json:"hotmart_link"` // ссылка на оффер (партнёрская)
	ButtonText  string    `json:"button_text"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`

	// Заполняется только при загрузке курса с уроками
	Lessons []*Lesson `json:"lessons,omitempty"`
}
