package service

import (
	"errors"
	"strings"
)

var (
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrTemplateNotFound = errors.New("Template not found")
	ErrUserNotFound     = errors.New("User not found")
)

// StorageError ошибка хранилища при записи на урок.
// Текст отдаётся клиенту как есть.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError некорректные входные данные
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message, Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) hasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}
