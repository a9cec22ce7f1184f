package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LessonRepository struct {
	pool        base.DB
	storageHost string
}

// NewLessonRepository создаёт репозиторий уроков.
// storageHost используется для классификации video_url при загрузке.
func NewLessonRepository(pool base.DB, storageHost string) *LessonRepository {
	return &LessonRepository{pool: pool, storageHost: storageHost}
}

// GetByCourseID получает уроки курса в порядке order_index
func (r *LessonRepository) GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error) {
	query := `
		SELECT id, course_id, title, description, video_url, order_index
		FROM lessons
		WHERE course_id = $1
		ORDER BY order_index
	`

	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("get lessons by course: %w", err)
	}
	defer rows.Close()

	var lessons []*model.Lesson
	for rows.Next() {
		lesson, err := r.scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}

	return lessons, nil
}

// GetByID получает урок вместе с курсом
func (r *LessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error) {
	query := `
		SELECT l.id, l.course_id, l.title, l.description, l.video_url, l.order_index,
		       c.id, c.title, c.description, c.hotmart_link, c.button_text, c.is_published, c.created_at
		FROM lessons l
		JOIN courses c ON c.id = l.course_id
		WHERE l.id = $1
	`

	var lesson model.Lesson
	var course model.Course
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Description,
		&lesson.VideoURL,
		&lesson.OrderIndex,
		&course.ID,
		&course.Title,
		&course.Description,
		&course.HotmartLink,
		&course.ButtonText,
		&course.IsPublished,
		&course.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	lesson.Video = model.ResolveVideo(lesson.VideoURL, r.storageHost)
	lesson.Course = &course

	return &lesson, nil
}

func (r *LessonRepository) scanLesson(rows pgx.Rows) (*model.Lesson, error) {
	var lesson model.Lesson
	err := rows.Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Description,
		&lesson.VideoURL,
		&lesson.OrderIndex,
	)
	if err != nil {
		return nil, err
	}
	lesson.Video = model.ResolveVideo(lesson.VideoURL, r.storageHost)
	return &lesson, nil
}
