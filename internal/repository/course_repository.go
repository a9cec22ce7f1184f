package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CourseRepository struct {
	*base.Repository
}

func NewCourseRepository(pool base.DB) *CourseRepository {
	return &CourseRepository{Repository: base.NewRepository(pool)}
}

const courseColumns = `id, title, description, hotmart_link, button_text, is_published, created_at`

// List получает все курсы, новые первыми
func (r *CourseRepository) List(ctx context.Context) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC`
	return r.queryCourses(ctx, query)
}

// ListPublished получает опубликованные курсы
func (r *CourseRepository) ListPublished(ctx context.Context) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE is_published = TRUE ORDER BY created_at DESC`
	return r.queryCourses(ctx, query)
}

// GetByID получает курс по ID
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	var course model.Course
	err := r.Pool().QueryRow(ctx, query, id).Scan(
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
		return nil, fmt.Errorf("get course by id: %w", err)
	}

	return &course, nil
}

// SaveWithLessons создаёт или обновляет курс и полностью заменяет его уроки.
// Всё выполняется в одной транзакции. Для нового курса ID пустой.
func (r *CourseRepository) SaveWithLessons(ctx context.Context, course *model.Course, lessons []*model.Lesson) error {
	return r.InTx(ctx, func(q base.Querier) error {
		if course.ID == uuid.Nil {
			query := `
				INSERT INTO courses (title, description, hotmart_link, button_text, is_published)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id, created_at
			`
			err := q.QueryRow(ctx, query,
				course.Title,
				course.Description,
				course.HotmartLink,
				course.ButtonText,
				course.IsPublished,
			).Scan(&course.ID, &course.CreatedAt)
			if err != nil {
				return fmt.Errorf("create course: %w", err)
			}
		} else {
			query := `
				UPDATE courses
				SET title = $1, description = $2, hotmart_link = $3, button_text = $4
				WHERE id = $5
				RETURNING is_published, created_at
			`
			err := q.QueryRow(ctx, query,
				course.Title,
				course.Description,
				course.HotmartLink,
				course.ButtonText,
				course.ID,
			).Scan(&course.IsPublished, &course.CreatedAt)
			if err != nil {
				if base.IsNotFound(err) {
					return ErrCourseNotFound
				}
				return fmt.Errorf("update course: %w", err)
			}
		}

		// Удаляем старые уроки, чтобы набор совпадал с формой
		if _, err := q.Exec(ctx, `DELETE FROM lessons WHERE course_id = $1`, course.ID); err != nil {
			return fmt.Errorf("delete course lessons: %w", err)
		}

		for _, lesson := range lessons {
			lesson.CourseID = course.ID
			query := `
				INSERT INTO lessons (course_id, title, description, video_url, order_index)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`
			err := q.QueryRow(ctx, query,
				lesson.CourseID,
				lesson.Title,
				lesson.Description,
				lesson.VideoURL,
				lesson.OrderIndex,
			).Scan(&lesson.ID)
			if err != nil {
				return fmt.Errorf("create lesson: %w", err)
			}
		}

		return nil
	})
}

// Delete удаляет курс (уроки и записи удаляются каскадно)
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := base.ExecAffected(ctx, r.Pool(), `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if affected == 0 {
		return ErrCourseNotFound
	}

	return nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, query string, args ...any) ([]*model.Course, error) {
	rows, err := r.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	courses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.Course, error) {
		var course model.Course
		err := row.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.HotmartLink,
			&course.ButtonText,
			&course.IsPublished,
			&course.CreatedAt,
		)
		return &course, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan courses: %w", err)
	}

	return courses, nil
}
