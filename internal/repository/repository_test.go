package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/live_lessons/internal/model"
)

var scheduleColumns = []string{"id", "user_id", "lesson_id", "scheduled_at", "status", "created_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestScheduleRepository_GetLatest(t *testing.T) {
	mock := newMock(t)
	repo := NewScheduleRepository(mock)

	userID, lessonID := uuid.New(), uuid.New()
	latest := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)

	// Самая поздняя по времени урока, а не по времени создания
	mock.ExpectQuery(`FROM schedules\s+WHERE lesson_id = \$1 AND user_id = \$2\s+ORDER BY scheduled_at DESC\s+LIMIT 1`).
		WithArgs(lessonID, userID).
		WillReturnRows(mock.NewRows(scheduleColumns).
			AddRow(uuid.New(), userID, lessonID, latest, model.ScheduleStatusScheduled, latest.Add(-time.Hour)))

	schedule, err := repo.GetLatest(context.Background(), userID, lessonID)
	require.NoError(t, err)
	require.NotNil(t, schedule)
	assert.Equal(t, latest, schedule.ScheduledAt)
	assert.Equal(t, model.ScheduleStatusScheduled, schedule.Status)

	mock.ExpectQuery(`FROM schedules`).
		WithArgs(lessonID, userID).
		WillReturnError(pgx.ErrNoRows)

	schedule, err = repo.GetLatest(context.Background(), userID, lessonID)
	require.NoError(t, err)
	assert.Nil(t, schedule)
}

func TestEmailDispatchRepository_ListDue(t *testing.T) {
	mock := newMock(t)
	repo := NewEmailDispatchRepository(mock)

	to := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	from := to.Add(-24 * time.Hour)
	row := &model.Schedule{ID: uuid.New(), UserID: uuid.New(), LessonID: uuid.New(), ScheduledAt: to.Add(-time.Hour)}

	// Сначала самая поздняя запись пары, потом окно и отметки об отправке
	mock.ExpectQuery(`(?s)FROM \(\s*SELECT DISTINCT ON \(user_id, lesson_id\).*WHERE scheduled_at <= \$2.*ORDER BY user_id, lesson_id, scheduled_at DESC\s*\) s\s+WHERE s\.scheduled_at > \$1\s+AND NOT EXISTS`).
		WithArgs(from, to, model.EmailTemplateDay1).
		WillReturnRows(mock.NewRows(scheduleColumns).
			AddRow(row.ID, row.UserID, row.LessonID, row.ScheduledAt, model.ScheduleStatusScheduled, row.ScheduledAt))

	due, err := repo.ListDue(context.Background(), model.EmailTemplateDay1, from, to)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, row.ID, due[0].ID)
	assert.Equal(t, row.UserID, due[0].UserID)
}

func TestEmailDispatchRepository_ClaimOnce(t *testing.T) {
	mock := newMock(t)
	repo := NewEmailDispatchRepository(mock)
	scheduleID := uuid.New()

	mock.ExpectExec(`(?s)INSERT INTO email_dispatches .* ON CONFLICT \(schedule_id, type\) DO NOTHING`).
		WithArgs(scheduleID, model.EmailTemplateDay3).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO email_dispatches`).
		WithArgs(scheduleID, model.EmailTemplateDay3).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectExec(`DELETE FROM email_dispatches WHERE schedule_id = \$1 AND type = \$2`).
		WithArgs(scheduleID, model.EmailTemplateDay3).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	claimed, err := repo.Claim(context.Background(), scheduleID, model.EmailTemplateDay3)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.Claim(context.Background(), scheduleID, model.EmailTemplateDay3)
	require.NoError(t, err)
	assert.False(t, claimed, "second claim of the same email must lose")

	require.NoError(t, repo.Release(context.Background(), scheduleID, model.EmailTemplateDay3))
}

func TestCourseRepository_SaveWithLessons(t *testing.T) {
	mock := newMock(t)
	repo := NewCourseRepository(mock)

	courseID := uuid.New()
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	course := &model.Course{Title: "Curso", ButtonText: model.DefaultButtonText, IsPublished: true}
	lessons := []*model.Lesson{
		{Title: "Aula 1", VideoURL: "https://cdn/1.mp4", OrderIndex: 0},
		{Title: "Aula 2", VideoURL: "https://youtube.com/embed/2", OrderIndex: 1},
	}
	lessonIDs := []uuid.UUID{uuid.New(), uuid.New()}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO courses`).
		WithArgs("Curso", "", "", model.DefaultButtonText, true).
		WillReturnRows(mock.NewRows([]string{"id", "created_at"}).AddRow(courseID, createdAt))
	mock.ExpectExec(`DELETE FROM lessons WHERE course_id = \$1`).
		WithArgs(courseID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	for i, l := range lessons {
		mock.ExpectQuery(`INSERT INTO lessons`).
			WithArgs(courseID, l.Title, "", l.VideoURL, l.OrderIndex).
			WillReturnRows(mock.NewRows([]string{"id"}).AddRow(lessonIDs[i]))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.SaveWithLessons(context.Background(), course, lessons))
	assert.Equal(t, courseID, course.ID)
	assert.Equal(t, createdAt, course.CreatedAt)
	for i, l := range lessons {
		assert.Equal(t, lessonIDs[i], l.ID)
		assert.Equal(t, courseID, l.CourseID)
	}
}

func TestCourseRepository_SaveWithLessonsRollsBack(t *testing.T) {
	t.Run("lesson insert fails", func(t *testing.T) {
		mock := newMock(t)
		repo := NewCourseRepository(mock)
		course := &model.Course{ID: uuid.New(), Title: "Curso", ButtonText: model.DefaultButtonText}

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE courses`).
			WithArgs("Curso", "", "", model.DefaultButtonText, course.ID).
			WillReturnRows(mock.NewRows([]string{"is_published", "created_at"}).AddRow(true, time.Now()))
		mock.ExpectExec(`DELETE FROM lessons`).
			WithArgs(course.ID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectQuery(`INSERT INTO lessons`).
			WithArgs(course.ID, "Aula", "", "", 0).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.SaveWithLessons(context.Background(), course, []*model.Lesson{{Title: "Aula"}})
		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("unknown course", func(t *testing.T) {
		mock := newMock(t)
		repo := NewCourseRepository(mock)
		course := &model.Course{ID: uuid.New(), Title: "Curso", ButtonText: model.DefaultButtonText}

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE courses`).
			WithArgs("Curso", "", "", model.DefaultButtonText, course.ID).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		err := repo.SaveWithLessons(context.Background(), course, nil)
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestCourseRepository_DeleteUnknown(t *testing.T) {
	mock := newMock(t)
	repo := NewCourseRepository(mock)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM courses WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrCourseNotFound)
}

func TestLessonRepository_GetByIDResolvesVideo(t *testing.T) {
	mock := newMock(t)
	repo := NewLessonRepository(mock, "supabase")

	lessonID, courseID := uuid.New(), uuid.New()
	mock.ExpectQuery(`FROM lessons l\s+JOIN courses c ON c\.id = l\.course_id\s+WHERE l\.id = \$1`).
		WithArgs(lessonID).
		WillReturnRows(mock.NewRows([]string{
			"id", "course_id", "title", "description", "video_url", "order_index",
			"c_id", "c_title", "c_description", "hotmart_link", "button_text", "is_published", "created_at",
		}).AddRow(
			lessonID, courseID, "Aula 1", "", "https://x.supabase.co/aula.mp4", 0,
			courseID, "Curso", "", "https://go.hotmart.com/x", model.DefaultButtonText, true, time.Now(),
		))

	lesson, err := repo.GetByID(context.Background(), lessonID)
	require.NoError(t, err)
	require.NotNil(t, lesson)
	assert.Equal(t, model.VideoDirectFile, lesson.Video.Kind)
	require.NotNil(t, lesson.Course)
	assert.Equal(t, "https://go.hotmart.com/x", lesson.Course.HotmartLink)
}
