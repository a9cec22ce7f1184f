package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Freeeeeet/live_lessons/internal/model"
)

type courseHandler struct {
	courses CourseService
}

func registerCourseAPI(g *echo.Group, courses CourseService) {
	h := &courseHandler{courses: courses}
	g.GET("/courses", h.list)
	g.GET("/courses/:id", h.detail)
}

func (h *courseHandler) list(c echo.Context) error {
	courses, err := h.courses.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	if courses == nil {
		courses = []*model.Course{}
	}
	return c.JSON(http.StatusOK, courses)
}

// detail курс, уроки и ближайшие слоты для записи
func (h *courseHandler) detail(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.courses.GetDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}

	// Уроки отдаются без video_url
	course := *detail.Course
	course.Lessons = nil

	return c.JSON(http.StatusOK, &courseDetailView{
		Course:  &course,
		Lessons: newLessonViews(detail.Lessons),
		Slots:   detail.Slots,
	})
}
