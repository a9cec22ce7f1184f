package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/service"
)

type adminHandler struct {
	courses   CourseService
	marketing MarketingService
}

func registerAdminAPI(g *echo.Group, courses CourseService, marketing MarketingService) {
	h := &adminHandler{courses: courses, marketing: marketing}

	g.GET("/courses", h.listCourses)
	g.GET("/courses/:id", h.getCourse)
	g.POST("/courses", h.createCourse)
	g.PUT("/courses/:id", h.updateCourse)
	g.DELETE("/courses/:id", h.deleteCourse)

	g.GET("/email-templates", h.listTemplateKinds)
	g.GET("/email-templates/:type", h.getTemplate)
	g.PUT("/email-templates/:type", h.saveTemplate)
}

func (h *adminHandler) listCourses(c echo.Context) error {
	courses, err := h.courses.List(c.Request().Context())
	if err != nil {
		return err
	}
	if courses == nil {
		courses = []*model.Course{}
	}
	return c.JSON(http.StatusOK, courses)
}

func (h *adminHandler) getCourse(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	course, err := h.courses.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

func (h *adminHandler) createCourse(c echo.Context) error {
	var input service.CourseInput
	if err := c.Bind(&input); err != nil {
		return err
	}

	course, err := h.courses.Save(c.Request().Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, course)
}

func (h *adminHandler) updateCourse(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input service.CourseInput
	if err := c.Bind(&input); err != nil {
		return err
	}
	input.ID = id

	course, err := h.courses.Save(c.Request().Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

func (h *adminHandler) deleteCourse(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.courses.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *adminHandler) listTemplateKinds(c echo.Context) error {
	return c.JSON(http.StatusOK, h.marketing.Kinds())
}

func (h *adminHandler) getTemplate(c echo.Context) error {
	tmpl, err := h.marketing.GetTemplate(c.Request().Context(), model.EmailTemplateType(c.Param("type")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tmpl)
}

type templateRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *adminHandler) saveTemplate(c echo.Context) error {
	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	tmpl := &model.EmailTemplate{
		Type:    model.EmailTemplateType(c.Param("type")),
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := h.marketing.SaveTemplate(c.Request().Context(), tmpl); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tmpl)
}
