package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Freeeeeet/live_lessons/internal/service"
)

func registerMarketingAPI(g *echo.Group, marketing MarketingService) {
	g.POST("/send", func(c echo.Context) error {
		var req service.SendRequest
		if err := c.Bind(&req); err != nil {
			return err
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		err := marketing.Send(c.Request().Context(), &req)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, echo.Map{"success": true})
		case errors.Is(err, service.ErrTemplateNotFound), errors.Is(err, service.ErrUserNotFound):
			return err
		default:
			// Ошибка провайдера отдаётся клиенту как есть
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
		}
	})
}
