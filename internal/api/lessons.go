package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// sseKeepaliveInterval комментарий-пинг, чтобы прокси не рвали соединение
const sseKeepaliveInterval = 15 * time.Second

type lessonHandler struct {
	lessons AccessService
	booking BookingService
}

func registerLessonAPI(g *echo.Group, auth echo.MiddlewareFunc, lessons AccessService, booking BookingService) {
	h := &lessonHandler{lessons: lessons, booking: booking}
	lg := g.Group("/lessons", auth)
	lg.GET("/:id", h.get)
	lg.POST("/:id/schedule", h.schedule)
	lg.GET("/:id/access", h.access)
	lg.GET("/:id/access/stream", h.stream)
}

func (h *lessonHandler) get(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	lesson, err := h.lessons.GetLesson(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newLessonView(lesson))
}

type scheduleRequest struct {
	Slot *time.Time `json:"slot"`
}

// schedule запись на урок в выбранный слот. Без слота ответ 204.
func (h *lessonHandler) schedule(c echo.Context) error {
	userID, err := contextUserID(c)
	if err != nil {
		return err
	}
	lessonID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	var slot time.Time
	if req.Slot != nil {
		slot = *req.Slot
	}

	schedule, err := h.booking.BookLesson(c.Request().Context(), userID, lessonID, slot)
	if err != nil {
		return err
	}
	if schedule == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusCreated, schedule)
}

func (h *lessonHandler) access(c echo.Context) error {
	userID, err := contextUserID(c)
	if err != nil {
		return err
	}
	lessonID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	access, err := h.lessons.Access(c.Request().Context(), userID, lessonID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, access)
}

// stream отдаёт изменения доступа как text/event-stream до отключения клиента
func (h *lessonHandler) stream(c echo.Context) error {
	userID, err := contextUserID(c)
	if err != nil {
		return err
	}
	lessonID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	updates, err := h.lessons.Watch(ctx, userID, lessonID)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	keepalive := time.NewTicker(sseKeepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case access, ok := <-updates:
			if !ok {
				return nil
			}
			data, err := json.Marshal(access)
			if err != nil {
				return fmt.Errorf("marshal access: %w", err)
			}
			fmt.Fprintf(res, "event:access\ndata:%s\n\n", data)
			res.Flush()
		case <-keepalive.C:
			fmt.Fprint(res, ":keepalive\n\n")
			res.Flush()
		}
	}
}
