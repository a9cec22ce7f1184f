// Package api HTTP API сервиса на echo.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Freeeeeet/live_lessons/internal/app"
	"github.com/Freeeeeet/live_lessons/internal/idgen"
)

type Options struct {
	Address        string
	Debug          bool
	DisableReqLogs bool
	JWTSecret      []byte
	Logger         *zap.Logger
	Reporter       app.Reporter

	Courses   CourseService
	Lessons   AccessService
	Booking   BookingService
	Marketing MarketingService
	Users     UserService
}

type Server struct {
	opts *Options
	app  *echo.Echo
}

func NewServer(opts *Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Reporter == nil {
		opts.Reporter = app.NewReporter("", "", opts.Logger)
	}
	s := &Server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Debug = s.opts.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: idgen.RequestID}))
	if !s.opts.DisableReqLogs {
		s.app.Use(requestLogger(s.opts.Logger))
	}
	s.app.Use(middleware.Recover())

	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.opts.Reporter, s.opts.Logger)
	s.app.Validator = newValidator()

	s.app.GET("/health", health)

	v1 := s.app.Group("/v1")
	auth := authMiddleware(s.opts.JWTSecret)
	admin := adminMiddleware(s.opts.Users)

	registerCourseAPI(v1, s.opts.Courses)
	registerLessonAPI(v1, auth, s.opts.Lessons, s.opts.Booking)
	registerAdminAPI(v1.Group("/admin", auth, admin), s.opts.Courses, s.opts.Marketing)
	registerMarketingAPI(v1.Group("/marketing", auth, admin), s.opts.Marketing)
}

// Start блокируется до остановки сервера
func (s *Server) Start() error {
	s.opts.Logger.Info("HTTP server listening", zap.String("addr", s.opts.Address))
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // для тестов
	s.app.ServeHTTP(w, r)
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "time": time.Now().UTC()})
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("HTTP request", fields...)
			return nil
		},
	})
}
