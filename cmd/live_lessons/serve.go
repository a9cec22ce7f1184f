package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Freeeeeet/live_lessons/internal/api"
	"github.com/Freeeeeet/live_lessons/internal/app"
	"github.com/Freeeeeet/live_lessons/internal/config"
	"github.com/Freeeeeet/live_lessons/internal/events"
	"github.com/Freeeeeet/live_lessons/internal/media"
	"github.com/Freeeeeet/live_lessons/internal/notify"
	"github.com/Freeeeeet/live_lessons/internal/repository"
	"github.com/Freeeeeet/live_lessons/internal/scheduling"
	"github.com/Freeeeeet/live_lessons/internal/service"
)

const shutdownTimeout = 30 * time.Second

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := app.NewLogger(cfg.Environment)
		defer logger.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on start")
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := app.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("Connected to database")

	if !skipMigrations {
		mg, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
		if err != nil {
			return err
		}
		err = mg.Up(ctx)
		_ = mg.Close()
		if err != nil {
			return err
		}
	}

	reporter := app.NewReporter(cfg.RollbarToken, cfg.Environment, logger)
	defer reporter.Close() //nolint:errcheck

	publisher := newPublisher(cfg, logger)
	defer publisher.Close() //nolint:errcheck

	// Репозитории
	profileRepo := repository.NewProfileRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool, cfg.VideoStorageHost)
	scheduleRepo := repository.NewScheduleRepository(pool)
	templateRepo := repository.NewEmailTemplateRepository(pool)
	dispatchRepo := repository.NewEmailDispatchRepository(pool)

	// Сервисы
	clock := scheduling.RealClock{}
	userService := service.NewUserService(profileRepo, logger)
	marketingService := service.NewMarketingService(templateRepo, profileRepo, newSender(cfg, logger), logger)
	courseService := service.NewCourseService(courseRepo, lessonRepo, templateRepo, clock, cfg.VideoStorageHost, logger)
	bookingService := service.NewBookingService(lessonRepo, scheduleRepo, marketingService, publisher, cfg.PublicBaseURL, cfg.Location, logger)
	accessService := service.NewAccessService(
		lessonRepo,
		scheduleRepo,
		media.NewResolver(newPresigner(ctx, cfg, logger)),
		clock,
		cfg.GatePollInterval,
		cfg.Location,
		logger,
	)

	remarketingService := service.NewRemarketingService(dispatchRepo, lessonRepo, marketingService, cfg.PublicBaseURL, cfg.Location, logger)

	var scheduler *app.Scheduler
	if cfg.RemarketingInterval > 0 {
		scheduler = app.NewScheduler(remarketingService, cfg.RemarketingInterval, logger)
		scheduler.Start(ctx)
	} else {
		logger.Info("Remarketing disabled (REMARKETING_INTERVAL=0)")
	}

	server := api.NewServer(&api.Options{
		Address:   cfg.HTTPAddr,
		Debug:     !cfg.IsProduction(),
		JWTSecret: []byte(cfg.AuthJWTSecret),
		Logger:    logger,
		Reporter:  reporter,
		Courses:   courseService,
		Lessons:   accessService,
		Booking:   bookingService,
		Marketing: marketingService,
		Users:     userService,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("live_lessons started",
		zap.String("env", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	// Письма о записи уходят в фоне, дожидаемся их до закрытия пула
	bookingService.Wait()
	logger.Info("Server stopped")
	return nil
}

func newPublisher(cfg *config.Config, logger *zap.Logger) events.Publisher {
	var publishers []events.Publisher

	if cfg.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			logger.Error("Failed to connect to NATS, events disabled", zap.Error(err))
		} else {
			publishers = append(publishers, pub)
			logger.Info("NATS events enabled", zap.String("nats_url", cfg.NATSURL))
		}
	}

	if cfg.TelegramEnabled() {
		pub, err := events.NewTelegramPublisher(cfg.TelegramToken, cfg.TelegramAdminChatID, cfg.Location, logger)
		if err != nil {
			logger.Error("Failed to create telegram alerter", zap.Error(err))
		} else {
			publishers = append(publishers, pub)
			logger.Info("Telegram admin alerts enabled", zap.Int64("chat_id", cfg.TelegramAdminChatID))
		}
	}

	if len(publishers) == 0 {
		logger.Info("Events disabled (NATS_URL and TELEGRAM_TOKEN not set)")
		return &events.NoopPublisher{}
	}
	return events.NewMultiPublisher(publishers...)
}

func newSender(cfg *config.Config, logger *zap.Logger) notify.Sender {
	if cfg.SendGridAPIKey == "" {
		logger.Warn("SENDGRID_API_KEY not set, emails are written to the log")
		return notify.NewConsoleSender(cfg.MailFrom, logger)
	}
	return notify.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom)
}

func newPresigner(ctx context.Context, cfg *config.Config, logger *zap.Logger) media.Presigner {
	if cfg.S3Bucket == "" {
		return nil
	}
	p, err := media.NewS3Presigner(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Endpoint)
	if err != nil {
		logger.Error("Failed to configure S3, s3:// videos unavailable", zap.Error(err))
		return nil
	}
	return p
}
