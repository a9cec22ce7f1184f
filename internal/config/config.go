package config

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment    string
	HTTPAddr       string
	DBDSN          string
	MigrationsPath string

	AuthJWTSecret string
	PublicBaseURL string
	Location      *time.Location

	VideoStorageHost string
	GatePollInterval time.Duration

	// Ноль отключает рассылку ремаркетинга
	RemarketingInterval time.Duration

	SendGridAPIKey string
	MailFrom       mail.Address

	NATSURL string

	TelegramToken       string
	TelegramAdminChatID int64

	S3Bucket   string
	S3Region   string
	S3Endpoint string

	RollbarToken string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		Environment:      envOrDefault("ENV", "development"),
		HTTPAddr:         envOrDefault("HTTP_ADDR", ":8080"),
		DBDSN:            os.Getenv("DB_DSN"),
		MigrationsPath:   envOrDefault("MIGRATIONS_PATH", "migrations"),
		AuthJWTSecret:    os.Getenv("AUTH_JWT_SECRET"),
		PublicBaseURL:    strings.TrimRight(envOrDefault("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		VideoStorageHost: envOrDefault("VIDEO_STORAGE_HOST", "supabase"),
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		MailFrom: mail.Address{
			Name:    os.Getenv("MAIL_FROM_NAME"),
			Address: envOrDefault("MAIL_FROM", "no-reply@localhost"),
		},
		NATSURL:       os.Getenv("NATS_URL"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      envOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		RollbarToken:  os.Getenv("ROLLBAR_TOKEN"),
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.AuthJWTSecret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET is required but not set")
	}

	loc, err := time.LoadLocation(envOrDefault("APP_TIMEZONE", "America/Sao_Paulo"))
	if err != nil {
		return nil, fmt.Errorf("parse APP_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	cfg.GatePollInterval, err = time.ParseDuration(envOrDefault("GATE_POLL_INTERVAL", "1s"))
	if err != nil {
		return nil, fmt.Errorf("parse GATE_POLL_INTERVAL: %w", err)
	}
	if cfg.GatePollInterval <= 0 {
		return nil, fmt.Errorf("GATE_POLL_INTERVAL must be positive")
	}

	cfg.RemarketingInterval, err = time.ParseDuration(envOrDefault("REMARKETING_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("parse REMARKETING_INTERVAL: %w", err)
	}
	if cfg.RemarketingInterval < 0 {
		return nil, fmt.Errorf("REMARKETING_INTERVAL must not be negative")
	}

	if v := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); v != "" {
		cfg.TelegramAdminChatID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
	}

	log.Printf("Config loaded (env=%s)\n", cfg.Environment)

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramAdminChatID != 0
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
