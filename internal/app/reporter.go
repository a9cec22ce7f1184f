package app

import (
	"os"

	"github.com/rollbar/rollbar-go"
	"go.uber.org/zap"
)

// Reporter отправляет необработанные ошибки во внешний трекер
type Reporter interface {
	Report(err error, extras map[string]interface{})
	Close() error
}

// RollbarReporter отправляет ошибки в Rollbar и дублирует их в лог
type RollbarReporter struct {
	client *rollbar.Client
	logger *zap.Logger
}

// NewReporter возвращает RollbarReporter, если задан токен, иначе репортер только в лог
func NewReporter(token, env string, logger *zap.Logger) Reporter {
	if token == "" {
		return &LogReporter{logger: logger}
	}
	host, _ := os.Hostname()
	return newRollbarReporter(rollbar.New(token, env, "", host, ""), logger)
}

func newRollbarReporter(client *rollbar.Client, logger *zap.Logger) *RollbarReporter {
	return &RollbarReporter{client: client, logger: logger}
}

func (r *RollbarReporter) Report(err error, extras map[string]interface{}) {
	r.logger.Error("Unhandled error", zap.Error(err), zap.Any("extras", extras))
	r.client.ErrorWithExtras(rollbar.ERR, err, extras)
}

// Close дожидается отправки очереди
func (r *RollbarReporter) Close() error {
	return r.client.Close()
}

// LogReporter пишет ошибки только в лог
type LogReporter struct {
	logger *zap.Logger
}

func (r *LogReporter) Report(err error, extras map[string]interface{}) {
	r.logger.Error("Unhandled error", zap.Error(err), zap.Any("extras", extras))
}

func (r *LogReporter) Close() error { return nil }
