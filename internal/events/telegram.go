package events

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramPublisher шлёт оповещения о событиях в админский чат
type TelegramPublisher struct {
	sender messageSender
	chatID int64
	loc    *time.Location
	logger *zap.Logger
}

var _ Publisher = (*TelegramPublisher)(nil)

// NewTelegramPublisher создаёт бота без long polling, только для отправки
func NewTelegramPublisher(token string, chatID int64, loc *time.Location, logger *zap.Logger, opts ...bot.Option) (*TelegramPublisher, error) {
	b, err := bot.New(token, append([]bot.Option{bot.WithSkipGetMe()}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramPublisher{sender: b, chatID: chatID, loc: loc, logger: logger}, nil
}

func (p *TelegramPublisher) Publish(ctx context.Context, topic string, event any) error {
	text, ok := p.format(event)
	if !ok {
		p.logger.Debug("Skipping event for telegram", zap.String("topic", topic))
		return nil
	}

	_, err := p.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    p.chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send telegram alert: %w", err)
	}
	return nil
}

func (p *TelegramPublisher) format(event any) (string, bool) {
	switch e := event.(type) {
	case ScheduleCreated:
		return p.formatScheduleCreated(&e), true
	case *ScheduleCreated:
		return p.formatScheduleCreated(e), true
	default:
		return "", false
	}
}

func (p *TelegramPublisher) formatScheduleCreated(e *ScheduleCreated) string {
	text := fmt.Sprintf("📅 <b>Novo agendamento</b>\n\nAula: %s\n", html.EscapeString(e.LessonTitle))
	if e.CourseTitle != "" {
		text += fmt.Sprintf("Curso: %s\n", html.EscapeString(e.CourseTitle))
	}
	text += fmt.Sprintf("Horário: %s\nUsuário: <code>%s</code>",
		e.ScheduledAt.In(p.loc).Format("02/01 15:04"), e.UserID)
	return text
}

func (p *TelegramPublisher) Close() error {
	return nil
}
