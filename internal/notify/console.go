package notify

import (
	"context"
	"net/mail"

	"go.uber.org/zap"
)

// ConsoleSender пишет письма в лог вместо отправки (локальная разработка)
type ConsoleSender struct {
	from   mail.Address
	logger *zap.Logger
}

var _ Sender = (*ConsoleSender)(nil)

func NewConsoleSender(from mail.Address, logger *zap.Logger) *ConsoleSender {
	return &ConsoleSender{from: from, logger: logger}
}

func (s *ConsoleSender) Send(_ context.Context, msg *Message) error {
	s.logger.Info("Email (console)",
		zap.String("from", s.from.String()),
		zap.String("to", msg.To.String()),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return nil
}
