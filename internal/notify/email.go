// Package notify отправка писем пользователям.
package notify

import (
	"context"
	"net/mail"
)

// Message простое текстовое письмо одному получателю
type Message struct {
	To      mail.Address
	Subject string
	Text    string
}

// Sender отправляет письма через провайдера
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}
