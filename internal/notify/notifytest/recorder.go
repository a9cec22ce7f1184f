// Package notifytest содержит отправщик писем для тестов
package notifytest

import (
	"context"
	"sync"

	"github.com/Freeeeeet/live_lessons/internal/notify"
)

// Recorder ничего не отправляет, только запоминает письма
type Recorder struct {
	mu   sync.Mutex
	sent []notify.Message
}

var _ notify.Sender = (*Recorder)(nil)

func (r *Recorder) Send(_ context.Context, msg *notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, *msg)
	return nil
}

// Sent возвращает копию отправленных писем
func (r *Recorder) Sent() []notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Message, len(r.sent))
	copy(out, r.sent)
	return out
}
