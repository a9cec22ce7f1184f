package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"go.uber.org/zap"
)

// DefaultPollInterval как часто пересчитывается доступ к уроку
const DefaultPollInterval = time.Second

// Watcher периодически пересчитывает Access для одного просмотра урока
// и рассылает изменения подписчикам. Останавливается через Stop или ctx.
type Watcher struct {
	clock    Clock
	interval time.Duration
	logger   *zap.Logger

	mu          sync.Mutex
	schedule    *model.Schedule
	stopped     bool
	last        *Access
	subscribers map[int]chan Access
	nextID      int

	wake     chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher создаёт новый watcher без записи (состояние unscheduled)
func NewWatcher(clock Clock, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		clock:       clock,
		interval:    interval,
		logger:      logger,
		subscribers: make(map[int]chan Access),
		wake:        make(chan struct{}, 1),
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// SetSchedule применяет загруженную запись. После Stop результат отбрасывается.
func (w *Watcher) SetSchedule(schedule *model.Schedule) bool {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return false
	}
	w.schedule = schedule
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return true
}

// Subscribe возвращает канал с изменениями Access и функцию отписки.
// Канал закрывается при остановке watcher.
func (w *Watcher) Subscribe() (<-chan Access, func()) {
	ch := make(chan Access, 1)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		close(ch)
		return ch, func() {}
	}

	id := w.nextID
	w.nextID++
	w.subscribers[id] = ch

	cancel := func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if sub, ok := w.subscribers[id]; ok {
			delete(w.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Current возвращает текущее состояние без ожидания тика
func (w *Watcher) Current() Access {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Evaluate(w.schedule, w.clock.Now())
}

// Start запускает цикл пересчёта
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop останавливает цикл. Повторный вызов безопасен.
// Запись, пришедшая после Stop, уже не применяется.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		w.mu.Unlock()
		close(w.stopChan)
	})
}

// Rearm забывает последнее разосланное состояние: следующий тик разошлёт его снова,
// даже если оно не изменилось
func (w *Watcher) Rearm() {
	w.mu.Lock()
	w.last = nil
	w.mu.Unlock()
}

// Done закрывается, когда цикл завершён и подписчики отключены
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) run(ctx context.Context) {
	defer w.shutdown()

	// Запись, выставленная до Start, уже учтётся первым tick
	select {
	case <-w.wake:
	default:
	}
	w.tick()

	for {
		select {
		case <-w.clock.After(w.interval):
			w.tick()
		case <-w.wake:
			w.tick()
		case <-w.stopChan:
			w.logger.Debug("Access watcher stopped")
			return
		case <-ctx.Done():
			w.logger.Debug("Access watcher cancelled")
			return
		}
	}
}

// tick пересчитывает доступ и рассылает его, если что-то изменилось
func (w *Watcher) tick() {
	w.mu.Lock()
	defer w.mu.Unlock()

	access := Evaluate(w.schedule, w.clock.Now())
	if w.last != nil && w.last.State == access.State && w.last.Countdown == access.Countdown {
		return
	}
	w.last = &access

	for _, ch := range w.subscribers {
		// Медленный подписчик получает только последнее состояние
		select {
		case ch <- access:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- access:
			default:
			}
		}
	}
}

func (w *Watcher) shutdown() {
	w.mu.Lock()
	w.stopped = true
	for id, ch := range w.subscribers {
		delete(w.subscribers, id)
		close(ch)
	}
	w.mu.Unlock()
	close(w.done)
}
