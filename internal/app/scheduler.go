package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RemarketingDispatcher отправляет письма, срок которых наступил
type RemarketingDispatcher interface {
	DispatchDue(ctx context.Context, now time.Time) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	remarketing RemarketingDispatcher
	interval    time.Duration
	logger      *zap.Logger
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(remarketing RemarketingDispatcher, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		remarketing: remarketing,
		interval:    interval,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.runRemarketingTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт текущий запуск
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// runRemarketingTask периодически рассылает письма ремаркетинга
func (s *Scheduler) runRemarketingTask(ctx context.Context) {
	defer s.wg.Done()

	// Первый запуск сразу при старте
	s.dispatchRemarketing(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.dispatchRemarketing(ctx)
		case <-s.stopChan:
			s.logger.Info("Remarketing task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Remarketing task cancelled")
			return
		}
	}
}

func (s *Scheduler) dispatchRemarketing(ctx context.Context) {
	sent, err := s.remarketing.DispatchDue(ctx, time.Now())
	if err != nil {
		s.logger.Error("Failed to dispatch remarketing emails", zap.Int("sent", sent), zap.Error(err))
		return
	}
	s.logger.Debug("Remarketing dispatch completed", zap.Int("sent", sent))
}
