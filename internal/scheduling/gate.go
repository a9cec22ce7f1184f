package scheduling

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/live_lessons/internal/model"
)

type AccessState string

const (
	AccessUnscheduled AccessState = "unscheduled" // записи нет
	AccessPending     AccessState = "pending"     // урок ещё не начался
	AccessLive        AccessState = "live"        // идёт трансляция
	AccessExpired     AccessState = "expired"     // окно закрыто
)

// Подписи состояний для клиента
const (
	LabelUnscheduled = "Você não tem agendamento para esta aula"
	LabelLive        = "AO VIVO"
	LabelExpired     = "Expirado"
)

// Access результат проверки доступа к уроку в момент Now
type Access struct {
	State       AccessState   `json:"state"`
	Label       string        `json:"label"`
	Countdown   string        `json:"countdown,omitempty"` // только для pending
	Remaining   time.Duration `json:"-"`
	ScheduledAt *time.Time    `json:"scheduled_at,omitempty"`
	EndsAt      *time.Time    `json:"ends_at,omitempty"`
	Now         time.Time     `json:"now"`
}

// CanWatch можно ли показывать видео
func (a Access) CanWatch() bool {
	return a.State == AccessLive
}

// Evaluate вычисляет состояние доступа. Чистая функция от (schedule, now).
func Evaluate(schedule *model.Schedule, now time.Time) Access {
	if schedule == nil {
		return Access{State: AccessUnscheduled, Label: LabelUnscheduled, Now: now}
	}

	start := schedule.ScheduledAt
	end := schedule.EndsAt()
	access := Access{ScheduledAt: &start, EndsAt: &end, Now: now}

	switch {
	case now.Before(start):
		access.State = AccessPending
		access.Remaining = start.Sub(now)
		access.Countdown = FormatCountdown(access.Remaining)
		access.Label = access.Countdown
	case now.Before(end):
		access.State = AccessLive
		access.Label = LabelLive
	default:
		access.State = AccessExpired
		access.Label = LabelExpired
	}

	return access
}

// FormatCountdown форматирует остаток как "минуты:секунды".
// Округление вниз: последняя секунда показывается как 0:00.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
