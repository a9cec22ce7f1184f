package scheduling

import "time"

// Clock источник времени, подменяется в тестах
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// RealClock системное время
type RealClock struct{}

func (RealClock) Now() time.Time                         { return time.Now() }
func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
