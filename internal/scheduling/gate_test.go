package scheduling

import (
	"testing"
	"time"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleAt(t time.Time) *model.Schedule {
	return &model.Schedule{ScheduledAt: t, Status: model.ScheduleStatusScheduled}
}

func TestEvaluate(t *testing.T) {
	at := time.Date(2025, 3, 14, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		now           time.Time
		wantState     AccessState
		wantCountdown string
		wantLabel     string
	}{
		{"one minute before", at.Add(-time.Minute), AccessPending, "1:00", "1:00"},
		{"five minutes three seconds before", at.Add(-5*time.Minute - 3*time.Second), AccessPending, "5:03", "5:03"},
		{"last second floors to zero", at.Add(-999 * time.Millisecond), AccessPending, "0:00", "0:00"},
		{"start instant", at, AccessLive, "", LabelLive},
		{"last live second", at.Add(59*time.Minute + 59*time.Second), AccessLive, "", LabelLive},
		{"end instant", at.Add(60 * time.Minute), AccessExpired, "", LabelExpired},
		{"long after", at.Add(24 * time.Hour), AccessExpired, "", LabelExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(scheduleAt(at), tt.now)
			assert.Equal(t, tt.wantState, got.State)
			assert.Equal(t, tt.wantCountdown, got.Countdown)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantState == AccessLive, got.CanWatch())
			require.NotNil(t, got.ScheduledAt)
			assert.Equal(t, at.Add(time.Hour), *got.EndsAt)
		})
	}
}

func TestEvaluate_NoSchedule(t *testing.T) {
	for _, now := range []time.Time{
		time.Time{},
		time.Date(2025, 3, 14, 14, 0, 0, 0, time.UTC),
		time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
	} {
		got := Evaluate(nil, now)
		assert.Equal(t, AccessUnscheduled, got.State)
		assert.False(t, got.CanWatch())
		assert.Nil(t, got.ScheduledAt)
		assert.Empty(t, got.Countdown)
	}
}

func TestEvaluate_PendingAndExpiredDiffer(t *testing.T) {
	at := time.Date(2025, 3, 14, 14, 0, 0, 0, time.UTC)

	pending := Evaluate(scheduleAt(at), at.Add(-time.Second))
	expired := Evaluate(scheduleAt(at), at.Add(2*time.Hour))

	assert.NotEqual(t, pending.State, expired.State)
	assert.NotEqual(t, pending.Label, expired.Label)
	assert.False(t, pending.CanWatch())
	assert.False(t, expired.CanWatch())
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{3 * time.Second, "0:03"},
		{5*time.Minute + 3*time.Second, "5:03"},
		{10*time.Minute + 59*time.Second + 999*time.Millisecond, "10:59"},
		{75 * time.Minute, "75:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCountdown(tt.d), "duration %s", tt.d)
	}
}
