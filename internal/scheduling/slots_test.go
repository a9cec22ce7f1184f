package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots_Properties(t *testing.T) {
	base := time.Date(2025, 3, 14, 14, 0, 0, 0, time.UTC)

	// каждые 7 секунд в течение 30 минут
	for offset := time.Duration(0); offset < 30*time.Minute; offset += 7 * time.Second {
		now := base.Add(offset).Add(123 * time.Millisecond)
		slots := GenerateSlots(now)

		require.Len(t, slots, SlotCount)

		first := slots[0].Sub(now)
		assert.Greater(t, first, time.Duration(0), "now=%s", now)
		assert.LessOrEqual(t, first, 10*time.Minute, "now=%s", now)

		for i, slot := range slots {
			assert.True(t, slot.After(now))
			assert.Zero(t, slot.Minute()%10)
			assert.Zero(t, slot.Second())
			if i > 0 {
				assert.Equal(t, SlotStep, slot.Sub(slots[i-1]))
			}
		}
	}
}

func TestGenerateSlots_ExactBoundarySkipsCurrent(t *testing.T) {
	now := time.Date(2025, 3, 14, 14, 30, 0, 0, time.UTC)

	slots := GenerateSlots(now)

	assert.Equal(t, time.Date(2025, 3, 14, 14, 40, 0, 0, time.UTC), slots[0])
	assert.Equal(t, time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC), slots[5])
}

func TestGenerateSlots_MidMinute(t *testing.T) {
	now := time.Date(2025, 3, 14, 14, 33, 59, 0, time.UTC)

	slots := GenerateSlots(now)

	assert.Equal(t, time.Date(2025, 3, 14, 14, 40, 0, 0, time.UTC), slots[0])
}

func TestGenerateSlots_CrossesDay(t *testing.T) {
	now := time.Date(2025, 3, 14, 23, 25, 10, 0, time.UTC)

	slots := GenerateSlots(now)

	assert.Equal(t, time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC), slots[0])
	assert.Equal(t, time.Date(2025, 3, 15, 0, 20, 0, 0, time.UTC), slots[5])
}
