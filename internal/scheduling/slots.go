// Package scheduling содержит выбор времени урока и проверку доступа к видео.
package scheduling

import "time"

const (
	// SlotStep шаг сетки слотов
	SlotStep = 10 * time.Minute
	// SlotCount сколько ближайших слотов предлагается
	SlotCount = 6
)

// GenerateSlots возвращает SlotCount ближайших слотов по сетке SlotStep.
// Если now уже на границе сетки, текущая граница пропускается:
// слот успел бы пройти до подтверждения записи.
func GenerateSlots(now time.Time) []time.Time {
	first := now.Truncate(time.Minute)
	remainder := 10 - first.Minute()%10
	first = first.Add(time.Duration(remainder) * time.Minute)

	slots := make([]time.Time, 0, SlotCount)
	for i := 0; i < SlotCount; i++ {
		slots = append(slots, first.Add(time.Duration(i)*SlotStep))
	}
	return slots
}
