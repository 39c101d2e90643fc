package slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Calculator нарезает рабочее окно филиала на слоты фиксированной длины
type Calculator struct {
	durationMinutes int
}

// NewCalculator создает калькулятор. durationMinutes <= 0 заменяется значением по умолчанию.
func NewCalculator(durationMinutes int) *Calculator {
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultSlotDurationMinutes
	}
	return &Calculator{durationMinutes: durationMinutes}
}

// DurationMinutes длина слота в минутах
func (c *Calculator) DurationMinutes() int {
	return c.durationMinutes
}

// ComputeSlots возвращает слоты филиала на дату date (в часовом поясе date).
// Слоты идут подряд от открытия, последний заканчивается не позже закрытия.
// Прошедшая дата, прошедшие слоты сегодняшнего дня и филиал без рабочего окна дают пустой результат.
// Занятость не заполняется: Available=false, CurrentBookings=0.
func (c *Calculator) ComputeSlots(branch *domain.Branch, date time.Time, now time.Time) []domain.TimeSlot {
	result := make([]domain.TimeSlot, 0)

	if !branch.HasOperatingWindow() {
		return result
	}

	loc := date.Location()
	day := startOfDay(date)
	if day.Before(startOfDay(now.In(loc))) {
		return result
	}

	opening := branch.OpeningTime.Minutes()
	closing := branch.ClosingTime.Minutes()

	for m := opening; m+c.durationMinutes <= closing; m += c.durationMinutes {
		start := atMinute(day, m)
		if start.Before(now) {
			continue
		}
		result = append(result, domain.TimeSlot{
			Start:       start,
			End:         atMinute(day, m+c.durationMinutes),
			MaxBookings: branch.MaxConcurrentAppointmentsPerSlot,
		})
	}

	return result
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// atMinute возвращает момент minute минут от начала дня day по настенным часам
func atMinute(day time.Time, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, minute/60, minute%60, 0, 0, day.Location())
}
