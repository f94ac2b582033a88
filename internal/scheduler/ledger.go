package scheduler

import (
	"fmt"

	"github.com/m04kA/SMC-SlotScheduler/pkg/types"
)

// Interval полуоткрытый интервал [Start, End) в минутах от полуночи
type Interval struct {
	Start int
	End   int
}

// Appointment бронирование в журнале: дата "YYYY-MM-DD" и интервал в минутах
type Appointment struct {
	Date  string
	Start int
	End   int
}

// Ledger журнал существующих бронирований
// Только добавление, удаления нет. Не потокобезопасен: заполняется одним
// вызывающим, затем передается в SuggestSchedule как снимок
type Ledger struct {
	appointments []Appointment
}

// NewLedger создает пустой журнал
func NewLedger() *Ledger {
	return &Ledger{appointments: make([]Appointment, 0)}
}

// Add добавляет бронирование длительностью durationMinutes, начинающееся в start
// Конец обрезается полуночью: бронирования не переходят на следующую дату
func (l *Ledger) Add(date string, start string, durationMinutes int) error {
	startMin, err := ToMinutes(start)
	if err != nil {
		return err
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidAppointment, durationMinutes)
	}
	if date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidAppointment)
	}

	end := min(startMin+durationMinutes, types.MinutesPerDay)
	l.appointments = append(l.appointments, Appointment{Date: date, Start: startMin, End: end})
	return nil
}

// ForDate возвращает интервалы бронирований на указанную дату
func (l *Ledger) ForDate(date string) []Interval {
	result := make([]Interval, 0)
	for _, a := range l.appointments {
		if a.Date == date {
			result = append(result, Interval{Start: a.Start, End: a.End})
		}
	}
	return result
}

// All возвращает интервалы всех бронирований журнала независимо от даты
func (l *Ledger) All() []Interval {
	result := make([]Interval, len(l.appointments))
	for i, a := range l.appointments {
		result[i] = Interval{Start: a.Start, End: a.End}
	}
	return result
}

// Len количество бронирований в журнале
func (l *Ledger) Len() int {
	return len(l.appointments)
}
