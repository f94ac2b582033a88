// Package scheduler подбирает свободные слоты на дату с учетом ограничения
// параллельных бронирований и рабочего окна и назначает каждому слоту цену
// в зависимости от локального спроса.
package scheduler

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/pkg/types"
)

// Result результат подбора расписания
type Result struct {
	BestTime       types.TimeString // пусто, если подходящего слота нет
	Slots          []domain.PricedSlot
	AverageOverlap float64
}

// HasBestTime возвращает true, если найден лучший слот
func (r *Result) HasBestTime() bool {
	return !r.BestTime.IsZero()
}

// Scheduler фасад планировщика. Не хранит бронирований: журнал передается в каждый вызов
type Scheduler struct {
	cfg Config
}

// New создает планировщик с уже проверенной конфигурацией
func New(cfg Config) *Scheduler {
	return &Scheduler{cfg: cfg}
}

// SuggestSchedule подбирает слоты длительностью duration минут на дату date
// now передается явно при каждом вызове
//
// Дата в прошлом - пустой результат. Для сегодняшней даты слоты раньше now+BufferTime
// отбрасываются до расчета цен. Лучший слот - самый ранний из оставшихся
func (s *Scheduler) SuggestSchedule(ledger *Ledger, date time.Time, duration int, now time.Time) (*Result, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrConfiguration, duration)
	}
	if ledger == nil {
		ledger = NewLedger()
	}

	day := calendarDate(date)
	today := calendarDate(now)
	if day.Before(today) {
		return emptyResult(), nil
	}

	dayBookings := ledger.ForDate(date.Format(domain.DateFormat))
	candidates := GenerateCandidates(dayBookings, duration, s.cfg.MaxParallel, s.cfg.WorkStart, s.cfg.WorkEnd)

	lowerBound := s.cfg.WorkStart
	if day.Equal(today) {
		lowerBound = now.Hour()*60 + now.Minute() + s.cfg.BufferTime
		candidates = filterFrom(candidates, lowerBound)
	}

	if len(candidates) == 0 {
		return emptyResult(), nil
	}

	demand := dayBookings
	if s.cfg.OverlapScope == OverlapScopeAll {
		demand = ledger.All()
	}

	counts := make([]int, len(candidates))
	total := 0
	for i, c := range candidates {
		counts[i] = CountOverlapping(demand, c, c+duration)
		total += counts[i]
	}
	avgCount := float64(total) / float64(len(candidates))

	slots := make([]domain.PricedSlot, len(candidates))
	for i, c := range candidates {
		slots[i] = domain.PricedSlot{
			StartTime: FormatMinutes(c),
			Price:     SuggestPrice(counts[i], avgCount, s.cfg),
		}
	}

	result := &Result{Slots: slots, AverageOverlap: avgCount}
	if best, ok := EarliestFeasible(candidates, lowerBound); ok {
		result.BestTime = FormatMinutes(best)
	}
	return result, nil
}

func emptyResult() *Result {
	return &Result{Slots: []domain.PricedSlot{}}
}

// calendarDate отбрасывает время и часовой пояс, оставляя календарную дату
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
