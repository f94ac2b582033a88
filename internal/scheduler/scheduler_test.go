package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/pkg/types"
)

var (
	testNow      = time.Date(2026, 10, 15, 7, 30, 0, 0, time.UTC)
	testToday    = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	testTomorrow = testToday.AddDate(0, 0, 1)
)

func newTestScheduler(t *testing.T, modify func(p *Params)) *Scheduler {
	t.Helper()

	params := DefaultParams("08:00", "12:00", 20, 50)
	if modify != nil {
		modify(&params)
	}
	cfg, err := NewConfig(params)
	require.NoError(t, err)
	return New(cfg)
}

func slotTimes(slots []domain.PricedSlot) []string {
	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = s.StartTime.String()
	}
	return times
}

func TestSuggestSchedule_FutureDateEmptyLedger(t *testing.T) {
	s := newTestScheduler(t, nil)

	result, err := s.SuggestSchedule(NewLedger(), testTomorrow, 30, testNow)
	require.NoError(t, err)

	require.Len(t, result.Slots, 22)
	assert.Equal(t, "08:00", result.Slots[0].StartTime.String())
	assert.Equal(t, "11:30", result.Slots[21].StartTime.String())
	for _, slot := range result.Slots {
		assert.InDelta(t, 20.49, slot.Price, 1e-9)
	}
	assert.Equal(t, types.TimeString("08:00"), result.BestTime)
	assert.True(t, result.HasBestTime())
	assert.Zero(t, result.AverageOverlap)
}

func TestSuggestSchedule_CapacityReached(t *testing.T) {
	s := newTestScheduler(t, nil)

	ledger := NewLedger()
	require.NoError(t, ledger.Add("2026-10-16", "08:00", 60))
	require.NoError(t, ledger.Add("2026-10-16", "08:00", 60))

	result, err := s.SuggestSchedule(ledger, testTomorrow, 30, testNow)
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("09:00"), result.BestTime)
	require.Len(t, result.Slots, 16)
	assert.Equal(t, "09:00", result.Slots[0].StartTime.String())
	assert.NotContains(t, slotTimes(result.Slots), "08:30")
}

func TestSuggestSchedule_DemandRaisesPrice(t *testing.T) {
	s := newTestScheduler(t, nil)

	ledger := NewLedger()
	require.NoError(t, ledger.Add("2026-10-16", "09:00", 60))

	result, err := s.SuggestSchedule(ledger, testTomorrow, 30, testNow)
	require.NoError(t, err)
	require.Len(t, result.Slots, 22)

	// Слоты 08:40-09:50 пересекаются с бронированием: 8 из 22
	assert.InDelta(t, 8.0/22.0, result.AverageOverlap, 1e-9)
	for _, slot := range result.Slots {
		minutes, err := slot.StartTime.Minutes()
		require.NoError(t, err)
		if minutes >= 520 && minutes <= 590 {
			assert.InDelta(t, 50, slot.Price, 1e-9, slot.StartTime)
		} else {
			assert.InDelta(t, 20.49, slot.Price, 1e-9, slot.StartTime)
		}
	}
	assert.Equal(t, types.TimeString("08:00"), result.BestTime)
}

func TestSuggestSchedule_SameDayRespectsBuffer(t *testing.T) {
	s := newTestScheduler(t, nil)
	now := time.Date(2026, 10, 15, 8, 15, 0, 0, time.UTC)

	result, err := s.SuggestSchedule(NewLedger(), testToday, 30, now)
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("09:20"), result.BestTime)
	require.Len(t, result.Slots, 14)
	for _, slot := range result.Slots {
		minutes, err := slot.StartTime.Minutes()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, minutes, 8*60+15+60)
	}
}

func TestSuggestSchedule_SameDayAfterHours(t *testing.T) {
	s := newTestScheduler(t, nil)
	now := time.Date(2026, 10, 15, 11, 50, 0, 0, time.UTC)

	result, err := s.SuggestSchedule(NewLedger(), testToday, 30, now)
	require.NoError(t, err)
	assert.False(t, result.HasBestTime())
	assert.Empty(t, result.Slots)

	// Тот же запрос на завтра возвращает слоты
	result, err = s.SuggestSchedule(NewLedger(), testTomorrow, 30, now)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("08:00"), result.BestTime)
	assert.Len(t, result.Slots, 22)
}

func TestSuggestSchedule_PastDate(t *testing.T) {
	s := newTestScheduler(t, nil)

	ledger := NewLedger()
	require.NoError(t, ledger.Add("2026-10-14", "08:00", 30))

	result, err := s.SuggestSchedule(ledger, testToday.AddDate(0, 0, -1), 30, testNow)
	require.NoError(t, err)
	assert.True(t, result.BestTime.IsZero())
	assert.NotNil(t, result.Slots)
	assert.Empty(t, result.Slots)
}

func TestSuggestSchedule_OverlapScope(t *testing.T) {
	ledger := NewLedger()
	// Бронирование на другую дату влияет на цену только в режиме OverlapScopeAll
	require.NoError(t, ledger.Add("2026-10-17", "09:00", 60))

	byDate := newTestScheduler(t, nil)
	result, err := byDate.SuggestSchedule(ledger, testTomorrow, 30, testNow)
	require.NoError(t, err)
	for _, slot := range result.Slots {
		assert.InDelta(t, 20.49, slot.Price, 1e-9)
	}

	all := newTestScheduler(t, func(p *Params) { p.OverlapScope = OverlapScopeAll })
	result, err = all.SuggestSchedule(ledger, testTomorrow, 30, testNow)
	require.NoError(t, err)
	require.Len(t, result.Slots, 22)
	assert.InDelta(t, 50, result.Slots[6].Price, 1e-9) // 09:00
	assert.InDelta(t, 20.49, result.Slots[0].Price, 1e-9)
}

func TestSuggestSchedule_Properties(t *testing.T) {
	s := newTestScheduler(t, func(p *Params) { p.AvgThreshold = 0.3 })

	ledger := NewLedger()
	for _, b := range []struct {
		start    string
		duration int
	}{
		{"08:00", 90}, {"08:00", 45}, {"09:30", 20}, {"10:10", 60}, {"10:40", 30}, {"11:00", 40},
	} {
		require.NoError(t, ledger.Add("2026-10-16", b.start, b.duration))
	}

	first, err := s.SuggestSchedule(ledger, testTomorrow, 40, testNow)
	require.NoError(t, err)
	second, err := s.SuggestSchedule(ledger, testTomorrow, 40, testNow)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	prev := -1
	for _, slot := range first.Slots {
		minutes, err := slot.StartTime.Minutes()
		require.NoError(t, err)
		assert.Greater(t, minutes, prev)
		assert.Zero(t, (minutes-480)%GridStep)
		assert.LessOrEqual(t, minutes+40, 720)
		assert.GreaterOrEqual(t, slot.Price, 20.0)
		assert.LessOrEqual(t, slot.Price, 50.0)
		prev = minutes
	}
	assert.Equal(t, 6, ledger.Len())
}

func TestSuggestSchedule_InvalidDuration(t *testing.T) {
	s := newTestScheduler(t, nil)

	_, err := s.SuggestSchedule(NewLedger(), testTomorrow, 0, testNow)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestSuggestSchedule_NilLedger(t *testing.T) {
	s := newTestScheduler(t, nil)

	result, err := s.SuggestSchedule(nil, testTomorrow, 30, testNow)
	require.NoError(t, err)
	assert.Len(t, result.Slots, 22)
}
