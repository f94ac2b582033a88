package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotScheduler/pkg/types"
)

// StoreSchedule describes the working hours of a store for one day of the week
type StoreSchedule struct {
	StoreID   int64
	DayOfWeek int // 1 = Sunday ... 7 = Saturday
	OpensAt   *types.TimeString
	ClosesAt  *types.TimeString
	IsClosed  bool
}

// IsOpen returns true if the store works on that day and both bounds are known
func (s *StoreSchedule) IsOpen() bool {
	return !s.IsClosed && s.OpensAt != nil && s.ClosesAt != nil
}

// DayOfWeek returns the store-schedule day number for a date: Sunday = 1, Saturday = 7
func DayOfWeek(date time.Time) int {
	return int(date.Weekday()) + 1
}
