package scheduler

import "github.com/m04kA/SMC-SlotScheduler/pkg/types"

// GridStep шаг сетки кандидатов в минутах, не зависит от длительности услуги
const GridStep = 10

// ToMinutes переводит "H:MM", "HH:MM" или "HH:MM:SS" в минуты от полуночи
func ToMinutes(s string) (int, error) {
	return types.ParseMinutes(s)
}

// FormatMinutes форматирует минуты от полуночи как "HH:MM"
func FormatMinutes(minutes int) types.TimeString {
	return types.NewTimeStringFromMinutes(minutes)
}
