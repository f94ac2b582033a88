package scheduler

import (
	"errors"

	"github.com/m04kA/SMC-SlotScheduler/pkg/types"
)

var (
	// ErrInvalidTimeFormat возвращается при некорректной строке времени
	ErrInvalidTimeFormat = types.ErrInvalidTimeFormat

	// ErrConfiguration возвращается при некорректных параметрах планировщика
	ErrConfiguration = errors.New("scheduler: invalid configuration")

	// ErrInvalidAppointment возвращается при попытке добавить некорректное бронирование в журнал
	ErrInvalidAppointment = errors.New("scheduler: invalid appointment")
)
