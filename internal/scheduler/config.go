package scheduler

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// OverlapScope определяет, какие бронирования учитываются при подсчете спроса для цены
type OverlapScope string

const (
	// OverlapScopeDate учитывает только бронирования запрошенной даты
	OverlapScopeDate OverlapScope = "date"
	// OverlapScopeAll учитывает все бронирования журнала независимо от даты
	OverlapScopeAll OverlapScope = "all"
)

var validate = validator.New()

// Params исходные параметры планировщика, как они приходят от коллабораторов
type Params struct {
	WorkStart    string       `validate:"required"`
	WorkEnd      string       `validate:"required"`
	MinPrice     float64      `validate:"gte=0"`
	MaxPrice     float64      `validate:"gtefield=MinPrice"`
	MaxParallel  int          `validate:"min=1"`
	BufferTime   int          `validate:"gte=0"`
	AvgThreshold float64      `validate:"gte=0"`
	OverlapScope OverlapScope `validate:"omitempty,oneof=date all"`
}

// DefaultParams параметры со значениями по умолчанию для ограничений и порогов
func DefaultParams(workStart, workEnd string, minPrice, maxPrice float64) Params {
	return Params{
		WorkStart:    workStart,
		WorkEnd:      workEnd,
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		MaxParallel:  domain.DefaultMaxParallel,
		BufferTime:   domain.DefaultBufferMinutes,
		AvgThreshold: domain.DefaultAvgThreshold,
		OverlapScope: OverlapScopeDate,
	}
}

// Config неизменяемая конфигурация одного запроса расписания
type Config struct {
	WorkStart    int // минуты от полуночи
	WorkEnd      int
	MinPrice     float64
	MaxPrice     float64
	MaxParallel  int
	BufferTime   int // минуты
	AvgThreshold float64
	OverlapScope OverlapScope
}

// NewConfig валидирует параметры и строит Config
func NewConfig(p Params) (Config, error) {
	if err := validate.Struct(p); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	workStart, err := ToMinutes(p.WorkStart)
	if err != nil {
		return Config{}, fmt.Errorf("%w: work start: %v", ErrConfiguration, err)
	}
	workEnd, err := ToMinutes(p.WorkEnd)
	if err != nil {
		return Config{}, fmt.Errorf("%w: work end: %v", ErrConfiguration, err)
	}
	if workEnd <= workStart {
		return Config{}, fmt.Errorf("%w: work end %s must be after work start %s", ErrConfiguration, p.WorkEnd, p.WorkStart)
	}

	scope := p.OverlapScope
	if scope == "" {
		scope = OverlapScopeDate
	}

	return Config{
		WorkStart:    workStart,
		WorkEnd:      workEnd,
		MinPrice:     p.MinPrice,
		MaxPrice:     p.MaxPrice,
		MaxParallel:  p.MaxParallel,
		BufferTime:   p.BufferTime,
		AvgThreshold: p.AvgThreshold,
		OverlapScope: scope,
	}, nil
}
