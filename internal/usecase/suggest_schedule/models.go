package suggest_schedule

import (
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/scheduler"
	"github.com/m04kA/SMC-SlotScheduler/pkg/types"
)

// Request модель запроса на подбор расписания варианта продукта
type Request struct {
	StoreID   int64
	ProductID int64
	VariantID int64
	Date      time.Time // Дата без времени
}

// Response модель ответа
type Response struct {
	RequestID string
	Date      time.Time
	StoreID   int64
	ProductID int64
	VariantID int64
	Closed    bool              // Магазин не работает в этот день
	BestTime  *types.TimeString // nil, если свободного слота нет
	Slots     []Slot
}

// Slot слот с предложенной ценой
type Slot struct {
	StartTime types.TimeString
	Price     float64
}

// Settings параметры планировщика из конфигурации приложения
type Settings struct {
	MaxParallel      int
	BufferMinutes    int
	AvgThreshold     float64
	OverlapScope     scheduler.OverlapScope
	DemandWindowDays int // дней после сегодняшнего, за которые читается спрос при OverlapScopeAll
}
