package suggest_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/demand"
	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetSnapshot получает бронирования магазина на дату
	GetSnapshot(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetVariant(ctx context.Context, productID, variantID int64) (*domain.ProductVariant, error)
	GetStoreSchedule(ctx context.Context, storeID int64, dayOfWeek int) (*domain.StoreSchedule, error)
}

// TxManager выполняет чтения в одном снимке данных
type TxManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// DemandGenerator добавляет синтетические бронирования в журнал
type DemandGenerator interface {
	Seed(ledger demand.Ledger, date time.Time) (int, error)
}

// MetricsRecorder интерфейс для записи метрик
type MetricsRecorder interface {
	ObserveSchedule(outcome string, elapsed time.Duration, prices []float64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени в часовом поясе магазинов
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}

type nopMetrics struct{}

func (nopMetrics) ObserveSchedule(string, time.Duration, []float64) {}
