// Package demand генерирует синтетические бронирования, имитирующие загрузку точки
package demand

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/pkg/types"
)

var ErrInvalidConfig = errors.New("demand: invalid generator config")

const (
	firstHour = 4
	lastHour  = 23
)

var (
	minuteChoices   = []int{0, 10, 20, 30, 40, 50}
	durationChoices = []int{20, 30, 40, 60}
)

// Ledger журнал, в который добавляются сгенерированные бронирования
type Ledger interface {
	Add(date string, start string, durationMinutes int) error
}

// Config параметры генератора
type Config struct {
	Seed           uint64
	BookingsPerDay int
	PeakHours      []int
	PeakShare      float64 // вероятность выбрать час пик
}

// Generator детерминированный генератор: одна и та же пара (Seed, дата)
// всегда дает одинаковый набор бронирований
type Generator struct {
	cfg         Config
	normalHours []int
}

// NewGenerator проверяет конфигурацию и создает генератор
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.BookingsPerDay < 0 {
		return nil, fmt.Errorf("%w: bookings per day must not be negative", ErrInvalidConfig)
	}
	if cfg.PeakShare < 0 || cfg.PeakShare > 1 {
		return nil, fmt.Errorf("%w: peak share must be within [0, 1]", ErrInvalidConfig)
	}
	for _, h := range cfg.PeakHours {
		if h < 0 || h > lastHour {
			return nil, fmt.Errorf("%w: peak hour %d out of range", ErrInvalidConfig, h)
		}
	}

	normal := make([]int, 0, lastHour-firstHour+1)
	for h := firstHour; h <= lastHour; h++ {
		if !slices.Contains(cfg.PeakHours, h) {
			normal = append(normal, h)
		}
	}

	return &Generator{cfg: cfg, normalHours: normal}, nil
}

// Generate возвращает синтетические бронирования на дату
func (g *Generator) Generate(date time.Time) []domain.Booking {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewPCG(g.cfg.Seed, uint64(day.Unix())))

	bookings := make([]domain.Booking, 0, g.cfg.BookingsPerDay)
	for i := 0; i < g.cfg.BookingsPerDay; i++ {
		hour, ok := g.pickHour(rng)
		if !ok {
			break
		}
		minute := minuteChoices[rng.IntN(len(minuteChoices))]
		duration := durationChoices[rng.IntN(len(durationChoices))]

		bookings = append(bookings, domain.Booking{
			BookingDate:     day,
			StartTime:       types.NewTimeStringFromMinutes(hour*60 + minute),
			DurationMinutes: duration,
			Status:          domain.StatusConfirmed,
		})
	}
	return bookings
}

// Seed добавляет синтетические бронирования на дату в журнал
func (g *Generator) Seed(ledger Ledger, date time.Time) (int, error) {
	bookings := g.Generate(date)
	dateStr := date.Format(domain.DateFormat)
	for _, b := range bookings {
		if err := ledger.Add(dateStr, b.StartTime.String(), b.DurationMinutes); err != nil {
			return 0, fmt.Errorf("seed demand for %s: %w", dateStr, err)
		}
	}
	return len(bookings), nil
}

func (g *Generator) pickHour(rng *rand.Rand) (int, bool) {
	usePeak := len(g.cfg.PeakHours) > 0 && rng.Float64() < g.cfg.PeakShare
	if usePeak || len(g.normalHours) == 0 {
		if len(g.cfg.PeakHours) == 0 {
			return 0, false
		}
		return g.cfg.PeakHours[rng.IntN(len(g.cfg.PeakHours))], true
	}
	return g.normalHours[rng.IntN(len(g.normalHours))], true
}
