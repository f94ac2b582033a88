package suggest_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SlotScheduler/internal/scheduler"
	"github.com/m04kA/SMC-SlotScheduler/pkg/metrics"
)

// UseCase use case подбора расписания и цен для варианта продукта
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	txManager    TxManager
	demand       DemandGenerator
	metrics      MetricsRecorder
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// demandGen и metricsRecorder могут быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TxManager,
	demandGen DemandGenerator,
	metricsRecorder MetricsRecorder,
	settings Settings,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if metricsRecorder == nil {
		metricsRecorder = nopMetrics{}
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		demand:       demandGen,
		metrics:      metricsRecorder,
		settings:     settings,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// snapshot данные, прочитанные в одной транзакции
type snapshot struct {
	variant  *domain.ProductVariant
	schedule *domain.StoreSchedule
	bookings []*domain.Booking
}

// Execute выполняет use case подбора расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	started := time.Now()
	requestID := uuid.NewString()

	resp, outcome, err := uc.execute(ctx, requestID, req)
	var prices []float64
	if resp != nil {
		prices = make([]float64, len(resp.Slots))
		for i, s := range resp.Slots {
			prices[i] = s.Price
		}
	}
	uc.metrics.ObserveSchedule(outcome, time.Since(started), prices)

	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, requestID string, req *Request) (*Response, string, error) {
	uc.logger.Info("SuggestSchedule[%s]: store=%d, product=%d, variant=%d, date=%s",
		requestID, req.StoreID, req.ProductID, req.VariantID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SuggestSchedule[%s]: validation failed: %v", requestID, err)
		return nil, metrics.OutcomeInvalid, err
	}

	resp := &Response{
		RequestID: requestID,
		Date:      req.Date,
		StoreID:   req.StoreID,
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Slots:     []Slot{},
	}

	// 2. Дата в прошлом: слотов нет, в БД не ходим
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Info("SuggestSchedule[%s]: date %s is in the past", requestID, req.Date.Format(domain.DateFormat))
		return resp, metrics.OutcomeEmpty, nil
	}

	// 3. Читаем каталог, расписание и бронирования в одном снимке
	win := uc.demandWindow(req.Date, now)
	snap, err := uc.loadSnapshot(ctx, req, win)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrVariantNotFound) {
			uc.logger.Warn("SuggestSchedule[%s]: variant id=%d of product id=%d not found",
				requestID, req.VariantID, req.ProductID)
			return nil, metrics.OutcomeNotFound, ErrVariantNotFound
		}
		uc.logger.Error("SuggestSchedule[%s]: failed to load snapshot: %v", requestID, err)
		return nil, metrics.OutcomeError, fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
	}

	// 4. Магазин закрыт или расписание на день недели не задано
	if snap.schedule == nil || !snap.schedule.IsOpen() {
		uc.logger.Info("SuggestSchedule[%s]: store id=%d is closed on %s",
			requestID, req.StoreID, req.Date.Format(domain.DateFormat))
		resp.Closed = true
		return resp, metrics.OutcomeClosed, nil
	}

	if d := snap.variant.DurationMinutes; d < domain.MinDurationMinutes || d > domain.MaxDurationMinutes {
		uc.logger.Error("SuggestSchedule[%s]: variant id=%d has invalid duration %d", requestID, snap.variant.ID, d)
		return nil, metrics.OutcomeError, fmt.Errorf("%w: variant duration %d minutes", ErrInvalidSchedule, d)
	}

	// 5. Конфигурация планировщика из часов работы и границ цен варианта
	cfg, err := scheduler.NewConfig(scheduler.Params{
		WorkStart:    snap.schedule.OpensAt.String(),
		WorkEnd:      snap.schedule.ClosesAt.String(),
		MinPrice:     snap.variant.MinPrice,
		MaxPrice:     snap.variant.MaxPrice,
		MaxParallel:  uc.settings.MaxParallel,
		BufferTime:   uc.settings.BufferMinutes,
		AvgThreshold: uc.settings.AvgThreshold,
		OverlapScope: uc.settings.OverlapScope,
	})
	if err != nil {
		uc.logger.Error("SuggestSchedule[%s]: invalid scheduler config: %v", requestID, err)
		return nil, metrics.OutcomeError, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	// 6. Заполняем журнал: реальные бронирования плюс синтетический спрос
	ledger, err := uc.buildLedger(requestID, win, snap.bookings)
	if err != nil {
		return nil, metrics.OutcomeError, err
	}

	// 7. Подбор слотов и цен
	result, err := scheduler.New(cfg).SuggestSchedule(ledger, req.Date, snap.variant.DurationMinutes, now)
	if err != nil {
		uc.logger.Error("SuggestSchedule[%s]: scheduler failed: %v", requestID, err)
		if errors.Is(err, scheduler.ErrConfiguration) {
			return nil, metrics.OutcomeError, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		return nil, metrics.OutcomeError, fmt.Errorf("%w: scheduler: %v", ErrInternal, err)
	}

	for _, s := range result.Slots {
		resp.Slots = append(resp.Slots, Slot{StartTime: s.StartTime, Price: s.Price})
	}
	if result.HasBestTime() {
		best := result.BestTime
		resp.BestTime = &best
	}

	outcome := metrics.OutcomeOK
	if len(resp.Slots) == 0 {
		outcome = metrics.OutcomeEmpty
	}

	uc.logger.Info("SuggestSchedule[%s]: %d slots, best=%s, avg overlap=%.2f",
		requestID, len(resp.Slots), result.BestTime, result.AverageOverlap)

	return resp, outcome, nil
}

func (uc *UseCase) loadSnapshot(ctx context.Context, req *Request, win window) (*snapshot, error) {
	snap := &snapshot{}

	err := uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		variant, err := uc.catalogRepo.GetVariant(ctx, req.ProductID, req.VariantID)
		if err != nil {
			return err
		}
		snap.variant = variant

		schedule, err := uc.catalogRepo.GetStoreSchedule(ctx, req.StoreID, domain.DayOfWeek(req.Date))
		if errors.Is(err, catalogRepo.ErrScheduleNotFound) {
			// Нет расписания: магазин закрыт, бронирования не нужны
			return nil
		}
		if err != nil {
			return err
		}
		snap.schedule = schedule
		if !schedule.IsOpen() {
			return nil
		}

		bookings, err := uc.bookingRepo.GetSnapshot(ctx, domain.BookingsFilter{
			StoreID:   req.StoreID,
			ProductID: &req.ProductID,
			DateFrom:  win.from,
			DateTo:    win.to,
		})
		if err != nil {
			return err
		}
		snap.bookings = bookings
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// window период, бронирования которого попадают в журнал
type window struct {
	from, to time.Time
}

// demandWindow для OverlapScopeDate - только запрошенная дата
// Для OverlapScopeAll - от сегодняшнего дня на DemandWindowDays вперед, но не короче запрошенной даты
func (uc *UseCase) demandWindow(date, now time.Time) window {
	day := calendarDay(date, date.Location())
	if uc.settings.OverlapScope != scheduler.OverlapScopeAll {
		return window{from: day, to: day}
	}

	from := calendarDay(now, date.Location())
	to := from.AddDate(0, 0, uc.settings.DemandWindowDays)
	if day.After(to) {
		to = day
	}
	return window{from: from, to: to}
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func (uc *UseCase) buildLedger(requestID string, win window, bookings []*domain.Booking) (*scheduler.Ledger, error) {
	ledger := scheduler.NewLedger()

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if err := ledger.Add(b.BookingDate.Format(domain.DateFormat), b.StartTime.String(), b.DurationMinutes); err != nil {
			uc.logger.Warn("SuggestSchedule[%s]: skip booking id=%d: %v", requestID, b.ID, err)
		}
	}

	if uc.demand != nil {
		seeded := 0
		for day := win.from; !day.After(win.to); day = day.AddDate(0, 0, 1) {
			n, err := uc.demand.Seed(ledger, day)
			if err != nil {
				uc.logger.Error("SuggestSchedule[%s]: failed to seed demand: %v", requestID, err)
				return nil, fmt.Errorf("%w: seed demand: %v", ErrInternal, err)
			}
			seeded += n
		}
		uc.logger.Info("SuggestSchedule[%s]: seeded %d synthetic bookings", requestID, seeded)
	}

	uc.logger.Info("SuggestSchedule[%s]: ledger holds %d bookings from %s to %s", requestID, ledger.Len(),
		win.from.Format(domain.DateFormat), win.to.Format(domain.DateFormat))

	return ledger, nil
}
