package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SlotScheduler/internal/config"
	"github.com/m04kA/SMC-SlotScheduler/internal/demand"
	bookingRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SlotScheduler/internal/scheduler"
	suggestScheduleUC "github.com/m04kA/SMC-SlotScheduler/internal/usecase/suggest_schedule"
	"github.com/m04kA/SMC-SlotScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotScheduler/pkg/logger"
	"github.com/m04kA/SMC-SlotScheduler/pkg/metrics"
	"github.com/m04kA/SMC-SlotScheduler/pkg/txmanager"
)

// Флаги команды suggest
var (
	configPath string
	storeID    int64
	productID  int64
	variantID  int64
	dateFlag   string
	nowFlag    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "smc-scheduler",
		Short:        "Slot scheduler with capacity limits and demand-based pricing",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to TOML config")

	suggest := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest start times and prices for a product variant on a date",
		RunE:  runSuggest,
	}
	suggest.Flags().Int64Var(&storeID, "store", 0, "store id")
	suggest.Flags().Int64Var(&productID, "product", 0, "product id")
	suggest.Flags().Int64Var(&variantID, "variant", 0, "product variant id")
	suggest.Flags().StringVar(&dateFlag, "date", "", "date, YYYY-MM-DD")
	suggest.Flags().StringVar(&nowFlag, "now", "", "override current time, RFC3339")
	for _, name := range []string{"store", "product", "variant", "date"} {
		_ = suggest.MarkFlagRequired(name)
	}

	root.AddCommand(suggest)
	return root
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return fmt.Errorf("invalid scheduler timezone: %w", err)
	}

	date, err := time.ParseInLocation("2006-01-02", dateFlag, loc)
	if err != nil {
		return fmt.Errorf("invalid --date %q: %w", dateFlag, err)
	}

	var timeProvider suggestScheduleUC.TimeProvider = &suggestScheduleUC.RealTimeProvider{Location: loc}
	if nowFlag != "" {
		now, err := time.Parse(time.RFC3339, nowFlag)
		if err != nil {
			return fmt.Errorf("invalid --now %q: %w", nowFlag, err)
		}
		timeProvider = fixedTimeProvider{now: now.In(loc)}
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled, textfile %s", cfg.Metrics.TextfilePath)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Database.QueryTimeoutDuration())
	defer cancel()

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		log.Error("Failed to ping database: %v", err)
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обертка БД пишет метрики только при включенном сборе
	var recorder dbmetrics.Recorder
	var recorderMetrics suggestScheduleUC.MetricsRecorder
	if metricsCollector != nil {
		recorder = metricsCollector
		recorderMetrics = metricsCollector
	}
	wrappedDB := dbmetrics.Wrap(db, recorder)

	// Синтетический спрос (если включен)
	var demandGen suggestScheduleUC.DemandGenerator
	if cfg.Demand.Enabled {
		gen, err := demand.NewGenerator(demand.Config{
			Seed:           cfg.Demand.Seed,
			BookingsPerDay: cfg.Demand.BookingsPerDay,
			PeakHours:      cfg.Demand.PeakHours,
			PeakShare:      cfg.Demand.PeakShare,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize demand generator: %w", err)
		}
		demandGen = gen
		log.Info("Synthetic demand enabled (seed=%d, bookings per day=%d)", cfg.Demand.Seed, cfg.Demand.BookingsPerDay)
	}

	useCase := suggestScheduleUC.NewUseCase(
		bookingRepo.NewRepository(wrappedDB),
		catalogRepo.NewRepository(wrappedDB),
		txmanager.NewTransactionManager(wrappedDB),
		demandGen,
		recorderMetrics,
		suggestScheduleUC.Settings{
			MaxParallel:      cfg.Scheduler.MaxParallel,
			BufferMinutes:    cfg.Scheduler.BufferMinutes,
			AvgThreshold:     cfg.Scheduler.AvgThreshold,
			OverlapScope:     scheduler.OverlapScope(cfg.Scheduler.OverlapScope),
			DemandWindowDays: cfg.Scheduler.OverlapWindowDays,
		},
		timeProvider,
		log,
	)

	resp, execErr := useCase.Execute(ctx, &suggestScheduleUC.Request{
		StoreID:   storeID,
		ProductID: productID,
		VariantID: variantID,
		Date:      date,
	})

	if metricsCollector != nil {
		wrappedDB.RecordPoolStats()
		if err := metricsCollector.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			log.Warn("Failed to write metrics: %v", err)
		}
	}

	if execErr != nil {
		return execErr
	}

	return writeResponse(cmd.OutOrStdout(), resp)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}
