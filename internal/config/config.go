package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

var validate = validator.New()

// Config конфигурация приложения
type Config struct {
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Database  DatabaseConfig  `toml:"database"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Demand    DemandConfig    `toml:"demand"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name" validate:"required_if=Enabled true"`
	// Путь к .prom файлу для textfile-коллектора node_exporter
	TextfilePath string `toml:"textfile_path" validate:"required_if=Enabled true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"` // секунды
	QueryTimeout    int    `toml:"query_timeout" validate:"min=1"`     // секунды
}

// SchedulerConfig параметры планировщика. Рабочие часы и цены берутся из каталога
type SchedulerConfig struct {
	MaxParallel       int     `toml:"max_parallel" validate:"min=1,max=100"`
	BufferMinutes     int     `toml:"buffer_minutes" validate:"min=0,max=10080"`
	AvgThreshold      float64 `toml:"avg_threshold" validate:"gte=0"`
	OverlapScope      string  `toml:"overlap_scope" validate:"oneof=date all"`
	OverlapWindowDays int     `toml:"overlap_window_days" validate:"min=0,max=366"` // дней от сегодняшнего, только для "all"
	Timezone          string  `toml:"timezone" validate:"required,timezone"`
}

// DemandConfig синтетический спрос, добавляемый к реальным бронированиям
type DemandConfig struct {
	Enabled        bool    `toml:"enabled"`
	Seed           uint64  `toml:"seed"`
	BookingsPerDay int     `toml:"bookings_per_day" validate:"min=0"`
	PeakShare      float64 `toml:"peak_share" validate:"gte=0,lte=1"`
	PeakHours      []int   `toml:"peak_hours" validate:"dive,min=0,max=23"`
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию и проверяет ее
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "smc_slot_scheduler",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			QueryTimeout:    5,
		},
		Scheduler: SchedulerConfig{
			MaxParallel:       domain.DefaultMaxParallel,
			BufferMinutes:     domain.DefaultBufferMinutes,
			AvgThreshold:      domain.DefaultProductThreshold,
			OverlapScope:      "date",
			OverlapWindowDays: 30,
			Timezone:          "UTC",
		},
		Demand: DemandConfig{
			Seed:           1,
			BookingsPerDay: 160,
			PeakShare:      0.6,
			PeakHours:      []int{8, 12, 18, 20},
		},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Location часовой пояс, в котором считается "сейчас"
func (s SchedulerConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// QueryTimeoutDuration таймаут на один запрос подбора расписания
func (d DatabaseConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(d.QueryTimeout) * time.Second
}
