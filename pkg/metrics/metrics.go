// Package metrics собирает метрики планировщика в отдельный prometheus-реестр
package metrics

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы запроса подбора расписания
const (
	OutcomeOK       = "ok"
	OutcomeClosed   = "closed"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	registry *prometheus.Registry

	ScheduleRequests *prometheus.CounterVec
	ScheduleDuration prometheus.Histogram
	Candidates       prometheus.Histogram
	SuggestedPrices  prometheus.Histogram

	DBQueryDuration *prometheus.HistogramVec
	DBOpenConns     prometheus.Gauge
	DBInUseConns    prometheus.Gauge
	DBIdleConns     prometheus.Gauge
	DBWaitCount     prometheus.Gauge
}

// New создает и регистрирует коллекторы с префиксом serviceName
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ScheduleRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "schedule_requests_total",
			Help:      "Schedule suggestion requests by outcome",
		}, []string{"outcome"}),
		ScheduleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "schedule_duration_seconds",
			Help:      "Time spent suggesting a schedule",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		Candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "schedule_candidates",
			Help:      "Number of priced slots returned per request",
			Buckets:   prometheus.LinearBuckets(0, 12, 12),
		}),
		SuggestedPrices: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "suggested_price",
			Help:      "Suggested slot prices",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		DBOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_open_connections",
			Help:      "Open database connections",
		}),
		DBInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_in_use_connections",
			Help:      "Database connections in use",
		}),
		DBIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_idle_connections",
			Help:      "Idle database connections",
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}),
	}

	m.registry.MustRegister(
		m.ScheduleRequests,
		m.ScheduleDuration,
		m.Candidates,
		m.SuggestedPrices,
		m.DBQueryDuration,
		m.DBOpenConns,
		m.DBInUseConns,
		m.DBIdleConns,
		m.DBWaitCount,
	)

	return m
}

// Registry возвращает реестр коллекторов
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSchedule фиксирует один запрос подбора расписания
// Число слотов и цены пишутся только для исходов с ответом: ok, empty, closed
func (m *Metrics) ObserveSchedule(outcome string, elapsed time.Duration, prices []float64) {
	m.ScheduleRequests.WithLabelValues(outcome).Inc()
	m.ScheduleDuration.Observe(elapsed.Seconds())

	switch outcome {
	case OutcomeOK, OutcomeEmpty, OutcomeClosed:
	default:
		return
	}
	m.Candidates.Observe(float64(len(prices)))
	for _, p := range prices {
		m.SuggestedPrices.Observe(p)
	}
}

// ObserveQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveQuery(operation string, elapsed time.Duration) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SetPoolStats обновляет метрики пула соединений
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	m.DBOpenConns.Set(float64(stats.OpenConnections))
	m.DBInUseConns.Set(float64(stats.InUse))
	m.DBIdleConns.Set(float64(stats.Idle))
	m.DBWaitCount.Set(float64(stats.WaitCount))
}

// WriteTextfile сохраняет метрики в формате textfile-коллектора node_exporter
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
