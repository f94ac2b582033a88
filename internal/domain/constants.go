package domain

// Default scheduling values
const (
	DefaultMaxParallel      = 2
	DefaultBufferMinutes    = 60 // 1 hour
	DefaultAvgThreshold     = 0.1
	DefaultProductThreshold = 0.3 // порог для расписания продуктов магазина
)

// Границы длительности варианта продукта
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 24 * 60
)

// DateFormat формат даты бронирования
const DateFormat = "2006-01-02" // YYYY-MM-DD

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при построении снимка занятости
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByCompany,
	StatusNoShow,
}
