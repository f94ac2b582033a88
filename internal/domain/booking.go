package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotScheduler/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusInProgress         BookingStatus = "in_progress"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByCompany BookingStatus = "cancelled_by_company"
	StatusNoShow             BookingStatus = "no_show"
)

// Booking represents an existing booking of a product at a store.
// Bookings are owned by the booking repository; the scheduler only reads a snapshot.
type Booking struct {
	ID              int64
	StoreID         int64
	ProductID       int64
	VariantID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus
}

// IsActive returns true if the booking still occupies capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser &&
		b.Status != StatusCancelledByCompany &&
		b.Status != StatusNoShow
}

// BookingsFilter фильтр для получения снимка бронирований
type BookingsFilter struct {
	StoreID         int64     // Обязательный параметр
	ProductID       *int64    // Фильтр по продукту (опционально, если nil - все продукты магазина)
	DateFrom        time.Time // Начало периода (включительно)
	DateTo          time.Time // Конец периода (включительно), равен DateFrom для одной даты
	IncludeInactive bool      // Включать ли неактивные бронирования (отмененные, no-show)
}
