package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotScheduler/pkg/psqlbuilder"
)

// Repository читает бронирования. Записью бронирований владеет другой сервис
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSnapshot возвращает бронирования магазина за период, отсортированные по дате и времени начала
// Если в контексте передана транзакция, чтение идет в ней
func (r *Repository) GetSnapshot(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildSnapshotQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSnapshot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSnapshot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func buildSnapshotQuery(filter domain.BookingsFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(
		"id",
		"store_id",
		"product_id",
		"variant_id",
		"booking_date",
		"start_time",
		"duration_minutes",
		"status",
	).
		From("bookings").
		Where(squirrel.Eq{"store_id": filter.StoreID})

	// Фильтрация по периоду
	from := filter.DateFrom.Format(domain.DateFormat)
	to := filter.DateTo.Format(domain.DateFormat)
	if filter.DateTo.IsZero() || from == to {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": from})
	} else {
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"booking_date": from}).
			Where(squirrel.LtOrEq{"booking_date": to})
	}

	// Фильтрация по продукту (если указан)
	if filter.ProductID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}

	// Отмененные и no-show не занимают мощность
	if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	return selectBuilder.OrderBy("booking_date ASC", "start_time ASC", "id ASC")
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking

		err := rows.Scan(
			&booking.ID,
			&booking.StoreID,
			&booking.ProductID,
			&booking.VariantID,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.DurationMinutes,
			&booking.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
