package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotScheduler/pkg/types"
)

// Repository читает каталог: варианты продуктов и расписание магазинов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetVariant получает вариант продукта
func (r *Repository) GetVariant(ctx context.Context, productID, variantID int64) (*domain.ProductVariant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildVariantQuery(productID, variantID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVariant - build select query: %v", ErrBuildQuery, err)
	}

	var variant domain.ProductVariant
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&variant.ID,
		&variant.ProductID,
		&variant.Name,
		&variant.DurationMinutes,
		&variant.MinPrice,
		&variant.MaxPrice,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVariantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVariant - scan variant: %v", ErrScanRow, err)
	}

	return &variant, nil
}

// GetStoreSchedule получает часы работы магазина на день недели (1 = воскресенье)
func (r *Repository) GetStoreSchedule(ctx context.Context, storeID int64, dayOfWeek int) (*domain.StoreSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildScheduleQuery(storeID, dayOfWeek).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStoreSchedule - build select query: %v", ErrBuildQuery, err)
	}

	var (
		schedule          domain.StoreSchedule
		opensAt, closesAt types.TimeString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.StoreID,
		&schedule.DayOfWeek,
		&opensAt,
		&closesAt,
		&schedule.IsClosed,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStoreSchedule - scan schedule: %v", ErrScanRow, err)
	}

	// NULL в БД означает, что граница не задана
	if !opensAt.IsZero() {
		schedule.OpensAt = &opensAt
	}
	if !closesAt.IsZero() {
		schedule.ClosesAt = &closesAt
	}

	return &schedule, nil
}

func buildVariantQuery(productID, variantID int64) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"product_id",
		"name",
		"duration_minutes",
		"min_price",
		"max_price",
	).
		From("product_variants").
		Where(squirrel.Eq{"id": variantID, "product_id": productID})
}

func buildScheduleQuery(storeID int64, dayOfWeek int) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"store_id",
		"day_of_week",
		"opens_at",
		"closes_at",
		"is_closed",
	).
		From("store_schedules").
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek})
}
