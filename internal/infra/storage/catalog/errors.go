package catalog

import "errors"

var (
	// ErrVariantNotFound возвращается, когда вариант продукта не найден
	ErrVariantNotFound = errors.New("catalog.repository: product variant not found")

	// ErrScheduleNotFound возвращается, когда у магазина нет расписания на день недели
	ErrScheduleNotFound = errors.New("catalog.repository: store schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
