package suggest_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrVariantNotFound возвращается, когда вариант продукта не найден
	ErrVariantNotFound = errors.New("product variant not found")

	// ErrInvalidSchedule возвращается, когда данные каталога не дают корректной конфигурации
	// планировщика: часы работы, границы цен или длительность варианта
	ErrInvalidSchedule = errors.New("invalid schedule configuration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
