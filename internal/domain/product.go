package domain

// ProductVariant is a bookable variant of a store product.
// Duration and the price bounds feed the scheduler.
type ProductVariant struct {
	ID              int64
	ProductID       int64
	Name            string
	DurationMinutes int
	MinPrice        float64
	MaxPrice        float64
}
