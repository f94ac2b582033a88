package scheduler

import "math"

// SuggestPrice рассчитывает цену слота по локальному спросу
// count - число бронирований, пересекающихся со слотом, avgCount - среднее по всем кандидатам дня
// Когда count достигает avgCount*(1+AvgThreshold), цена упирается в MaxPrice
func SuggestPrice(count int, avgCount float64, cfg Config) float64 {
	var price float64

	saturation := avgCount * (1 + cfg.AvgThreshold)
	switch {
	case avgCount == 0:
		// Нет спроса в этот день - нижняя граница
		price = cfg.MinPrice
	case float64(count) >= saturation:
		price = cfg.MaxPrice
	default:
		ratio := float64(count) / saturation
		price = cfg.MinPrice + (cfg.MaxPrice-cfg.MinPrice)*ratio
	}

	return NicePrice(roundCents(price), cfg.MinPrice, cfg.MaxPrice)
}

// NicePrice округляет цену до ближайшего значения вида X.49 или X.90 в пределах [minPrice, maxPrice]
// При равенстве расстояний выбирается X.49. Если ни одно "красивое" значение не помещается
// под maxPrice, возвращается maxPrice
func NicePrice(price, minPrice, maxPrice float64) float64 {
	price = math.Min(price, maxPrice)
	base := math.Floor(price)

	low := math.Min(roundCents(base+0.49), maxPrice)
	high := math.Min(roundCents(base+0.90), maxPrice)

	nice := low
	if math.Abs(price-high) < math.Abs(price-low) {
		nice = high
	}

	if nice < minPrice {
		nice = niceAtLeast(minPrice, maxPrice)
	}
	return nice
}

// niceAtLeast наименьшее значение вида X.49/X.90, не меньшее floor, ограниченное сверху maxPrice
func niceAtLeast(floor, maxPrice float64) float64 {
	base := math.Floor(floor)
	for _, c := range []float64{base + 0.49, base + 0.90, base + 1.49} {
		c = roundCents(c)
		if c >= floor {
			return math.Min(c, maxPrice)
		}
	}
	return maxPrice
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
