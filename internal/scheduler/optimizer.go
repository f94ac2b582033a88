package scheduler

// EarliestFeasible выбирает минимальный кандидат не раньше lowerBound
// Домен дискретный: не больше 144 точек сетки в сутках
func EarliestFeasible(candidates []int, lowerBound int) (int, bool) {
	best, found := 0, false
	for _, c := range candidates {
		if c < lowerBound {
			continue
		}
		if !found || c < best {
			best, found = c, true
		}
	}
	return best, found
}

// filterFrom оставляет кандидатов не раньше lowerBound, сохраняя порядок
func filterFrom(candidates []int, lowerBound int) []int {
	result := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if c >= lowerBound {
			result = append(result, c)
		}
	}
	return result
}
