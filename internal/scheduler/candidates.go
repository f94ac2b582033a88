package scheduler

// GenerateCandidates возвращает начала слотов на сетке с шагом GridStep от workStart,
// для которых на всем интервале [start, start+duration) занятость ниже maxParallel
//
// Шаг 1: строим поминутную шкалу занятости рабочего окна по бронированиям
// Шаг 2: проверяем каждую точку сетки, в которую помещается услуга целиком
func GenerateCandidates(bookings []Interval, duration, maxParallel, workStart, workEnd int) []int {
	candidates := make([]int, 0)

	window := workEnd - workStart
	if window <= 0 || duration <= 0 || duration > window || maxParallel <= 0 {
		return candidates
	}

	timeline := make([]int, window)
	for _, b := range bookings {
		from := max(0, b.Start-workStart)
		to := min(window, b.End-workStart)
		for i := from; i < to; i++ {
			timeline[i]++
		}
	}

	for c := workStart; c+duration <= workEnd; c += GridStep {
		offset := c - workStart
		free := true
		for i := offset; i < offset+duration; i++ {
			if timeline[i] >= maxParallel {
				free = false
				break
			}
		}
		if free {
			candidates = append(candidates, c)
		}
	}

	return candidates
}
