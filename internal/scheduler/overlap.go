package scheduler

// CountOverlapping подсчитывает бронирования, пересекающиеся с интервалом [start, end)
// Граничащие интервалы (конец одного ровно в начале другого) пересечением не считаются,
// частичное пересечение и вложенность считаются
func CountOverlapping(bookings []Interval, start, end int) int {
	count := 0
	for _, b := range bookings {
		if !(b.End <= start || b.Start >= end) {
			count++
		}
	}
	return count
}
