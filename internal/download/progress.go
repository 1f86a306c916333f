package download

import "math"

// Counters hold the aggregate progress of a session.
type Counters struct {
	Total     int
	Completed int
}

// OnItemProgress clamps a reported item percent to [0, 100].
func OnItemProgress(percent float64) float64 {
	switch {
	case math.IsNaN(percent), percent < 0:
		return 0
	case percent > 100:
		return 100
	}
	return percent
}

// AggregatePercent returns completed/total as a percentage. An unknown or zero
// total reports 100.
func AggregatePercent(c Counters) float64 {
	if c.Total <= 0 {
		return 100
	}
	return float64(c.Completed) / float64(c.Total) * 100
}

// OnItemFinished advances the counters by one finished item and returns them
// with the item percent (always 100) and the new aggregate percent. The
// completed count never passes a known total. Persisting next is the caller's job.
func OnItemFinished(c Counters) (next Counters, itemPercent, aggregatePercent float64) {
	next = c
	if next.Total <= 0 || next.Completed < next.Total {
		next.Completed++
	}
	return next, 100, AggregatePercent(next)
}
