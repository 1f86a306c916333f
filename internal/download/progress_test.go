package download

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnItemProgress(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{100.4, 100},
		{1e9, 100},
		{math.Inf(1), 100},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}

	for _, test := range tests {
		result := OnItemProgress(test.input)
		if result != test.expected {
			t.Errorf("OnItemProgress(%v) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestOnItemProgress_AlwaysWithinBounds(t *testing.T) {
	for p := -250.0; p <= 250.0; p += 0.75 {
		got := OnItemProgress(p)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestAggregatePercent(t *testing.T) {
	assert.Equal(t, 100.0, AggregatePercent(Counters{Total: 0, Completed: 0}))
	assert.Equal(t, 100.0, AggregatePercent(Counters{Total: -1, Completed: 3}))

	for n := 1; n <= 12; n++ {
		for k := 0; k <= n; k++ {
			got := AggregatePercent(Counters{Total: n, Completed: k})
			assert.InDelta(t, 100*float64(k)/float64(n), got, 1e-9, "k=%d n=%d", k, n)
		}
	}
}

func TestOnItemFinished(t *testing.T) {
	c := Counters{Total: 3}

	var aggregates []float64
	for i := 0; i < 3; i++ {
		var item, aggregate float64
		c, item, aggregate = OnItemFinished(c)
		assert.Equal(t, 100.0, item)
		aggregates = append(aggregates, aggregate)
	}

	assert.Equal(t, 3, c.Completed)
	assert.InDeltaSlice(t, []float64{33.33, 66.67, 100}, aggregates, 0.01)
}

func TestOnItemFinished_NeverExceedsTotal(t *testing.T) {
	c := Counters{Total: 2}
	for i := 0; i < 5; i++ {
		c, _, _ = OnItemFinished(c)
		assert.LessOrEqual(t, c.Completed, c.Total)
	}
	assert.Equal(t, 2, c.Completed)
	assert.Equal(t, 100.0, AggregatePercent(c))
}

func TestOnItemFinished_UnknownTotal(t *testing.T) {
	next, item, aggregate := OnItemFinished(Counters{})
	assert.Equal(t, 1, next.Completed)
	assert.Equal(t, 100.0, item)
	assert.Equal(t, 100.0, aggregate)
}
