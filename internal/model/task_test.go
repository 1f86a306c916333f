package model

import (
	"testing"
	"time"
)

func TestSnapshot_GetElapsedString(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		elapsed  time.Duration
		expected string
	}{
		{30 * time.Second, "00:30"},
		{90 * time.Second, "01:30"},
		{time.Hour, "01:00:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
	}

	for _, test := range tests {
		snap := &Snapshot{StartedAt: start, FinishedAt: start.Add(test.elapsed)}
		result := snap.GetElapsedString()
		if result != test.expected {
			t.Errorf("GetElapsedString() with elapsed=%v = %s, expected %s", test.elapsed, result, test.expected)
		}
	}

	empty := &Snapshot{}
	if got := empty.GetElapsedString(); got != "—" {
		t.Errorf("GetElapsedString() on unstarted snapshot = %s, expected —", got)
	}
}

func TestSnapshot_GetItemsString(t *testing.T) {
	tests := []struct {
		total, completed int
		expected         string
	}{
		{0, 0, "—"},
		{1, 0, "0/1"},
		{3, 2, "2/3"},
	}

	for _, test := range tests {
		snap := &Snapshot{TotalItems: test.total, CompletedItems: test.completed}
		if got := snap.GetItemsString(); got != test.expected {
			t.Errorf("GetItemsString() = %s, expected %s", got, test.expected)
		}
	}
}
