package model

import (
	"fmt"
	"time"
)

// Snapshot is a consistent, copyable view of a download session
type Snapshot struct {
	Seq                uint64 // grows with every published update; higher is newer
	SessionID          string
	Request            DownloadRequest
	Phase              Phase
	Outcome            Phase // last terminal phase, kept after the session returns to idle
	Running            bool
	CancelRequested    bool
	TotalItems         int
	CompletedItems     int
	CurrentItemPercent float64 // 0 to 100
	AggregatePercent   float64 // 0 to 100
	LastLogLine        string
	LastError          string
	Log                []string
	StartedAt          time.Time
	FinishedAt         time.Time
}

// GetElapsedString returns the session duration as mm:ss or hh:mm:ss, or "—" if not started
func (s *Snapshot) GetElapsedString() string {
	if s.StartedAt.IsZero() {
		return "—"
	}
	end := s.FinishedAt
	if end.IsZero() || end.Before(s.StartedAt) {
		end = time.Now()
	}
	total := int(end.Sub(s.StartedAt).Seconds())

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetItemsString returns "completed/total", or "—" before enumeration finished
func (s *Snapshot) GetItemsString() string {
	if s.TotalItems == 0 {
		return "—"
	}
	return fmt.Sprintf("%d/%d", s.CompletedItems, s.TotalItems)
}
