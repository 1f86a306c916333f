package ui

import "time"

// Icons (emojis/symbols)
const (
	IconFolder = "📁"
	IconPlay   = "▶"
	IconStop   = "■"
	IconTheme  = "◐"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%.1f%%"
	LogLineSeparator    = "\n"
)

// Layout sizing
const (
	WindowWidth    float32 = 640
	WindowHeight   float32 = 560
	LogMinHeight   float32 = 200
	QualityMinWide float32 = 110
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
