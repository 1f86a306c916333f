package model

// EventKind tags a ProgressEvent
type EventKind string

const (
	EventDownloading EventKind = "downloading"
	EventFinished    EventKind = "finished"
	EventError       EventKind = "error"
)

// ProgressEvent is reported by the extractor from inside its download loop
type ProgressEvent struct {
	Kind    EventKind
	Percent float64 // meaningful for EventDownloading
	Message string  // meaningful for EventError
	Title   string  // title of the item, if known
}

// Downloading builds a progress event for the current item
func Downloading(percent float64) ProgressEvent {
	return ProgressEvent{Kind: EventDownloading, Percent: percent}
}

// Finished builds an item-complete event
func Finished(title string) ProgressEvent {
	return ProgressEvent{Kind: EventFinished, Title: title}
}

// ItemError builds an event for an item that failed and was skipped
func ItemError(title, message string) ProgressEvent {
	return ProgressEvent{Kind: EventError, Title: title, Message: message}
}
