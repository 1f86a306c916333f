package download

import (
	"context"

	"github.com/ytget/yt-fetch/internal/model"
)

// ProgressFunc receives extractor events. Returning a non-nil error aborts the
// transfer in progress; the extractor must propagate that error out of Download.
type ProgressFunc func(model.ProgressEvent) error

// Options configure a single Download call on the extractor.
type Options struct {
	OutputDir      string
	OutputTemplate string // file path with %(title)s and %(ext)s placeholders
	Format         model.FormatSelector
	Progress       ProgressFunc
	// IgnoreErrors skips items that fail instead of aborting the session.
	IgnoreErrors bool
	// AllowPlaylist expands playlist URLs into all of their items.
	AllowPlaylist bool
}

// Extractor is the extraction/download collaborator.
type Extractor interface {
	// Enumerate is a metadata-only pass that lists the items behind url.
	Enumerate(ctx context.Context, url string) (*model.ItemList, error)
	// Download transfers every item sequentially, calling opts.Progress
	// synchronously on the calling goroutine.
	Download(ctx context.Context, url string, opts Options) error
}

// Controller defines the command surface the presentation shell uses.
type Controller interface {
	SetUpdateCallback(func(model.Snapshot))
	Start(req model.DownloadRequest) error
	RequestCancel()
	Snapshot() model.Snapshot
	CurrentItemPercent() float64
	AggregatePercent() float64
	LastLogLine() string
	LastError() string
	Err() error
	Wait()
}
