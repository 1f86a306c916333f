package platform

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/ytdlp/types"
	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-fetch/internal/download"
	"github.com/ytget/yt-fetch/internal/model"
)

// Timeout constants
const (
	DefaultParseTimeout = 60 * time.Second
)

// Function types for the library calls, replaceable in tests
type (
	playlistFetcher func(ctx context.Context, playlistID string) ([]types.PlaylistItem, error)
	videoResolver   func(ctx context.Context, url string) (model.Item, error)
	formatLookup    func(ctx context.Context, url string) (string, []types.Format, error)
	itemDownloader  func(ctx context.Context, url, selector, ext, outputPath string, progress func(float64)) (string, error)
)

// ErrEmptyPlaylist is returned when a playlist lists no videos
var ErrEmptyPlaylist = errors.New("playlist has no downloadable items")

// YTDLPExtractor enumerates and downloads media through the ytdlp library
type YTDLPExtractor struct {
	timeout  time.Duration
	logger   zerolog.Logger
	fetch    playlistFetcher
	resolve  videoResolver
	lookup   formatLookup
	download itemDownloader

	mu   sync.Mutex
	last *model.ItemList // result of the latest Enumerate, reused by Download
}

var _ download.Extractor = (*YTDLPExtractor)(nil)

// NewYTDLPExtractor creates an extractor backed by the ytdlp library
func NewYTDLPExtractor(logger zerolog.Logger) *YTDLPExtractor {
	return &YTDLPExtractor{
		timeout:  DefaultParseTimeout,
		logger:   logger.With().Str("component", "ytdlp").Logger(),
		fetch:    fetchPlaylistItems,
		resolve:  resolveVideo,
		lookup:   lookupFormats,
		download: downloadItem,
	}
}

// SetTimeout sets the timeout for enumeration
func (y *YTDLPExtractor) SetTimeout(timeout time.Duration) {
	y.timeout = timeout
}

// Enumerate lists the items behind url without downloading any media
func (y *YTDLPExtractor) Enumerate(ctx context.Context, url string) (*model.ItemList, error) {
	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}

	list := model.NewItemList(url)

	if isPlaylistURL(url) {
		playlistID, err := extractPlaylistID(url)
		if err != nil {
			return nil, err
		}

		items, err := y.fetch(ctx, playlistID)
		if err != nil {
			return nil, fmt.Errorf("failed to get playlist items: %w", err)
		}
		if len(items) == 0 {
			return nil, ErrEmptyPlaylist
		}

		titles := make([]string, 0, len(items))
		for _, it := range items {
			list.AddItem(model.Item{ID: it.VideoID, Title: it.Title, URL: videoURL(it.VideoID)})
			titles = append(titles, it.Title)
		}
		list.ID = playlistID
		list.Title = playlistTitle(titles)
	} else {
		item, err := y.resolve(ctx, url)
		if err != nil {
			return nil, err
		}
		list.ID = item.ID
		list.Title = item.Title
		list.AddItem(item)
	}

	y.logger.Debug().Str("url", url).Int("items", len(list.Entries)).Msg("enumerated")

	y.mu.Lock()
	y.last = list
	y.mu.Unlock()

	return list, nil
}

// Download transfers every item behind url sequentially. A non-nil error from
// opts.Progress aborts the item in flight and is returned as is.
func (y *YTDLPExtractor) Download(ctx context.Context, url string, opts download.Options) error {
	if err := CreateDirectoryIfNotExists(opts.OutputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	items, err := y.items(ctx, url, opts.AllowPlaylist)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		title, err := y.downloadOne(ctx, item, opts)
		if err == nil {
			if title == "" {
				title = item.Title
			}
			if err := emit(opts.Progress, model.Finished(title)); err != nil {
				return err
			}
			continue
		}

		var abort *abortError
		if errors.As(err, &abort) {
			return abort.err
		}
		if !opts.IgnoreErrors || ctx.Err() != nil {
			return err
		}

		y.logger.Warn().Err(err).Str("item", item.URL).Msg("item failed")
		if err := emit(opts.Progress, model.ItemError(item.Title, err.Error())); err != nil {
			return err
		}
	}

	return nil
}

// abortError carries an error returned by the progress callback
type abortError struct {
	err error
}

func (e *abortError) Error() string { return e.err.Error() }

// downloadOne transfers a single item. The library progress hook has no return
// value, so a callback error cancels the item context instead.
func (y *YTDLPExtractor) downloadOne(ctx context.Context, item model.Item, opts download.Options) (string, error) {
	itemCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		abortErr error
	)
	report := func(pct float64) {
		mu.Lock()
		defer mu.Unlock()
		if abortErr != nil {
			return
		}
		if err := emit(opts.Progress, model.Downloading(pct)); err != nil {
			abortErr = err
			cancel()
		}
	}

	report(0)
	title, err := y.transfer(itemCtx, item, opts, report)

	mu.Lock()
	defer mu.Unlock()
	if abortErr != nil {
		return "", &abortError{err: abortErr}
	}
	if err != nil {
		return "", err
	}
	return title, nil
}

// transfer picks the item's format, names its file and downloads it
func (y *YTDLPExtractor) transfer(ctx context.Context, item model.Item, opts download.Options, report func(float64)) (string, error) {
	title, available, err := y.lookup(ctx, item.URL)
	if err != nil {
		return "", err
	}
	if title == "" {
		title = item.Title
	}

	choice, err := chooseFormat(available, opts.Format)
	if err != nil {
		return "", err
	}

	path := itemPath(outputTemplate(opts), title, choice.ext(opts.Format.Ext))
	y.logger.Debug().
		Str("item", item.URL).
		Str("selector", choice.selector).
		Str("path", path).
		Msg("downloading item")

	downloaded, err := y.download(ctx, item.URL, choice.selector, opts.Format.Ext, path, report)
	if err != nil {
		return "", err
	}
	if downloaded == "" {
		downloaded = title
	}
	return downloaded, nil
}

// outputTemplate returns the per-item path template for opts
func outputTemplate(opts download.Options) string {
	if opts.OutputTemplate != "" {
		return opts.OutputTemplate
	}
	return filepath.Join(opts.OutputDir, model.DefaultOutputTemplate)
}

// items returns the entries to download, reusing the latest enumeration when
// it was for the same URL
func (y *YTDLPExtractor) items(ctx context.Context, url string, allowPlaylist bool) ([]model.Item, error) {
	if !allowPlaylist {
		single := stripPlaylistParam(url)
		return []model.Item{{URL: single}}, nil
	}

	y.mu.Lock()
	last := y.last
	y.mu.Unlock()

	if last == nil || last.URL != url {
		var err error
		if last, err = y.Enumerate(ctx, url); err != nil {
			return nil, err
		}
	}

	if len(last.Entries) == 0 && !isPlaylistURL(url) {
		return []model.Item{{URL: url}}, nil
	}
	return last.Entries, nil
}

// emit calls progress if set
func emit(progress download.ProgressFunc, ev model.ProgressEvent) error {
	if progress == nil {
		return nil
	}
	return progress(ev)
}

// fetchPlaylistItems lists a playlist through the library
func fetchPlaylistItems(ctx context.Context, playlistID string) ([]types.PlaylistItem, error) {
	return ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
}

// resolveVideo fetches metadata of a single video through the library
func resolveVideo(ctx context.Context, url string) (model.Item, error) {
	_, info, err := ytdlp.New().ResolveURL(ctx, url)
	if err != nil {
		return model.Item{}, err
	}
	if info == nil {
		return model.Item{URL: url}, nil
	}
	return model.Item{ID: info.ID, Title: info.Title, URL: url}, nil
}

// lookupFormats fetches the title and format list of a single video
func lookupFormats(ctx context.Context, url string) (string, []types.Format, error) {
	_, info, err := ytdlp.New().ResolveURL(ctx, url)
	if err != nil {
		return "", nil, err
	}
	if info == nil {
		return "", nil, nil
	}
	return info.Title, info.Formats, nil
}

// downloadItem downloads one video through the library to outputPath
func downloadItem(ctx context.Context, url, selector, ext, outputPath string, progress func(float64)) (string, error) {
	d := ytdlp.New().
		WithFormat(selector, ext).
		WithOutputPath(outputPath).
		WithProgress(func(p ytdlp.Progress) {
			progress(p.Percent)
		})

	info, err := d.Download(ctx, url)
	if err != nil {
		return "", err
	}
	if info == nil {
		return "", nil
	}
	return info.Title, nil
}
