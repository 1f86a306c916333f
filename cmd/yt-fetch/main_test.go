package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/yt-fetch/internal/config"
	"github.com/ytget/yt-fetch/internal/download"
	"github.com/ytget/yt-fetch/internal/model"
)

// stubExtractor reports a fixed number of finished items
type stubExtractor struct {
	items       int
	downloadErr error
	onDownload  func(opts download.Options) error
}

func (s *stubExtractor) Enumerate(ctx context.Context, url string) (*model.ItemList, error) {
	list := model.NewItemList(url)
	for i := 0; i < s.items; i++ {
		list.AddItem(model.Item{ID: "v", URL: url})
	}
	return list, nil
}

func (s *stubExtractor) Download(ctx context.Context, url string, opts download.Options) error {
	if s.onDownload != nil {
		return s.onDownload(opts)
	}
	if s.downloadErr != nil {
		return s.downloadErr
	}
	for i := 0; i < s.items; i++ {
		if err := opts.Progress(model.Downloading(100)); err != nil {
			return err
		}
		if err := opts.Progress(model.Finished("")); err != nil {
			return err
		}
	}
	return nil
}

func withExtractor(t *testing.T, ex download.Extractor) {
	t.Helper()
	prev := newExtractor
	newExtractor = func(zerolog.Logger, *config.Settings) download.Extractor { return ex }
	t.Cleanup(func() { newExtractor = prev })
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Completed(t *testing.T) {
	withExtractor(t, &stubExtractor{items: 2})

	code, out, _ := runCLI(t, "-o", t.TempDir(), "--log-level", "error", "https://www.youtube.com/watch?v=abc")

	assert.Equal(t, ExitCompleted, code)
	assert.Contains(t, out, "Found 2 item(s)")
	assert.Contains(t, out, "All downloads complete!")
	assert.Contains(t, out, "Completed: 2/2 item(s)")
}

func TestRun_Failed(t *testing.T) {
	withExtractor(t, &stubExtractor{items: 1, downloadErr: errors.New("Video unavailable")})

	code, out, _ := runCLI(t, "-o", t.TempDir(), "--log-level", "error", "https://www.youtube.com/watch?v=abc")

	assert.Equal(t, ExitFailed, code)
	assert.Contains(t, out, "Error: Video unavailable")
}

func TestRun_Cancelled(t *testing.T) {
	withExtractor(t, &stubExtractor{
		items: 1,
		onDownload: func(opts download.Options) error {
			return download.ErrCancelledByUser
		},
	})

	code, out, _ := runCLI(t, "-o", t.TempDir(), "--log-level", "error", "https://www.youtube.com/watch?v=abc")

	assert.Equal(t, ExitCancelled, code)
	assert.Contains(t, out, "Download stopped by user.")
}

func TestRun_UsageErrors(t *testing.T) {
	withExtractor(t, &stubExtractor{items: 1})

	tests := []struct {
		name string
		args []string
	}{
		{"missing url", []string{}},
		{"too many args", []string{"a", "b"}},
		{"blank url", []string{"-o", t.TempDir(), "   "}},
		{"unknown quality", []string{"-o", t.TempDir(), "-q", "8k", "https://www.youtube.com/watch?v=abc"}},
		{"unknown flag", []string{"--bogus", "https://www.youtube.com/watch?v=abc"}},
		{"missing config file", []string{"--config", "/nonexistent/yt-fetch.yaml", "https://www.youtube.com/watch?v=abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.args...)
			assert.Equal(t, ExitUsage, code)
			assert.Contains(t, errOut, "Error:")
		})
	}
}

func TestRun_QualityFlagReachesExtractor(t *testing.T) {
	var got model.FormatSelector
	withExtractor(t, &stubExtractor{
		items: 1,
		onDownload: func(opts download.Options) error {
			got = opts.Format
			return nil
		},
	})

	code, _, _ := runCLI(t, "-o", t.TempDir(), "-q", "720p", "--log-level", "error", "https://www.youtube.com/watch?v=abc")

	assert.Equal(t, ExitCompleted, code)
	assert.Equal(t, model.Quality720p.Selector(), got)
}

func TestLogPrinter_SkipsRepeats(t *testing.T) {
	var buf bytes.Buffer
	p := &logPrinter{out: &buf}

	p.onUpdate(model.Snapshot{LastLogLine: "Downloading: 10.0%"})
	p.onUpdate(model.Snapshot{LastLogLine: "Downloading: 10.0%"})
	p.onUpdate(model.Snapshot{})
	p.onUpdate(model.Snapshot{LastLogLine: "Download Finished!"})

	assert.Equal(t, "Downloading: 10.0%\nDownload Finished!\n", buf.String())
}

func TestLogPrinter_SkipsOlderUpdates(t *testing.T) {
	var buf bytes.Buffer
	p := &logPrinter{out: &buf}

	p.onUpdate(model.Snapshot{Seq: 3, LastLogLine: "Download stopped by user."})
	p.onUpdate(model.Snapshot{Seq: 2, LastLogLine: "Stopping download..."})

	assert.Equal(t, "Download stopped by user.\n", buf.String())
}
