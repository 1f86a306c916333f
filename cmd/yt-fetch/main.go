package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/yt-fetch/internal/config"
	"github.com/ytget/yt-fetch/internal/download"
	"github.com/ytget/yt-fetch/internal/logging"
	"github.com/ytget/yt-fetch/internal/model"
	"github.com/ytget/yt-fetch/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// Exit codes
const (
	ExitCompleted = 0
	ExitFailed    = 1
	ExitUsage     = 2
	ExitCancelled = 130
)

// Flag names
const (
	flagQuality   = "quality"
	flagOutput    = "output"
	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
)

// exitError carries a process exit code out of cobra
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// newExtractor builds the extractor; replaced in tests
var newExtractor = func(logger zerolog.Logger, settings *config.Settings) download.Extractor {
	extractor := platform.NewYTDLPExtractor(logger)
	extractor.SetTimeout(settings.GetEnumerateTimeout())
	return extractor
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitCompleted
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			fmt.Fprintln(stderr, "Error:", exitErr.err)
		}
		return exitErr.code
	}

	fmt.Fprintln(stderr, "Error:", err)
	return ExitUsage
}

// newRootCmd creates the yt-fetch command
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "yt-fetch [flags] <url>",
		Short:         "Download a video, playlist or channel",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString(flagConfig)
			return runSession(cmd.Context(), v, configFile, args[0], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringP(flagQuality, "q", string(config.DefaultQuality), "quality preset: best, worst, audio, 720p, 480p")
	flags.StringP(flagOutput, "o", "", "destination folder (default: the Downloads directory)")
	flags.String(flagConfig, "", "config file (default: ./yt-fetch.{yaml,toml,json} if present)")
	flags.String(flagLogLevel, config.DefaultLogLevel, "log level: trace, debug, info, warn, error")
	flags.String(flagLogFormat, config.DefaultLogFormat, "log format: console, json")

	bindFlag(v, config.KeyQuality, flags.Lookup(flagQuality))
	bindFlag(v, config.KeyDownloadDir, flags.Lookup(flagOutput))
	bindFlag(v, config.KeyLogLevel, flags.Lookup(flagLogLevel))
	bindFlag(v, config.KeyLogFormat, flags.Lookup(flagLogFormat))

	return cmd
}

// runSession runs one session to its end and maps the outcome to an exit code
func runSession(ctx context.Context, v *viper.Viper, configFile, url string, stdout, stderr io.Writer) error {
	settings := config.NewSettings(v)
	if err := settings.Load(configFile); err != nil {
		return &exitError{code: ExitUsage, err: err}
	}

	logCfg := logging.DefaultConfig()
	logCfg.Output = stderr
	logCfg.Level = logging.ParseLevel(settings.GetLogLevel(), logCfg.Level)
	if settings.GetLogFormat() == logging.FormatJSON {
		logCfg.Format = logging.FormatJSON
	}
	logger := logging.New(logCfg)

	svc := download.NewService(newExtractor(logger, settings), logger)
	printer := &logPrinter{out: stdout}
	svc.SetUpdateCallback(printer.onUpdate)

	req := model.DownloadRequest{
		URL:               url,
		Quality:           model.Quality(v.GetString(config.KeyQuality)),
		DestinationFolder: settings.GetDownloadDirectory(),
	}
	if err := svc.Start(req); err != nil {
		return &exitError{code: ExitUsage, err: err}
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		svc.Wait()
		stop()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		svc.RequestCancel()
		return nil
	})
	_ = g.Wait()

	snap := svc.Snapshot()
	fmt.Fprintf(stdout, "%s: %s item(s) in %s\n", snap.Outcome, snap.GetItemsString(), snap.GetElapsedString())

	switch {
	case snap.Outcome == model.PhaseCompleted:
		return nil
	case download.IsCancelled(svc.Err()):
		return &exitError{code: ExitCancelled}
	default:
		return &exitError{code: ExitFailed}
	}
}

// bindFlag binds a flag to a viper key
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

// logPrinter writes each new session log line once, skipping updates older
// than the last one printed
type logPrinter struct {
	mu   sync.Mutex
	out  io.Writer
	last string
	seq  uint64
}

func (p *logPrinter) onUpdate(snap model.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if snap.Seq < p.seq {
		return
	}
	p.seq = snap.Seq

	if snap.LastLogLine == "" || snap.LastLogLine == p.last {
		return
	}
	p.last = snap.LastLogLine
	fmt.Fprintln(p.out, snap.LastLogLine)
}
