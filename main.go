package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-fetch/internal/config"
	"github.com/ytget/yt-fetch/internal/download"
	"github.com/ytget/yt-fetch/internal/logging"
	"github.com/ytget/yt-fetch/internal/platform"
	"github.com/ytget/yt-fetch/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-fetch"
	AppName = "YT Fetch"
)

func main() {
	settings := config.NewSettings(nil)
	if err := settings.Load(os.Getenv("YTFETCH_CONFIG")); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	logger := logging.NewFromSettings(settings.GetLogLevel(), settings.GetLogFormat())
	logger.Info().Str("version", version).Msg("YT Fetch starting")

	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		logger.Warn().Err(err).Str("dir", settings.GetDownloadDirectory()).Msg("failed to ensure downloads dir")
	}

	extractor := platform.NewYTDLPExtractor(logger)
	extractor.SetTimeout(settings.GetEnumerateTimeout())
	downloadSvc := download.NewService(extractor, logger)

	myApp := app.NewWithID(AppID)
	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))

	ui.NewRootUI(myWindow, myApp, downloadSvc, settings, logger)

	myWindow.ShowAndRun()
}
