package ui

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-fetch/internal/config"
	"github.com/ytget/yt-fetch/internal/download"
	"github.com/ytget/yt-fetch/internal/model"
	"github.com/ytget/yt-fetch/internal/platform"
)

// RootUI represents the main window
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	controller   download.Controller
	settings     *config.Settings
	localization *Localization
	logger       zerolog.Logger
	theme        *CompactTheme

	urlLabel        *widget.Label
	urlEntry        *widget.Entry
	qualityLabel    *widget.Label
	qualitySelect   *widget.Select
	folderBtn       *widget.Button
	openFolderBtn   *widget.Button
	folderLabel     *widget.Label
	itemLabel       *widget.Label
	itemProgress    *widget.ProgressBar
	totalLabel      *widget.Label
	totalProgress   *widget.ProgressBar
	statusLabel     *widget.Label
	downloadBtn     *widget.Button
	stopBtn         *widget.Button
	themeBtn        *widget.Button
	errorLabel      *widget.Label
	logLabel        *widget.Label
	logScroll       *container.Scroll
	logTitle        *widget.Label
	folder          string
	openFolder      func(string) error
	chooseFolderDlg func(func(fyne.ListableURI, error), fyne.Window)

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex
	lastSeq       uint64 // newest snapshot rendered, UI goroutine only
}

// NewRootUI creates and initializes the main window contents
func NewRootUI(window fyne.Window, app fyne.App, controller download.Controller, settings *config.Settings, logger zerolog.Logger) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:          window,
		app:             app,
		controller:      controller,
		settings:        settings,
		localization:    localization,
		logger:          logger.With().Str("component", "ui").Logger(),
		theme:           NewCompactTheme(settings.GetTheme() == config.ThemeDark),
		folder:          settings.GetDownloadDirectory(),
		openFolder:      platform.OpenFolder,
		chooseFolderDlg: dialog.ShowFolderOpen,
	}

	app.Settings().SetTheme(ui.theme)
	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	ui.controller.SetUpdateCallback(ui.onSessionUpdate)
	ui.render(ui.controller.Snapshot())

	window.SetCloseIntercept(ui.onClose)
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlLabel = widget.NewLabel("")
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.qualityLabel = widget.NewLabel("")
	qualities := ui.settings.GetQualityOptions()
	options := make([]string, 0, len(qualities))
	for _, q := range qualities {
		options = append(options, string(q))
	}
	ui.qualitySelect = widget.NewSelect(options, func(selected string) {
		ui.settings.SetQuality(model.Quality(selected))
	})
	ui.qualitySelect.SetSelected(string(ui.settings.GetQuality()))

	ui.folderBtn = widget.NewButton("", ui.onChooseFolder)
	ui.openFolderBtn = widget.NewButton("", ui.onOpenFolder)
	ui.openFolderBtn.Importance = widget.LowImportance
	ui.folderLabel = widget.NewLabel("")
	ui.folderLabel.Truncation = fyne.TextTruncateEllipsis

	ui.itemLabel = widget.NewLabel("")
	ui.itemProgress = widget.NewProgressBar()
	ui.totalLabel = widget.NewLabel("")
	ui.totalProgress = widget.NewProgressBar()

	ui.downloadBtn = widget.NewButton("", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton("", ui.onStopClick)
	ui.stopBtn.Importance = widget.DangerImportance
	ui.themeBtn = widget.NewButton("", ui.onToggleTheme)
	ui.statusLabel = widget.NewLabel("")

	ui.errorLabel = widget.NewLabel("")
	ui.errorLabel.Importance = widget.DangerImportance
	ui.errorLabel.Wrapping = fyne.TextWrapWord

	ui.logTitle = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.logLabel = widget.NewLabel("")
	ui.logLabel.Wrapping = fyne.TextWrapWord
	ui.logLabel.TextStyle = fyne.TextStyle{Monospace: true}
	ui.logScroll = container.NewVScroll(ui.logLabel)
	ui.logScroll.SetMinSize(fyne.NewSize(0, LogMinHeight))

	urlRow := container.NewBorder(nil, nil, ui.urlLabel, nil, ui.urlEntry)
	qualityRow := container.NewHBox(ui.qualityLabel, ui.qualitySelect)
	folderRow := container.NewBorder(nil, nil, container.NewHBox(ui.folderBtn), ui.openFolderBtn, ui.folderLabel)
	buttons := container.NewHBox(ui.downloadBtn, ui.stopBtn, ui.themeBtn, ui.statusLabel)

	top := container.NewVBox(
		urlRow,
		qualityRow,
		folderRow,
		widget.NewSeparator(),
		ui.itemLabel,
		ui.itemProgress,
		ui.totalLabel,
		ui.totalProgress,
		buttons,
		ui.errorLabel,
		ui.logTitle,
	)

	ui.refreshUITexts()
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.logScroll))
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	languages := ui.settings.GetLanguageOptions()
	for _, code := range slices.Sorted(maps.Keys(languages)) {
		langCode := code
		langItem := fyne.NewMenuItem(languages[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.settings.GetLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	themeItem := fyne.NewMenuItem(ui.localization.GetText(KeyToggleTheme), ui.onToggleTheme)
	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), themeItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()
	ui.createMenu()
	ui.render(ui.controller.Snapshot())
}

// refreshUITexts updates all static texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.urlLabel.SetText(l.GetText(KeyURL))
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.qualityLabel.SetText(l.GetText(KeyQuality))
	ui.folderBtn.SetText(IconFolder + " " + l.GetText(KeyChooseFolder))
	ui.openFolderBtn.SetText(l.GetText(KeyOpenFolder))
	ui.itemLabel.SetText(l.GetText(KeyCurrentProgress))
	ui.totalLabel.SetText(l.GetText(KeyTotalProgress))
	ui.downloadBtn.SetText(IconPlay + " " + l.GetText(KeyDownload))
	ui.stopBtn.SetText(IconStop + " " + l.GetText(KeyStop))
	ui.themeBtn.SetText(IconTheme + " " + l.GetText(KeyToggleTheme))
	ui.logTitle.SetText(l.GetText(KeyLog))
	ui.setFolderLabel()
}

// setFolderLabel shows the chosen destination folder
func (ui *RootUI) setFolderLabel() {
	if ui.folder == "" {
		ui.folderLabel.SetText(ui.localization.GetText(KeyNoFolder))
		return
	}
	ui.folderLabel.SetText(ui.folder)
}

// onDownloadClick starts a session from the current form values
func (ui *RootUI) onDownloadClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.errorLabel.SetText(ui.localization.GetText(KeyPleaseEnterURL))
		return
	}

	ui.errorLabel.SetText("")
	ui.itemProgress.SetValue(0)
	ui.totalProgress.SetValue(0)
	ui.logLabel.SetText("")

	req := model.DownloadRequest{
		URL:               urlText,
		Quality:           model.Quality(ui.qualitySelect.Selected),
		DestinationFolder: ui.folder,
	}

	if err := ui.controller.Start(req); err != nil {
		ui.logger.Warn().Err(err).Msg("download not started")
		ui.errorLabel.SetText(err.Error())
		return
	}

	ui.setRunning(true)
}

// onStopClick asks the running session to stop
func (ui *RootUI) onStopClick() {
	ui.controller.RequestCancel()
}

// onChooseFolder opens the folder picker
func (ui *RootUI) onChooseFolder() {
	ui.chooseFolderDlg(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.logger.Warn().Err(err).Msg("folder dialog failed")
			return
		}
		if uri == nil {
			return
		}
		ui.setFolder(uri.Path())
	}, ui.window)
}

// setFolder records a new destination folder
func (ui *RootUI) setFolder(path string) {
	ui.folder = path
	ui.settings.SetDownloadDirectory(path)
	ui.setFolderLabel()
}

// onOpenFolder reveals the destination folder in the file manager
func (ui *RootUI) onOpenFolder() {
	if err := ui.openFolder(ui.folder); err != nil {
		ui.logger.Warn().Err(err).Str("folder", ui.folder).Msg("open folder failed")
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningDir), err), ui.window)
	}
}

// onToggleTheme switches between light and dark variants
func (ui *RootUI) onToggleTheme() {
	ui.theme = ui.theme.Toggled()
	if ui.theme.IsDark() {
		ui.settings.SetTheme(config.ThemeDark)
	} else {
		ui.settings.SetTheme(config.ThemeLight)
	}
	ui.app.Settings().SetTheme(ui.theme)
}

// onClose stops a running session before the window goes away
func (ui *RootUI) onClose() {
	if ui.controller.Snapshot().Running {
		ui.controller.RequestCancel()
	}
	ui.window.Close()
}

// shouldSkipUpdate limits the frequency of progress-only renders
func (ui *RootUI) shouldSkipUpdate(snap model.Snapshot) bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if snap.Running && snap.Phase.IsActive() && now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return true
	}

	ui.lastUIUpdate = now
	return false
}

// onSessionUpdate handles snapshots published from the worker goroutine
func (ui *RootUI) onSessionUpdate(snap model.Snapshot) {
	if ui.shouldSkipUpdate(snap) {
		return
	}
	fyne.Do(func() {
		ui.render(snap)
	})
}

// render applies a snapshot to the widgets; must run on the UI goroutine.
// Snapshots older than the last one rendered are dropped.
func (ui *RootUI) render(snap model.Snapshot) {
	if snap.Seq < ui.lastSeq {
		return
	}
	ui.lastSeq = snap.Seq

	ui.itemProgress.SetValue(snap.CurrentItemPercent / 100)
	ui.totalProgress.SetValue(snap.AggregatePercent / 100)
	ui.logLabel.SetText(strings.Join(snap.Log, LogLineSeparator))
	ui.logScroll.ScrollToBottom()

	if snap.LastError != "" {
		ui.errorLabel.SetText(snap.LastError)
	}

	ui.statusLabel.SetText(ui.statusText(snap))
	ui.setRunning(snap.Running)
}

// statusText describes the session phase next to the buttons
func (ui *RootUI) statusText(snap model.Snapshot) string {
	l := ui.localization

	var status string
	switch {
	case snap.Running && snap.Phase.IsTerminal():
		status = ui.outcomeText(snap.Phase)
	case snap.Running && snap.CancelRequested:
		status = l.GetText(KeyStatusStopping)
	case snap.Running && snap.Phase == model.PhaseDownloading:
		status = l.GetText(KeyStatusDownloading)
	case snap.Running:
		status = l.GetText(KeyStatusEnumerating)
	case snap.Outcome.IsTerminal():
		status = ui.outcomeText(snap.Outcome)
	default:
		return l.GetText(KeyStatusIdle)
	}

	if snap.TotalItems > 0 {
		status += MiddleDotSeparator + snap.GetItemsString()
	}
	if snap.Running && snap.Phase == model.PhaseDownloading {
		status += MiddleDotSeparator + fmt.Sprintf(ProgressLabelFormat, snap.AggregatePercent)
	}
	return status + MiddleDotSeparator + snap.GetElapsedString()
}

// outcomeText names a terminal phase
func (ui *RootUI) outcomeText(phase model.Phase) string {
	switch phase {
	case model.PhaseCompleted:
		return ui.localization.GetText(KeyStatusCompleted)
	case model.PhaseCancelled:
		return ui.localization.GetText(KeyStatusCancelled)
	default:
		return ui.localization.GetText(KeyStatusFailed)
	}
}

// setRunning toggles input widgets while a session runs
func (ui *RootUI) setRunning(running bool) {
	if running {
		ui.urlEntry.Disable()
		ui.qualitySelect.Disable()
		ui.folderBtn.Disable()
		ui.downloadBtn.Disable()
		ui.stopBtn.Enable()
		return
	}

	ui.urlEntry.Enable()
	ui.qualitySelect.Enable()
	ui.folderBtn.Enable()
	ui.downloadBtn.Enable()
	ui.stopBtn.Disable()
}
