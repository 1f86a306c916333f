package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-fetch/internal/model"
)

// MaxLogLines caps the session log kept for the UI
const MaxLogLines = 500

// Service runs download sessions, one at a time, on a worker goroutine
type Service struct {
	extractor Extractor
	state     *SessionState
	logger    zerolog.Logger

	mu       sync.RWMutex
	snap     model.Snapshot
	lastErr  error
	seq      uint64
	done     chan struct{}
	onUpdate func(model.Snapshot) // callback for UI updates
}

// NewService creates a new download service
func NewService(extractor Extractor, logger zerolog.Logger) *Service {
	return &Service{
		extractor: extractor,
		state:     NewSessionState(),
		logger:    logger.With().Str("component", "download").Logger(),
		snap:      model.Snapshot{Phase: model.PhaseIdle},
	}
}

// SetUpdateCallback sets the callback function for session updates
func (s *Service) SetUpdateCallback(callback func(model.Snapshot)) {
	s.mu.Lock()
	s.onUpdate = callback
	s.mu.Unlock()
}

// Start validates the request and launches the worker. Validation errors are
// returned before any goroutine is created.
func (s *Service) Start(req model.DownloadRequest) error {
	req, err := validateRequest(req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("rejected download request")
		s.mu.Lock()
		if !s.snap.Running {
			s.snap.LastError = err.Error()
		}
		s.mu.Unlock()
		s.notifyUpdate()
		return err
	}

	if err := s.state.Start(); err != nil {
		return err
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.snap = model.Snapshot{
		SessionID: generateSessionID(),
		Request:   req,
		Phase:     model.PhaseIdle,
		Running:   true,
		StartedAt: time.Now(),
	}
	s.lastErr = nil
	s.done = done
	sessionID := s.snap.SessionID
	s.mu.Unlock()

	s.logger.Info().
		Str("session", sessionID).
		Str("url", req.URL).
		Str("quality", string(req.Quality)).
		Str("folder", req.DestinationFolder).
		Msg("starting download session")
	s.notifyUpdate()

	go s.run(req, done)
	return nil
}

// RequestCancel asks the running session to stop at the next progress callback
func (s *Service) RequestCancel() {
	if !s.state.RequestCancel() {
		return
	}

	s.mu.Lock()
	s.snap.CancelRequested = true
	s.appendLogLocked("Stopping download...")
	s.mu.Unlock()

	s.logger.Info().Msg("cancellation requested")
	s.notifyUpdate()
}

// Snapshot returns a copy of the current session view
func (s *Service) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copySnapshotLocked()
}

// CurrentItemPercent returns progress of the item being transferred
func (s *Service) CurrentItemPercent() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.CurrentItemPercent
}

// AggregatePercent returns progress across all items of the session
func (s *Service) AggregatePercent() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.AggregatePercent
}

// LastLogLine returns the newest session log line
func (s *Service) LastLogLine() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.LastLogLine
}

// LastError returns the terminal error message of the last session, if any
func (s *Service) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.LastError
}

// Err returns the typed terminal error of the last session
func (s *Service) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Wait blocks until the current worker goroutine has exited
func (s *Service) Wait() {
	s.mu.RLock()
	done := s.done
	s.mu.RUnlock()

	if done != nil {
		<-done
	}
}

// run is the worker goroutine body
func (s *Service) run(req model.DownloadRequest, done chan struct{}) {
	defer close(done)
	defer s.finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	phase, err := s.execute(ctx, req)
	s.conclude(phase, err)
}

// execute performs the enumerate and download passes and classifies the result
func (s *Service) execute(ctx context.Context, req model.DownloadRequest) (phase model.Phase, err error) {
	defer func() {
		if r := recover(); r != nil {
			phase = model.PhaseFailed
			err = &DownloadError{Err: fmt.Errorf("extractor panic: %v", r)}
		}
	}()

	s.setPhase(model.PhaseEnumerating, "Preparing download from: "+req.URL)

	list, err := s.extractor.Enumerate(ctx, req.URL)
	if err != nil {
		return model.PhaseFailed, &EnumerationError{Err: err}
	}

	total := list.Count()
	s.state.SetTotal(total)
	s.mu.Lock()
	s.snap.TotalItems = total
	s.snap.CompletedItems = 0
	s.snap.CurrentItemPercent = 0
	s.snap.AggregatePercent = 0
	s.appendLogLocked(fmt.Sprintf("Found %d item(s)", total))
	s.mu.Unlock()

	if s.state.CancelRequested() {
		return model.PhaseCancelled, ErrCancelledByUser
	}

	s.setPhase(model.PhaseDownloading, "")

	opts := Options{
		OutputDir:      req.DestinationFolder,
		OutputTemplate: req.OutputTemplate(),
		Format:         req.Quality.Selector(),
		Progress:       s.onProgress,
		IgnoreErrors:   true,
		AllowPlaylist:  true,
	}
	s.logger.Debug().
		Str("format", opts.Format.Expression).
		Str("output", opts.OutputTemplate).
		Int("items", total).
		Msg("download pass")

	err = s.extractor.Download(ctx, req.URL, opts)
	cancelled := s.state.CancelRequested()

	switch {
	case err == nil && !cancelled:
		return model.PhaseCompleted, nil
	case errors.Is(err, ErrCancelledByUser), cancelled:
		return model.PhaseCancelled, ErrCancelledByUser
	default:
		return model.PhaseFailed, &DownloadError{Err: err}
	}
}

// onProgress is handed to the extractor as its progress callback
func (s *Service) onProgress(ev model.ProgressEvent) error {
	if s.state.CancelRequested() {
		return ErrCancelledByUser
	}

	switch ev.Kind {
	case model.EventDownloading:
		pct := OnItemProgress(ev.Percent)
		s.mu.Lock()
		s.snap.CurrentItemPercent = pct
		s.appendLogLocked(fmt.Sprintf("Downloading: %.1f%%", pct))
		s.mu.Unlock()

	case model.EventFinished:
		counters, aggregate := s.state.CompleteItem()
		s.mu.Lock()
		s.snap.CurrentItemPercent = 100
		s.snap.CompletedItems = counters.Completed
		s.snap.AggregatePercent = aggregate
		s.appendLogLocked(finishedLine(ev.Title))
		s.mu.Unlock()
		s.logger.Debug().Int("completed", counters.Completed).Int("total", counters.Total).Msg("item finished")

	case model.EventError:
		s.mu.Lock()
		s.appendLogLocked("Skipped item: " + ev.Message)
		s.mu.Unlock()
		s.logger.Warn().Str("item", ev.Title).Str("error", ev.Message).Msg("item failed, skipping")

	default:
		return nil
	}

	s.notifyUpdate()
	return nil
}

// conclude records the terminal phase of a session
func (s *Service) conclude(phase model.Phase, err error) {
	s.mu.Lock()
	s.snap.Phase = phase
	s.snap.Outcome = phase
	s.lastErr = err

	switch phase {
	case model.PhaseCompleted:
		s.appendLogLocked("All downloads complete!")
	case model.PhaseCancelled:
		s.appendLogLocked("Download stopped by user.")
	default:
		s.snap.LastError = err.Error()
		s.appendLogLocked("Error: " + err.Error())
	}
	sessionID := s.snap.SessionID
	s.mu.Unlock()

	event := s.logger.Info()
	if phase == model.PhaseFailed {
		event = s.logger.Error().Err(err)
	}
	event.Str("session", sessionID).Str("outcome", phase.String()).Msg("download session ended")

	s.notifyUpdate()
}

// finish returns the service to idle. It runs exactly once per session.
func (s *Service) finish() {
	s.mu.Lock()
	s.snap.Phase = model.PhaseIdle
	s.snap.Running = false
	s.snap.FinishedAt = time.Now()
	s.state.Finish()
	s.mu.Unlock()

	s.notifyUpdate()
}

// setPhase moves the session to phase and optionally logs a line
func (s *Service) setPhase(phase model.Phase, line string) {
	s.mu.Lock()
	s.snap.Phase = phase
	if line != "" {
		s.appendLogLocked(line)
	}
	s.mu.Unlock()

	s.notifyUpdate()
}

// appendLogLocked adds a session log line; s.mu must be held
func (s *Service) appendLogLocked(line string) {
	s.snap.Log = append(s.snap.Log, line)
	if over := len(s.snap.Log) - MaxLogLines; over > 0 {
		s.snap.Log = append([]string(nil), s.snap.Log[over:]...)
	}
	s.snap.LastLogLine = line
}

// copySnapshotLocked copies the snapshot including its log; s.mu must be held
func (s *Service) copySnapshotLocked() model.Snapshot {
	snap := s.snap
	snap.Seq = s.seq
	snap.Log = append([]string(nil), s.snap.Log...)
	return snap
}

// notifyUpdate calls the update callback if set. Callbacks may run
// concurrently and arrive out of order; Seq tells the newest apart.
func (s *Service) notifyUpdate() {
	s.mu.Lock()
	s.seq++
	callback := s.onUpdate
	snap := s.copySnapshotLocked()
	s.mu.Unlock()

	if callback != nil {
		callback(snap)
	}
}

// validateRequest trims and checks a request
func validateRequest(req model.DownloadRequest) (model.DownloadRequest, error) {
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return req, &ValidationError{Field: "url", Reason: "please enter a video URL"}
	}

	quality, err := model.ParseQuality(string(req.Quality))
	if err != nil {
		return req, &ValidationError{Field: "quality", Reason: err.Error()}
	}
	req.Quality = quality

	req.DestinationFolder = strings.TrimSpace(req.DestinationFolder)
	if req.DestinationFolder == "" {
		return req, &ValidationError{Field: "destination folder", Reason: "choose a folder to save into"}
	}
	return req, nil
}

// finishedLine formats the log line for a finished item
func finishedLine(title string) string {
	if title == "" {
		return "Download Finished!"
	}
	return "Download Finished: " + title
}

// generateSessionID generates a unique session ID
func generateSessionID() string {
	return "session-" + uuid.New().String()
}
