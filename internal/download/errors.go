package download

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyRunning is returned by Start while a session is active.
	ErrAlreadyRunning = errors.New("a download is already in progress")
	// ErrCancelledByUser is returned from the progress callback to abort the
	// extractor, and reported as the session error after a stop request.
	ErrCancelledByUser = errors.New("download stopped by user")
)

// ValidationError rejects a request before any worker starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// EnumerationError wraps a failure of the metadata pre-pass. Its message is
// the collaborator's message, unchanged.
type EnumerationError struct {
	Err error
}

func (e *EnumerationError) Error() string { return e.Err.Error() }
func (e *EnumerationError) Unwrap() error { return e.Err }

// DownloadError wraps a failure of the download pass that was not caused by
// a stop request. Its message is the collaborator's message, unchanged.
type DownloadError struct {
	Err error
}

func (e *DownloadError) Error() string { return e.Err.Error() }
func (e *DownloadError) Unwrap() error { return e.Err }

// IsCancelled reports whether err ends a session because the user stopped it.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelledByUser)
}
