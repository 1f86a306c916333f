package model

// Phase represents where a download session is in its lifecycle
type Phase string

const (
	// PhaseIdle means no session is running
	PhaseIdle Phase = "Idle"

	// PhaseEnumerating means the metadata pre-pass is counting items
	PhaseEnumerating Phase = "Enumerating"

	// PhaseDownloading means items are being transferred
	PhaseDownloading Phase = "Downloading"

	// PhaseCompleted means every item was processed without a stop request
	PhaseCompleted Phase = "Completed"

	// PhaseCancelled means the session was stopped by user
	PhaseCancelled Phase = "Cancelled"

	// PhaseFailed means enumeration or download failed
	PhaseFailed Phase = "Failed"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// IsActive returns true if a worker is busy in this phase
func (p Phase) IsActive() bool {
	return p == PhaseEnumerating || p == PhaseDownloading
}

// IsTerminal returns true if the phase ends a session (completed, cancelled, or failed)
func (p Phase) IsTerminal() bool {
	return p == PhaseCompleted || p == PhaseCancelled || p == PhaseFailed
}
