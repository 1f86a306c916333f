package ui

// Package ui contains the Fyne-based desktop shell. It forwards user commands
// to a download.Controller and renders the snapshots it publishes: per-item and
// aggregate progress, the session log and the last error. All UI strings are
// localized via Localization.
