package model

// Package model defines domain data structures used across the app: download
// requests, quality presets, session phases, progress events and the snapshot
// the UI renders. Structures are plain values so they can be copied across
// goroutines without sharing state.
