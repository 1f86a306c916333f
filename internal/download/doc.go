package download

// Package download implements the download session core: the session state
// shared between the UI goroutine and the worker, the progress translator that
// turns extractor events into item and aggregate percentages, and the
// orchestrator that runs the enumerate-then-download protocol on a single
// worker goroutine with cooperative cancellation.
