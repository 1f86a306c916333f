package platform

// Package platform adapts the ytdlp library to the download extractor contract
// and provides OS helpers: download directory discovery and folder opening.
