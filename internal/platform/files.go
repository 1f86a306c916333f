package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// FallbackDownloadsDir is used when the home directory cannot be resolved
const FallbackDownloadsDir = "/tmp/downloads"

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	if runtime.GOOS == OSAndroid || os.Getenv("ANDROID_DATA") != "" {
		// External storage so files appear in Gallery and file managers
		return "/sdcard/Download", nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, "Downloads"), nil
}

// DefaultDownloadsDir returns GetHomeDownloadsDir or FallbackDownloadsDir on error
func DefaultDownloadsDir() string {
	dir, err := GetHomeDownloadsDir()
	if err != nil {
		return FallbackDownloadsDir
	}
	return dir
}

// OpenFolder opens a directory in the system file manager
func OpenFolder(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return fmt.Errorf("folder does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a folder: %s", dirPath)
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	name, err := openCommand(runtime.GOOS)
	if err != nil {
		return err
	}
	_, err = startDetached(exec.Command(name, absPath))
	return err
}

// startDetached starts cmd and reaps it in the background. The returned
// channel yields the exit result once the process is gone.
func startDetached(cmd *exec.Cmd) (<-chan error, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	return done, nil
}

// openCommand returns the folder-opening command for an OS
func openCommand(goos string) (string, error) {
	switch goos {
	case OSDarwin:
		return OpenCommand, nil
	case OSWindows:
		return ExplorerCommand, nil
	case OSLinux:
		return XDGOpenCommand, nil
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
}
