// Package logfinder locates the CoH2 log file.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvLogFile is the environment variable overriding the log file path.
const EnvLogFile = "COH2LIVE_LOGFILE"

// LogFileName is the name of the log the game writes during play.
const LogFileName = "warnings.log"

// ErrLogFileNotFound is returned when no CoH2 log file can be found.
var ErrLogFileNotFound = errors.New("log file not found")

// DefaultLogFiles returns candidate log file paths in priority order.
// CoH2 writes its log under the user's documents folder on Windows.
func DefaultLogFiles() []string {
	userProfile := os.Getenv("USERPROFILE")
	if userProfile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			userProfile = home
		}
	}
	if userProfile == "" {
		return nil
	}

	return []string{
		filepath.Join(userProfile, "Documents", "My Games", "Company of Heroes 2", LogFileName),
		filepath.Join(userProfile, "OneDrive", "Documents", "My Games", "Company of Heroes 2", LogFileName),
	}
}

// FindLogFile returns the CoH2 log file path.
//
// Priority:
//  1. explicit (if non-empty)
//  2. COH2LIVE_LOGFILE environment variable
//  3. Auto-detect from DefaultLogFiles()
//
// An explicit or env path is returned even when the file does not exist
// yet: the game creates it on launch and the tailer retries opening.
// Auto-detection only returns existing files.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		return resolve(explicit), nil
	}

	if envFile := os.Getenv(EnvLogFile); envFile != "" {
		return resolve(envFile), nil
	}

	for _, path := range DefaultLogFiles() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return resolve(path), nil
		}
	}

	return "", fmt.Errorf("%w: set %s or pass an explicit path", ErrLogFileNotFound, EnvLogFile)
}

// resolve follows symlinks for path consistency, falling back to the
// original path when resolution fails.
func resolve(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}
