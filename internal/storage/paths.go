// Package storage keeps an archive of finished games, aggregate results and
// driver preferences in BadgerDB.
package storage

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessrules"

// Subdirectories of the data directory.
const (
	dbSubdir     = "db"
	exportSubdir = "games"
)

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/chessrules/
// - Linux: $XDG_DATA_HOME/chessrules/ or ~/.local/share/chessrules/
// - Windows: %APPDATA%/chessrules/
func GetDataDir() (string, error) {
	return dataPath()
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dir, err := dataPath(dbSubdir)
	if err != nil {
		return "", err
	}
	log.Printf("[STORAGE] Database directory: %s", dir)
	return dir, nil
}

// GetExportDir returns the directory that ExportGame writes move lists to
// when the caller does not name one.
func GetExportDir() (string, error) {
	return dataPath(exportSubdir)
}

// dataPath joins elem onto the application data directory and creates it.
func dataPath(elem ...string) (string, error) {
	base, err := baseDataDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(append([]string{base, appName}, elem...)...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func baseDataDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}
