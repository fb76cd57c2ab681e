//go:build windows

package storage

import (
	"os"
	"path/filepath"
)

func platformConfigDefault() string {
	return filepath.Join(os.Getenv("APPDATA"), "promptlens")
}

func platformDataDefault() string {
	return filepath.Join(os.Getenv("LOCALAPPDATA"), "promptlens", "data")
}

func platformCacheDefault() string {
	return filepath.Join(os.Getenv("LOCALAPPDATA"), "promptlens", "cache")
}

func platformStateDefault() string {
	return filepath.Join(os.Getenv("LOCALAPPDATA"), "promptlens", "state")
}
