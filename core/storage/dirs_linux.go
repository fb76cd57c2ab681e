//go:build linux || darwin

package storage

import (
	"os"
	"path/filepath"
)

func platformConfigDefault() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "promptlens")
}

func platformDataDefault() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "promptlens")
}

func platformCacheDefault() string {
	return filepath.Join(os.Getenv("HOME"), ".cache", "promptlens")
}

func platformStateDefault() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "state", "promptlens")
}
