package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the llmshim data directory.
// - Windows: %APPDATA%\llmshim
// - Other OS: ~/.llmshim
// LLMSHIM_HOME overrides both.
func DataDir() string {
	if dir := os.Getenv("LLMSHIM_HOME"); dir != "" {
		return dir
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "llmshim")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".llmshim"
	}
	return filepath.Join(home, ".llmshim")
}

// DBPath returns the path to the SQLite database file.
func DBPath() string {
	return filepath.Join(DataDir(), "llmshim.db")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
