package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

// Environment variables read by LoadSettings.
const (
	EnvLogLevel  = "PIXELSORT_MCP_LOG_LEVEL"
	EnvBlockSize = "PIXELSORT_MCP_BLOCK_SIZE"
)

// DefaultBlockSize is the tile edge used when an image is gathered and
// written back block by block.
const DefaultBlockSize = 256

// Settings holds process-wide options that do not belong to a single sort run.
type Settings struct {
	LogLevel  log.Level
	BlockSize int
}

// DefaultSettings returns info-level logging and DefaultBlockSize.
func DefaultSettings() Settings {
	return Settings{LogLevel: log.InfoLevel, BlockSize: DefaultBlockSize}
}

// LoadSettings reads Settings from the environment. Missing or invalid values
// keep their defaults.
func LoadSettings() Settings {
	return settingsFrom(os.Getenv)
}

func settingsFrom(getenv func(string) string) Settings {
	s := DefaultSettings()

	if v := getenv(EnvLogLevel); v != "" {
		if level, err := log.ParseLevel(v); err == nil {
			s.LogLevel = level
		}
	}
	if v := getenv(EnvBlockSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.BlockSize = n
		}
	}
	return s
}
