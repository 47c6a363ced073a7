package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
)

// FileConfig holds configuration for persistent log output.
type FileConfig struct {
	Path       string // log file path; "-" for stderr, "none" to disable
	MaxSizeMB  int    // rotate after this many megabytes (default 10)
	MaxBackups int    // rotated files to retain (default 5)
	MaxAgeDays int    // days to retain rotated files (default 28)
}

// NewWriter returns the log output writer for the configuration. File
// output rotates via lumberjack so long-running deployments cannot fill
// the disk.
func NewWriter(cfg *FileConfig) io.Writer {
	switch cfg.Path {
	case "none":
		return io.Discard
	case "", "-":
		return os.Stderr
	}
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 5
	}
	maxAge := cfg.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 28
	}
	return &lumberjack.Logger{
		Filename:   filepath.Clean(cfg.Path),
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
	}
}
