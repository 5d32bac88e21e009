package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger writing to w with the "tasked" prefix. Debug
// forces the debug level; otherwise LogLevel applies.
func (c *Config) NewLogger(w io.Writer) *log.Logger {
	level := log.WarnLevel
	if lvl, err := log.ParseLevel(c.LogLevel); err == nil {
		level = lvl
	}
	if c.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: AppName,
	})
}

// OpenLogFile opens LogFile for appending. It returns io.Discard and a no-op
// closer when no log file is configured.
func (c *Config) OpenLogFile() (io.Writer, func() error, error) {
	if c.LogFile == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
