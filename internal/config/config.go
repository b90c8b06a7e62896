// Package config holds runtime settings: defaults, validation, and the enum
// types the command-line flags map onto.
package config

import (
	"fmt"
	"strings"
)

// LogFormat selects the zap encoder used for diagnostics on stderr.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console" // Human readable (default).
	LogFormatJSON    LogFormat = "json"    // One JSON object per line.
)

// Set implements pflag.Value so the flag rejects unknown formats at parse time.
func (f *LogFormat) Set(s string) error {
	switch v := LogFormat(strings.ToLower(strings.TrimSpace(s))); v {
	case LogFormatConsole, LogFormatJSON:
		*f = v
		return nil
	default:
		return fmt.Errorf("invalid log format %q (use 'console' or 'json')", s)
	}
}

func (f *LogFormat) String() string { return string(*f) }
func (f *LogFormat) Type() string   { return "format" }

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then by command-line flags before being passed by pointer to the packages
// that need it.
type Config struct {
	// Root is the directory to scan (the single positional argument).
	Root string

	Verbose   bool      // DEBUG logging on stderr.
	LogFormat LogFormat // Default: "console".

	// ProgressEvery is how many files pass between progress log lines.
	ProgressEvery int
}

func DefaultConfig() Config {
	return Config{
		LogFormat:     LogFormatConsole,
		ProgressEvery: 1000,
	}
}

// Validate checks enum fields and requires a scan root.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q (use 'console' or 'json')", c.LogFormat)
	}
	if c.ProgressEvery <= 0 {
		return fmt.Errorf("progress interval must be positive, got %d", c.ProgressEvery)
	}
	if c.Root == "" {
		return fmt.Errorf("directory path must not be empty")
	}
	return nil
}
