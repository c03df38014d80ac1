// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	ContextLines    *int
	ChunkSize       *int
	CacheCapacity   *int
	SystemClipboard *bool
	Stats           *bool
}

// DefineFlags sets up the command-line flags and associates them with the Flags struct fields.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = flag.Bool("version", false, "Show version information and exit")
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.ContextLines = flag.Int("context", -1, "Unchanged lines kept between diff regions - Overrides config file") // Use -1 to indicate unset
	f.ChunkSize = flag.Int("chunksize", 0, "Lines per chunk for large artifacts - Overrides config file")         // Use 0 to indicate unset
	f.CacheCapacity = flag.Int("cachecap", 0, "Highlighted lines kept in cache - Overrides config file")          // Use 0 to indicate unset
	f.SystemClipboard = flag.Bool("system-clipboard", false, "Use system clipboard instead of internal clipboard")
	f.Stats = flag.Bool("stats", false, "Print per-artifact diff stats for the session and exit")
}

// ParseFlags parses the defined command-line flags into the Flags struct.
// It returns the remaining non-flag arguments (e.g., the session file path).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args() // Return non-flag arguments
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	// Visit only processes flags that were actually set
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil { // Empty string is valid ("-")
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "context":
			if f.ContextLines != nil && *f.ContextLines >= 0 {
				cfg.Stage.ContextLines = *f.ContextLines // Only override if non-negative
			}
		case "chunksize":
			if f.ChunkSize != nil && *f.ChunkSize > 0 {
				cfg.Stage.ChunkSize = *f.ChunkSize // Only override if positive
			}
		case "cachecap":
			if f.CacheCapacity != nil && *f.CacheCapacity > 0 {
				cfg.Stage.CacheCapacity = *f.CacheCapacity
			}
		case "system-clipboard":
			if f.SystemClipboard != nil {
				cfg.Stage.SystemClipboard = *f.SystemClipboard
			}
		}
	})
}
