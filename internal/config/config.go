// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/stage/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // Embed logger config under [logger] table
	Stage  StageConfig   `toml:"stage"`  // Workspace-specific settings
}

// StageConfig holds workspace-specific settings.
type StageConfig struct {
	CacheCapacity   int  `toml:"cache_capacity"`   // Highlighted lines kept across artifacts
	ChunkSize       int  `toml:"chunk_size"`       // Lines per chunk for large artifacts
	ContextLines    int  `toml:"context_lines"`    // Unchanged lines kept between diff regions
	DiffDPLimit     int  `toml:"diff_dp_limit"`    // Line-count product above which diff uses the fast path
	SystemClipboard bool `toml:"system_clipboard"` // Yank to the system clipboard
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // Empty means default path logic in logger.Init applies
		},
		Stage: StageConfig{
			CacheCapacity:   DefaultCacheCapacity,
			ChunkSize:       DefaultChunkSize,
			ContextLines:    DefaultContextLines,
			DiffDPLimit:     DefaultDiffDPLimit,
			SystemClipboard: SystemClipboard,
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file.
// It returns the loaded config and an error (nil if file not found or loaded successfully).
func loadFromFile(filePath string, verbose bool) (*Config, error) {
	cfg := &Config{} // Start empty, we'll merge later
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return cfg, nil // File not found is not an error here
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	if verbose {
		logger.Debugf("Attempting to load configuration from: %s", filePath)
	}
	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	if verbose {
		logger.Infof("Successfully loaded configuration from: %s", filePath)
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Stage.CacheCapacity <= 0 {
		c.Stage.CacheCapacity = defaults.Stage.CacheCapacity
	}
	if c.Stage.ChunkSize <= 0 {
		c.Stage.ChunkSize = defaults.Stage.ChunkSize
	}
	if c.Stage.ContextLines < 0 { // Allow 0
		c.Stage.ContextLines = defaults.Stage.ContextLines
	}
	if c.Stage.DiffDPLimit <= 0 {
		c.Stage.DiffDPLimit = defaults.Stage.DiffDPLimit
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and validation.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		// During initial load, avoid logging as logger isn't initialized yet
		verbose := false

		cfg := NewDefaultConfig() // Start with defaults

		// Determine effective config file path
		effectivePath := configFilePath
		if effectivePath == "" { // If flag not set, try default location
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			} else {
				effectivePath = "" // Cannot load default path
			}
		}

		// Load from file if path is determined
		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath, verbose)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				// Merge file config settings that are set
				if fileCfg.Logger.LogLevel != "" {
					cfg.Logger = fileCfg.Logger
				}
				if fileCfg.Stage.CacheCapacity > 0 {
					cfg.Stage.CacheCapacity = fileCfg.Stage.CacheCapacity
				}
				if fileCfg.Stage.ChunkSize > 0 {
					cfg.Stage.ChunkSize = fileCfg.Stage.ChunkSize
				}
				if fileCfg.Stage.ContextLines >= 0 {
					cfg.Stage.ContextLines = fileCfg.Stage.ContextLines
				}
				if fileCfg.Stage.DiffDPLimit > 0 {
					cfg.Stage.DiffDPLimit = fileCfg.Stage.DiffDPLimit
				}
				cfg.Stage.SystemClipboard = fileCfg.Stage.SystemClipboard
			}
		}

		// Apply flag overrides (if flags were parsed)
		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		// Validate the final merged configuration
		cfg.validate()

		loadedConfig = cfg // Store globally
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		// This indicates a programming error - LoadConfig should be called in main.
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
