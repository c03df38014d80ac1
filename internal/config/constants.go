package config

// Base application details
const AppName = "stage"
const ConfigDirName = "stage"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"   // Active theme file
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "stage.log"

// UI Layout
const StatusBarHeight = 1
const TabBarHeight = 1

// Workspace defaults
const DefaultCacheCapacity = 10000
const DefaultChunkSize = 500
const DefaultContextLines = 3
const DefaultDiffDPLimit = 4 << 20
const SystemClipboard = true
