// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/stage/internal/logger" // For logging missing styles
	"github.com/gdamore/tcell/v2"
)

// Theme maps style names to terminal styles. The maps are built once
// and read-only afterwards.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style name, falling back to the base name
// (part before the first dot) and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	// 1. Try exact name
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// 2. Try base name (part before first dot)
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.Debugf("Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	// 3. Return "Default" style
	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	// 4. Absolute fallback
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// --- DevComfort Dark Theme Definition ---

var DevComfortDark Theme

func init() {
	// --- Palette for DevComfort Dark ---
	dcBackground := tcell.NewHexColor(0x2a2f38) // Slightly muted dark blue/grey (StatusBar BG)
	dcForeground := tcell.NewHexColor(0xc5cdd9) // Soft off-white (Default Text)
	dcComment := tcell.NewHexColor(0x5c6370)    // Muted Grey (Comments, Punctuation)
	dcOrange := tcell.NewHexColor(0xd19a66)     // Muted Orange (Numbers, Constants)
	dcYellow := tcell.NewHexColor(0xe5c07b)     // Soft Yellow (Functions, Attributes)
	dcGreen := tcell.NewHexColor(0x98c379)      // Soft Green (Strings, Added Lines)
	dcCyan := tcell.NewHexColor(0x56b6c2)       // Soft Cyan (Types)
	dcBlue := tcell.NewHexColor(0x61afef)       // Soft Blue (Keywords)
	dcMagenta := tcell.NewHexColor(0xc678dd)    // Soft Magenta/Purple (Attributes)
	dcRed := tcell.NewHexColor(0xe06c75)        // Soft Red (Removed Lines)

	// --- Base Style ---
	// Use terminal background, DevComfort foreground
	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)

	DevComfortDark = Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			// --- UI Elements ---
			"Default":    baseStyle,
			"Selection":  baseStyle.Reverse(true),
			"LineNumber": baseStyle.Foreground(dcComment),

			"TabBar":      tcell.StyleDefault.Background(dcBackground).Foreground(dcComment),
			"TabActive":   tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground).Bold(true),
			"TabDirty":    tcell.StyleDefault.Background(dcBackground).Foreground(dcYellow),
			"TabReadOnly": tcell.StyleDefault.Background(dcBackground).Foreground(dcCyan),

			"StatusBar":         tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),
			"StatusBarModified": tcell.StyleDefault.Background(dcBackground).Foreground(dcYellow),
			"StatusBarMode":     tcell.StyleDefault.Background(dcBackground).Foreground(dcBlue).Bold(true),
			"StatusBarStats":    tcell.StyleDefault.Background(dcBackground).Foreground(dcGreen),

			// --- Diff Rendering ---
			"DiffAdded":   baseStyle.Foreground(dcGreen),
			"DiffRemoved": baseStyle.Foreground(dcRed),
			"DiffContext": baseStyle.Foreground(dcComment),
			"DiffHeader":  baseStyle.Foreground(dcCyan).Bold(true),

			// --- Syntax Highlighting ---
			"text":        baseStyle,
			"keyword":     baseStyle.Foreground(dcBlue).Bold(true),
			"string":      baseStyle.Foreground(dcGreen),
			"comment":     baseStyle.Foreground(dcComment).Italic(true),
			"number":      baseStyle.Foreground(dcOrange),
			"type":        baseStyle.Foreground(dcCyan),
			"function":    baseStyle.Foreground(dcYellow),
			"constant":    baseStyle.Foreground(dcOrange),
			"variable":    baseStyle.Foreground(dcForeground),
			"operator":    baseStyle.Foreground(dcForeground),
			"punctuation": baseStyle.Foreground(dcComment),
			"attribute":   baseStyle.Foreground(dcMagenta),
		},
	}

	// Set DevComfortDark as the default theme on init
	CurrentTheme = &DevComfortDark
}

var CurrentTheme *Theme

func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &DevComfortDark // Ensure default theme is set
	}
	return CurrentTheme
}

func SetCurrentTheme(theme *Theme) {
	if theme != nil {
		CurrentTheme = theme
		logger.Infof("Theme switched to: %s", theme.Name)
	}
}
