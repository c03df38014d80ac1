// internal/syntax/registry.go
package syntax

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/stage/internal/logger"
)

var (
	// Global language registry. Populated once; read-only afterwards.
	registry struct {
		sync.RWMutex
		languages     []*Language
		tagToLanguage map[string]*Language
		extToLanguage map[string]*Language
	}

	initOnce sync.Once
)

// Initialize builds the registry from the built-in language set.
// Safe to call more than once.
func Initialize() {
	initOnce.Do(func() {
		registry.tagToLanguage = make(map[string]*Language)
		registry.extToLanguage = make(map[string]*Language)

		for _, lang := range []*Language{
			goLanguage(),
			rustLanguage(),
			pythonLanguage(),
			javascriptLanguage(),
			jsonLanguage(),
			yamlLanguage(),
			tomlLanguage(),
			bashLanguage(),
		} {
			register(lang)
		}

		logger.Debugf("Language registry initialized with %d languages", len(registry.languages))
	})
}

// register adds a language to the registry. Caller holds no locks;
// only called from Initialize.
func register(lang *Language) {
	registry.Lock()
	defer registry.Unlock()

	registry.languages = append(registry.languages, lang)

	for _, alias := range lang.Aliases {
		tag := strings.ToLower(alias)
		if existing, ok := registry.tagToLanguage[tag]; ok {
			logger.Warnf("Language tag %q already registered to %s, overriding with %s",
				tag, existing.Name, lang.Name)
		}
		registry.tagToLanguage[tag] = lang
	}
	for _, ext := range lang.Extensions {
		registry.extToLanguage[strings.ToLower(ext)] = lang
	}
}

// Get returns the language for a tag like "go" or "py".
// Returns nil for an unknown tag; callers degrade to plain Text
// tokens, this is not an error.
func Get(tag string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()
	return registry.tagToLanguage[strings.ToLower(tag)]
}

// GetForTitle resolves a language from a file-like title's extension,
// used when an artifact carries no language tag.
func GetForTitle(title string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	ext := strings.ToLower(filepath.Ext(title))
	if ext == "" {
		return nil
	}
	return registry.extToLanguage[ext]
}

// All returns the registered languages.
func All() []*Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	out := make([]*Language, len(registry.languages))
	copy(out, registry.languages)
	return out
}
