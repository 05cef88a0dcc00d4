package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var LocalesFS embed.FS

// DefaultLocale is the fallback when the requested locale or key is
// absent.
const DefaultLocale = "en"

// Catalog maps message key x locale to a localized string.
type Catalog struct {
	messages map[string]map[string]string // locale -> key -> text
}

// NewCatalog loads every locales/<code>.yaml from the given filesystem.
func NewCatalog(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	messages := make(map[string]map[string]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", name, err)
		}
		var m map[string]string
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", name, err)
		}
		messages[strings.TrimSuffix(name, ".yaml")] = m
	}

	if _, ok := messages[DefaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q missing", DefaultLocale)
	}
	return &Catalog{messages: messages}, nil
}

// Message resolves key for the requested locale, falling back to the
// default locale and finally to an empty string.
func (c *Catalog) Message(key, locale string) string {
	if m, ok := c.messages[strings.ToLower(locale)]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return c.messages[DefaultLocale][key]
}
