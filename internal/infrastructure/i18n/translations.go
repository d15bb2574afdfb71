package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	yaml "go.yaml.in/yaml/v3"
	"golang.org/x/text/language"

	"i18ntpl/internal/domain"
	"i18ntpl/internal/ports/output"
	"i18ntpl/pkg/templater"
)

//go:embed active.*.toml
var localeFS embed.FS

// Ensure Catalog implements the output.Catalog port.
var _ output.Catalog = (*Catalog)(nil)

// Catalog keeps one flat translation dictionary per language. Message
// documents use the go-i18n file layout: nested tables become dot-joined
// message IDs and a message contributes its "other" text.
type Catalog struct {
	mu              sync.RWMutex
	defaultLanguage language.Tag
	unmarshalFuncs  map[string]i18n.UnmarshalFunc
	messages        map[language.Tag]map[string]string
	tags            []language.Tag
	matcher         language.Matcher
	logger          *zap.Logger
}

// NewCatalog returns an empty catalog. An unparsable defaultLocale falls
// back to English.
func NewCatalog(defaultLocale string, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		logger.Warn("i18n: invalid default locale, using en", zap.String("locale", defaultLocale), zap.Error(err))
		tag = language.English
	}
	return &Catalog{
		defaultLanguage: tag,
		unmarshalFuncs: map[string]i18n.UnmarshalFunc{
			"toml": toml.Unmarshal,
			"yaml": yaml.Unmarshal,
			"yml":  yaml.Unmarshal,
		},
		messages: map[language.Tag]map[string]string{},
		logger:   logger,
	}
}

// NewEmbeddedCatalog builds a Catalog from the embedded active.*.toml
// documents. A document that fails to parse is logged and skipped.
func NewEmbeddedCatalog(defaultLocale string, logger *zap.Logger) *Catalog {
	c := NewCatalog(defaultLocale, logger)

	files, err := fs.Glob(localeFS, "active.*.toml")
	if err != nil {
		c.logger.Error("i18n: listing embedded locales failed", zap.Error(err))
		return c
	}
	for _, file := range files {
		buf, err := localeFS.ReadFile(file)
		if err != nil {
			c.logger.Warn("i18n: failed to read embedded locale", zap.String("file", file), zap.Error(err))
			continue
		}
		if err := c.AddMessageFile(file, buf); err != nil {
			c.logger.Warn("i18n: failed to load embedded locale", zap.String("file", file), zap.Error(err))
		}
	}
	return c
}

// DefaultLanguage returns the language used when nothing else matches.
func (c *Catalog) DefaultLanguage() language.Tag {
	return c.defaultLanguage
}

// AddMessageFile parses buf as a go-i18n message document. The language and
// the format come from name, e.g. "active.fr.toml" or "de.yaml".
func (c *Catalog) AddMessageFile(name string, buf []byte) error {
	format := strings.TrimPrefix(path.Ext(name), ".")
	if _, ok := c.unmarshalFuncs[format]; !ok && format != "json" {
		return fmt.Errorf("i18n: %s: %w %q", name, domain.ErrUnknownFormat, format)
	}

	file, err := i18n.ParseMessageFileBytes(buf, name, c.unmarshalFuncs)
	if err != nil {
		return fmt.Errorf("i18n: parse %s: %w", name, err)
	}
	if file.Tag == language.Und {
		return fmt.Errorf("i18n: %s: %w: no language in file name", name, domain.ErrUnsupportedLanguage)
	}

	entries := make(map[string]string, len(file.Messages))
	for _, m := range file.Messages {
		text := m.Other
		if text == "" {
			text = m.One
		}
		entries[m.ID] = text
	}
	c.merge(file.Tag, entries)
	c.logger.Debug("i18n: loaded messages", zap.String("file", name), zap.Stringer("lang", file.Tag), zap.Int("count", len(entries)))
	return nil
}

// AddMessages merges flat entries into the dictionary of locale.
func (c *Catalog) AddMessages(locale string, entries map[string]string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("i18n: locale %q: %w", locale, domain.ErrUnsupportedLanguage)
	}
	c.merge(tag, entries)
	return nil
}

// AddValue flattens a structured translation tree and merges it into the
// dictionary of locale.
func (c *Catalog) AddValue(locale string, value any) error {
	entries, err := templater.Flatten(value)
	if err != nil {
		return fmt.Errorf("i18n: locale %q: %w", locale, err)
	}
	return c.AddMessages(locale, entries)
}

// merge replaces the dictionary of tag with a copy holding entries, so maps
// already handed out by Messages are never written to.
func (c *Catalog) merge(tag language.Tag, entries map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, exists := c.messages[tag]
	next := make(map[string]string, len(current)+len(entries))
	for k, v := range current {
		next[k] = v
	}
	for k, v := range entries {
		next[k] = v
	}
	c.messages[tag] = next

	if !exists {
		c.tags = append(c.tags, tag)
		c.matcher = language.NewMatcher(c.tags)
	}
}

func (c *Catalog) Messages(tag language.Tag) (map[string]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.messages[tag]
	return m, ok
}

func (c *Catalog) Languages() []language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Match returns the loaded language that locale confidently designates.
func (c *Catalog) Match(locale string) (language.Tag, bool) {
	want, err := language.Parse(locale)
	if err != nil {
		return language.Und, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.matcher == nil {
		return language.Und, false
	}
	if _, ok := c.messages[want]; ok {
		return want, true
	}
	_, idx, conf := c.matcher.Match(want)
	if conf < language.High || idx < 0 || idx >= len(c.tags) {
		return language.Und, false
	}
	return c.tags[idx], true
}
