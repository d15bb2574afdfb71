package application

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"i18ntpl/internal/domain"
	"i18ntpl/internal/ports/input"
	"i18ntpl/internal/ports/output"
	"i18ntpl/pkg/templater"
)

var _ input.TranslationUseCase = (*TranslationService)(nil)

// sourceCatalog is reported when the root message key itself is missing.
const sourceCatalog templater.Source = "the catalog"

// TranslationService holds the active language and renders catalog
// messages through the templater.
type TranslationService struct {
	catalog   output.Catalog
	supported []language.Tag
	maxDepth  int
	logger    *zap.Logger

	mu      sync.RWMutex
	current language.Tag
}

// NewTranslationService wires a catalog to a language state. An empty
// currentLanguage selects the catalog default. When supported is empty every
// language loaded in the catalog is supported. maxDepth bounds
// nested template resolution for calls that do not set their own (0 = none).
func NewTranslationService(
	catalog output.Catalog,
	currentLanguage string,
	supported []string,
	maxDepth int,
	logger *zap.Logger,
) (*TranslationService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var tags []language.Tag
	if len(supported) == 0 {
		tags = catalog.Languages()
	} else {
		for _, lang := range supported {
			tag, err := language.Parse(strings.TrimSpace(lang))
			if err != nil {
				return nil, fmt.Errorf("application: supported language %q: %w", lang, domain.ErrUnsupportedLanguage)
			}
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("application: %w", domain.ErrEmptyCatalog)
	}

	s := &TranslationService{
		catalog:   catalog,
		supported: tags,
		maxDepth:  maxDepth,
		logger:    logger,
	}
	if strings.TrimSpace(currentLanguage) == "" {
		currentLanguage = catalog.DefaultLanguage().String()
	}
	if err := s.SetLanguage(currentLanguage); err != nil {
		return nil, err
	}
	return s, nil
}

// CurrentLanguage returns the active language code.
func (s *TranslationService) CurrentLanguage() string {
	return s.language().String()
}

// SupportedLanguages returns the codes SetLanguage accepts.
func (s *TranslationService) SupportedLanguages() []string {
	out := make([]string, 0, len(s.supported))
	for _, tag := range s.supported {
		out = append(out, tag.String())
	}
	return out
}

// SetLanguage switches the active language. A locale the catalog negotiates
// to a supported language (e.g. "fr-FR" for "fr") selects it.
func (s *TranslationService) SetLanguage(lang string) error {
	tag, ok := s.matchSupported(lang)
	if !ok {
		return fmt.Errorf("application: the language `%s` is not available: %w", lang, domain.ErrUnsupportedLanguage)
	}
	s.mu.Lock()
	s.current = tag
	s.mu.Unlock()
	return nil
}

func (s *TranslationService) matchSupported(lang string) (language.Tag, bool) {
	want, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return language.Und, false
	}
	for _, tag := range s.supported {
		if tag == want {
			return tag, true
		}
	}
	matched, ok := s.catalog.Match(want.String())
	if !ok {
		return language.Und, false
	}
	for _, tag := range s.supported {
		if tag == matched {
			return tag, true
		}
	}
	return language.Und, false
}

func (s *TranslationService) language() language.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// T returns the raw catalog value of key, without resolving directives.
func (s *TranslationService) T(key string) string {
	tag := s.language()
	if dict, ok := s.catalog.Messages(tag); ok {
		if value, ok := dict[key]; ok {
			return value
		}
	}
	return missingPlaceholder(tag, "T", key)
}

// Template resolves key with structured data in safe mode.
func (s *TranslationService) Template(key string, data any) string {
	flat, err := templater.Flatten(data)
	if err != nil {
		return err.Error()
	}
	return s.TemplateMap(key, flat)
}

// TemplateMap resolves key with already flattened data in safe mode.
// Missing values show up as ['LANG'](D - 'key') or ['LANG'](T - 'key').
func (s *TranslationService) TemplateMap(key string, data map[string]string) string {
	tag := s.language()
	return s.renderText(tag, key, data, safeOptions(tag))
}

// TemplateWithOptions resolves key with structured data and caller options.
func (s *TranslationService) TemplateWithOptions(key string, data any, opts templater.Options) string {
	flat, err := templater.Flatten(data)
	if err != nil {
		return err.Error()
	}
	return s.TemplateMapWithOptions(key, flat, opts)
}

// TemplateMapWithOptions resolves key with flattened data and caller options.
// Errors are rendered as their message.
func (s *TranslationService) TemplateMapWithOptions(key string, data map[string]string, opts templater.Options) string {
	return s.renderText(s.language(), key, data, opts)
}

// Render is TemplateWithOptions returning the error instead of its text.
func (s *TranslationService) Render(key string, data any, opts templater.Options) (string, error) {
	flat, err := templater.Flatten(data)
	if err != nil {
		return "", err
	}
	return s.render(s.language(), key, flat, opts)
}

// Eval resolves an inline template against the dictionary of the active
// language.
func (s *TranslationService) Eval(template string, data any, opts templater.Options) (string, error) {
	flat, err := templater.Flatten(data)
	if err != nil {
		return "", err
	}
	tag := s.language()
	dict, ok := s.catalog.Messages(tag)
	if !ok {
		return "", fmt.Errorf("application: language %s: %w", tag, domain.ErrMessageNotFound)
	}
	return templater.Generate(template, dict, flat, s.withDepth(opts))
}

func (s *TranslationService) renderText(tag language.Tag, key string, data map[string]string, opts templater.Options) string {
	out, err := s.render(tag, key, data, opts)
	if err == nil {
		return out
	}
	s.logger.Debug("i18n: render failed", zap.String("key", key), zap.Stringer("lang", tag), zap.Error(err))
	if errors.Is(err, domain.ErrMessageNotFound) {
		return missingPlaceholder(tag, "T", key)
	}
	return err.Error()
}

func (s *TranslationService) render(tag language.Tag, key string, data map[string]string, opts templater.Options) (string, error) {
	dict, ok := s.catalog.Messages(tag)
	if !ok {
		return "", fmt.Errorf("application: language %s: %w", tag, domain.ErrMessageNotFound)
	}
	template, ok := dict[key]
	if !ok {
		return "", &templater.UnknownFieldError{Key: key, Source: sourceCatalog}
	}
	return templater.Generate(template, dict, data, s.withDepth(opts))
}

func (s *TranslationService) withDepth(opts templater.Options) templater.Options {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = s.maxDepth
	}
	return opts
}

func safeOptions(tag language.Tag) templater.Options {
	return templater.Options{
		SafeParse:          true,
		DisplayMissingKeys: true,
		OverrideMissingKeys: func(key string) string {
			return missingPlaceholder(tag, "D", key)
		},
		DisplayMissingTranslations: true,
		OverrideMissingTranslations: func(key string) string {
			return missingPlaceholder(tag, "T", key)
		},
	}
}

func missingPlaceholder(tag language.Tag, kind, key string) string {
	return fmt.Sprintf("['%s'](%s - '%s')", strings.ToUpper(tag.String()), kind, key)
}
