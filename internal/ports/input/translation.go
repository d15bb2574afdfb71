package input

import "i18ntpl/pkg/templater"

// TranslationUseCase renders catalog messages for the active language.
type TranslationUseCase interface {
	CurrentLanguage() string
	SupportedLanguages() []string
	SetLanguage(lang string) error

	T(key string) string
	Render(key string, data any, opts templater.Options) (string, error)
	Eval(template string, data any, opts templater.Options) (string, error)
	Template(key string, data any) string
	TemplateMap(key string, data map[string]string) string
	TemplateWithOptions(key string, data any, opts templater.Options) string
	TemplateMapWithOptions(key string, data map[string]string, opts templater.Options) string
}
