package output

import "golang.org/x/text/language"

// Catalog exposes the translation dictionaries of every loaded language.
type Catalog interface {
	// Messages returns the flat dictionary of tag. The map must be treated
	// as read-only.
	Messages(tag language.Tag) (map[string]string, bool)
	// Languages lists the loaded languages in load order.
	Languages() []language.Tag
	// Match negotiates locale against the loaded languages.
	Match(locale string) (language.Tag, bool)
	// DefaultLanguage is the language selected when none is requested.
	DefaultLanguage() language.Tag
}
