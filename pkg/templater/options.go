package templater

// OverrideMessage builds the text emitted in place of a missing key or translation.
type OverrideMessage func(key string) string

// Options controls how Generate reacts to missing data keys and translations.
// The zero value is strict mode: any missing value is an error.
type Options struct {
	// SafeParse downgrades unknown-field errors to placeholder text.
	SafeParse bool
	// DisplayMissingKeys emits a placeholder for a missing data key.
	DisplayMissingKeys bool
	// OverrideMissingKeys replaces the default data placeholder.
	OverrideMissingKeys OverrideMessage
	// DisplayMissingTranslations emits a placeholder for a missing translation.
	DisplayMissingTranslations bool
	// OverrideMissingTranslations replaces the default translation placeholder.
	OverrideMissingTranslations OverrideMessage
	// MaxDepth bounds nested template resolution. Zero means unlimited.
	MaxDepth int
}

// SafeOptions returns options that never fail on a missing value and
// display the default placeholders instead.
func SafeOptions() Options {
	return Options{
		SafeParse:                  true,
		DisplayMissingKeys:         true,
		DisplayMissingTranslations: true,
	}
}
