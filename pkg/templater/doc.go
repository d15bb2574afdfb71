// Package templater resolves curly-brace message templates against a
// translation dictionary and a flat data dictionary.
//
// A caller flattens its structured data once with Flatten and then calls
// Generate with the template, the dictionary of the active language, the
// flattened data and the Options describing how missing values are handled.
// Both functions are pure; they keep no state between calls and never log.
package templater
