package domain

import "errors"

// Domain errors.
var (
	ErrUnsupportedLanguage = errors.New("language not supported")
	ErrMessageNotFound     = errors.New("message not found")
	ErrEmptyCatalog        = errors.New("catalog has no language")
	ErrUnknownFormat       = errors.New("unknown document format")
)

// codes is checked in order, so an error wrapping several sentinels always
// reports the first one listed here.
var codes = []struct {
	err  error
	code string
}{
	{ErrUnsupportedLanguage, "unsupported_language"},
	{ErrMessageNotFound, "message_not_found"},
	{ErrEmptyCatalog, "empty_catalog"},
	{ErrUnknownFormat, "unknown_format"},
}

// Code returns the stable code of the domain error wrapped in err,
// or "" when err does not wrap one.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
