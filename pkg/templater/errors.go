package templater

import (
	"errors"
	"fmt"
)

// Error kinds, matchable with errors.Is.
var (
	ErrMissingCurvyBracket = errors.New("missing curvy bracket")
	ErrUnknownField        = errors.New("unknown field")
	ErrSerialize           = errors.New("serialize error")
	ErrDepthExceeded       = errors.New("template depth exceeded")
)

// Source names the dictionary a lookup failed in.
type Source string

const (
	SourceTranslations Source = "translations"
	SourceData         Source = "data"
)

// MissingBracketError reports a directive that is not closed by enough braces.
type MissingBracketError struct {
	// Key is the directive key parsed before the closing braces ran out.
	Key string
	// Missing is how many closing braces are still required.
	Missing int
}

func (e *MissingBracketError) Error() string {
	return fmt.Sprintf("Missing curvy bracket: `Missing %s curvy bracket `}` around `%s`.`", countWord(e.Missing), e.Key)
}

func (e *MissingBracketError) Is(target error) bool { return target == ErrMissingCurvyBracket }

// UnknownFieldError reports a key absent from translations or data under strict mode.
type UnknownFieldError struct {
	Key    string
	Source Source
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("Unknown field: `The field `%s` does not exist in %s.`", e.Key, e.Source)
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrUnknownField }

// SerializeError wraps a failure to convert structured input before flattening.
type SerializeError struct {
	Err error
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("Serialize error: `%v`", e.Err)
}

func (e *SerializeError) Is(target error) bool { return target == ErrSerialize }

func (e *SerializeError) Unwrap() error { return e.Err }

// DepthError is returned when Options.MaxDepth is set and nested resolution
// goes deeper than allowed.
type DepthError struct {
	Key   string
	Depth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("Template depth exceeded: `%d` levels reached while resolving `%s`.", e.Depth, e.Key)
}

func (e *DepthError) Is(target error) bool { return target == ErrDepthExceeded }

func countWord(n int) string {
	switch n {
	case 1:
		return "one"
	case 2:
		return "two"
	case 3:
		return "three"
	default:
		return fmt.Sprint(n)
	}
}
