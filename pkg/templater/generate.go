package templater

import (
	"fmt"
	"strings"
)

// Generate resolves every directive of template against the translation
// dictionary of the active language and the flattened data dictionary.
//
// Directive forms:
//
//	{{key}}       data value at key
//	{{*key}}      translation named by the data value at key, not re-scanned
//	{{{key}}}     translation at key, resolved recursively
//	{{{*key}}}    translation named by the data value at key, resolved recursively
//	{{{**key}}}   data value at key used as a template, resolved recursively
//
// A backslash escapes "{", "}" and "\" in text; inside a key it also escapes "*".
// Both maps are only read.
func Generate(template string, translations, data map[string]string, opts Options) (string, error) {
	r := &resolver{
		translations: translations,
		data:         data,
		opts:         opts,
	}
	return r.render(template, 0)
}

type resolver struct {
	translations map[string]string
	data         map[string]string
	opts         Options
}

func (r *resolver) render(template string, depth int) (string, error) {
	var out strings.Builder
	s := newScanner(template)
	for {
		c, ok := s.next()
		if !ok {
			break
		}
		switch c {
		case '{':
			if !s.accept('{') {
				out.WriteByte(c)
				continue
			}
			d, err := s.directive()
			if err != nil {
				return "", err
			}
			value, err := r.resolve(d, depth)
			if err != nil {
				return "", err
			}
			out.WriteString(value)
		case '\\':
			if n, ok := s.peek(); ok && isTextEscape(n) {
				s.pos++
				out.WriteByte(n)
				continue
			}
			out.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}
	return out.String(), nil
}

func (r *resolver) resolve(d directive, depth int) (string, error) {
	switch {
	case d.applyTemplate && d.pointer:
		name, ok := r.data[d.key]
		if !ok {
			return r.missingKey(d.key)
		}
		tpl, ok := r.translations[name]
		if !ok {
			return r.missingTranslation(d.key, name)
		}
		return r.nested(d.key, tpl, depth)

	case d.applyTemplate && d.inject:
		tpl, ok := r.data[d.key]
		if !ok {
			return r.missingKey(d.key)
		}
		return r.nested(d.key, tpl, depth)

	case d.applyTemplate:
		tpl, ok := r.translations[d.key]
		if !ok {
			return r.missingTranslation(d.key, d.key)
		}
		return r.nested(d.key, tpl, depth)

	case d.pointer:
		name, ok := r.data[d.key]
		if !ok {
			return r.missingKey(d.key)
		}
		value, ok := r.translations[name]
		if !ok {
			return r.missingTranslation(d.key, name)
		}
		return value, nil

	default:
		value, ok := r.data[d.key]
		if !ok {
			return r.missingKey(d.key)
		}
		return value, nil
	}
}

func (r *resolver) nested(key, template string, depth int) (string, error) {
	if r.opts.MaxDepth > 0 && depth >= r.opts.MaxDepth {
		return "", &DepthError{Key: key, Depth: r.opts.MaxDepth}
	}
	return r.render(template, depth+1)
}

func (r *resolver) missingKey(key string) (string, error) {
	if !r.opts.SafeParse {
		return "", &UnknownFieldError{Key: key, Source: SourceData}
	}
	if !r.opts.DisplayMissingKeys {
		return "", nil
	}
	if r.opts.OverrideMissingKeys != nil {
		return r.opts.OverrideMissingKeys(key), nil
	}
	return fmt.Sprintf("[MISSING_DATA_KEY: `%s`]", key), nil
}

// missingTranslation reports key in strict mode and name, the translation
// key actually looked up, in the placeholder.
func (r *resolver) missingTranslation(key, name string) (string, error) {
	if !r.opts.SafeParse {
		return "", &UnknownFieldError{Key: key, Source: SourceTranslations}
	}
	if !r.opts.DisplayMissingTranslations {
		return "", nil
	}
	if r.opts.OverrideMissingTranslations != nil {
		return r.opts.OverrideMissingTranslations(name), nil
	}
	return fmt.Sprintf("[MISSING_TRANSLATION_KEY: `%s`]", name), nil
}
