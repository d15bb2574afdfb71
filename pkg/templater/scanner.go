package templater

import "strings"

// scanner is a byte cursor with one byte of lookahead. Every delimiter is
// ASCII and never occurs inside a multi-byte UTF-8 sequence, so other bytes
// are copied through untouched, invalid UTF-8 included.
type scanner struct {
	src string
	pos int
}

func newScanner(s string) *scanner {
	return &scanner{src: s}
}

func (s *scanner) peek() (byte, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *scanner) next() (byte, bool) {
	r, ok := s.peek()
	if ok {
		s.pos++
	}
	return r, ok
}

// accept consumes the next byte when it equals want.
func (s *scanner) accept(want byte) bool {
	if r, ok := s.peek(); ok && r == want {
		s.pos++
		return true
	}
	return false
}

// directive is one parsed {{...}} or {{{...}}} span.
type directive struct {
	applyTemplate bool
	pointer       bool
	inject        bool
	key           string
}

func (d directive) closing() int {
	if d.applyTemplate {
		return 3
	}
	return 2
}

// directive parses the remainder of a directive whose opening "{{" has
// already been consumed.
func (s *scanner) directive() (directive, error) {
	var d directive
	d.applyTemplate = s.accept('{')

	if s.accept('*') {
		d.pointer = true
		if s.accept('*') {
			// ** only means injection inside a template directive.
			d.inject = d.applyTemplate
			d.pointer = false
		}
	}

	var key strings.Builder
	for {
		r, ok := s.peek()
		if !ok || r == '}' {
			break
		}
		s.pos++
		if r == '\\' {
			if n, ok := s.peek(); ok && isKeyEscape(n) {
				s.pos++
				key.WriteByte(n)
				continue
			}
		}
		key.WriteByte(r)
	}
	d.key = key.String()

	want := d.closing()
	for i := 0; i < want; i++ {
		if !s.accept('}') {
			return d, &MissingBracketError{Key: d.key, Missing: want - i}
		}
	}
	return d, nil
}

func isKeyEscape(r byte) bool {
	switch r {
	case '*', '\\', '{', '}':
		return true
	}
	return false
}

func isTextEscape(r byte) bool {
	switch r {
	case '\\', '{', '}':
		return true
	}
	return false
}
