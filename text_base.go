package plists

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

const eof rune = -1

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// textSource hands out the runes of a text property list one at a time,
// keeping track of the line and column of the last consumed rune.
type textSource struct {
	reader *bufio.Reader
	line   int
	column int

	peeked   bool
	peekRune rune

	err *SourceError
}

func newTextSource(r io.Reader) *textSource {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return &textSource{reader: br}
}

func newStringSource(s string) *textSource {
	return newTextSource(strings.NewReader(s))
}

func (s *textSource) read() rune {
	if s.err != nil {
		return eof
	}
	r, w, err := s.reader.ReadRune()
	if err != nil {
		if err != io.EOF {
			s.err = &SourceError{Line: s.line, Column: s.column, Err: err}
		}
		return eof
	}
	if r == utf8.RuneError && w == 1 {
		s.err = &SourceError{Line: s.line, Column: s.column, Err: ErrInvalidUTF8}
		return eof
	}
	return r
}

// next consumes one rune. A newline moves to column 0 of the next line.
func (s *textSource) next() rune {
	var r rune
	if s.peeked {
		s.peeked = false
		r = s.peekRune
	} else {
		r = s.read()
	}
	switch r {
	case eof:
	case '\n':
		s.line++
		s.column = 0
	default:
		s.column++
	}
	return r
}

func (s *textSource) peek() rune {
	if !s.peeked {
		s.peekRune = s.read()
		s.peeked = true
	}
	return s.peekRune
}

// skipLine consumes everything up to and including the next newline.
func (s *textSource) skipLine() {
	for {
		if r := s.next(); r == '\n' || r == eof {
			return
		}
	}
}
