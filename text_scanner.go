package plists

import (
	"io"
	"strings"
	"unicode"
)

type scanState uint8

const (
	scanValues scanState = iota
	scanLineComment
	scanBlockComment
	scanDone
)

// A Scanner splits a text property list into Tokens.
//
// Tokens are pulled one at a time with Next. The sequence always ends with
// exactly one END or ERROR token; once it has been returned, every further
// call to Next returns it again. A Scanner reads its input forward only and
// cannot be rewound.
type Scanner struct {
	src     *textSource
	state   scanState
	numeric bool
	final   Token
}

// NewScanner returns a Scanner reading UTF-8 text from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{src: newTextSource(r)}
}

// NewStringScanner returns a Scanner over the text in s.
func NewStringScanner(s string) *Scanner {
	return &Scanner{src: newStringSource(s)}
}

// Line returns the 0-based line of the last consumed character.
func (s *Scanner) Line() int {
	return s.src.line
}

// Column returns the 0-based column of the last consumed character.
func (s *Scanner) Column() int {
	return s.src.column
}

// Err returns the error, if any, reported by the underlying reader.
// A Scanner whose reader failed ends its token sequence with an ERROR token.
func (s *Scanner) Err() error {
	if s.src.err == nil {
		return nil
	}
	return s.src.err
}

// Tokens drains the scanner, returning every remaining token including the
// final END or ERROR token.
func (s *Scanner) Tokens() []Token {
	var out []Token
	for {
		tok := s.Next()
		out = append(out, tok)
		if tok.Kind == TokenEnd || tok.Kind == TokenError {
			return out
		}
	}
}

// Next returns the next token.
func (s *Scanner) Next() Token {
	for {
		switch s.state {
		case scanDone:
			return s.final
		case scanLineComment:
			s.src.skipLine()
			s.state = scanValues
		case scanBlockComment:
			s.skipBlockComment()
			s.state = scanValues
		default:
			if tok, ok := s.scan(); ok {
				return tok
			}
		}
	}
}

func isDelimiter(r rune) bool {
	return delimiters.Contains(r) || (r > 0xFF && unicode.IsSpace(r))
}

// scan produces at most one token. It reports false when it only moved the
// scanner into a comment state.
func (s *Scanner) scan() (Token, bool) {
	var ident strings.Builder
	for {
		r := s.src.peek()
		if r == eof {
			if s.src.err != nil {
				return s.finish(errorToken(s.src.err.Err.Error())), true
			}
			if ident.Len() > 0 {
				return s.valueToken(ident.String()), true
			}
			return s.finish(Token{Kind: TokenEnd}), true
		}

		if !isDelimiter(r) {
			ident.WriteRune(s.src.next())
			continue
		}

		if r == '/' {
			s.src.next()
			switch s.src.peek() {
			case '/':
				s.src.next()
				s.state = scanLineComment
			case '*':
				s.src.next()
				s.state = scanBlockComment
			default:
				// Not a comment: the slash belongs to an identifier (a/b, /usr/bin).
				ident.WriteRune('/')
				continue
			}
			if ident.Len() > 0 {
				return s.valueToken(ident.String()), true
			}
			return Token{}, false
		}

		if ident.Len() > 0 {
			return s.valueToken(ident.String()), true
		}

		s.src.next()
		switch r {
		case ';':
			return Token{Kind: TokenSemicolon}, true
		case ',':
			return Token{Kind: TokenComma}, true
		case '=':
			return Token{Kind: TokenEquals}, true
		case '{':
			return Token{Kind: TokenOpenDict}, true
		case '(':
			return Token{Kind: TokenOpenList}, true
		case '}':
			return Token{Kind: TokenCloseDict}, true
		case ')':
			return Token{Kind: TokenCloseList}, true
		case '"', '\'':
			return s.scanQuoted(r), true
		}
		// whitespace
	}
}

func (s *Scanner) finish(tok Token) Token {
	s.state = scanDone
	s.final = tok
	return tok
}

func (s *Scanner) valueToken(text string) Token {
	if s.numeric && isDigits(text) {
		return Token{Kind: TokenNumber, Value: text}
	}
	return identifier(text)
}

func isDigits(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return len(text) > 0
}

// An unterminated block comment runs to the end of the input.
func (s *Scanner) skipBlockComment() {
	star := false
	for {
		r := s.src.next()
		switch {
		case r == eof:
			return
		case r == '/' && star:
			return
		default:
			star = r == '*'
		}
	}
}

// The opening quote has been consumed.
func (s *Scanner) scanQuoted(quote rune) Token {
	var raw strings.Builder
	for {
		r := s.src.next()
		switch r {
		case eof:
			return s.finish(errorToken("Missing " + string(quote)))
		case quote:
			return Token{Kind: TokenString, Value: unescape(raw.String())}
		case '\\':
			raw.WriteRune(r)
			if r = s.src.next(); r == eof {
				return s.finish(errorToken("Missing " + string(quote)))
			}
		}
		raw.WriteRune(r)
	}
}

// unescape decodes the backslash escapes of a quoted string body.
// Escapes not listed here are left in place, backslash included.
func unescape(raw string) string {
	if strings.IndexByte(raw, '\\') < 0 {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			b.WriteByte(c)
			i++
			continue
		}

		e := raw[i+1]
		i += 2
		switch e {
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'x', 'u', 'U':
			l := 4
			if e == 'x' {
				l = 2
			}
			n, w := parseDigits(raw[i:], l, 16)
			if w == 0 {
				b.WriteByte('\\')
				b.WriteByte(e)
				continue
			}
			b.WriteRune(rune(n))
			i += w
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n, w := parseDigits(raw[i-1:], 3, 8)
			b.WriteRune(rune(n))
			i += w - 1
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String()
}

// parseDigits reads up to max digits of the given base (8 or 16) from the
// front of s, returning their value and how many bytes were used.
func parseDigits(s string, max int, base int) (int, int) {
	n, w := 0, 0
	for w < max && w < len(s) {
		d := digitValue(s[w])
		if d < 0 || d >= base {
			break
		}
		n = n*base + d
		w++
	}
	return n, w
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
