package plists

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// textPlistParser builds a raw value tree from the tokens of one Scanner,
// holding at most one token of lookahead.
type textPlistParser struct {
	scanner *Scanner
	strict  bool

	lookahead    Token
	hasLookahead bool
}

func newTextPlistParser(r io.Reader, o parserOptions) *textPlistParser {
	s := NewScanner(r)
	s.numeric = o.numeric
	return &textPlistParser{scanner: s, strict: o.strict}
}

func (p *textPlistParser) parseDocument() (pval interface{}, parseError error) {
	defer func() {
		if r := recover(); r != nil {
			pval = nil
			parseError = recoveredError(r)
		}
	}()

	pval = p.parseValue()
	if p.strict {
		if tok := p.nextToken(false); tok.Kind != TokenEnd {
			p.syntaxError("Expected end of input, Found: %v", tok)
		}
	}
	return
}

// nextToken returns the pending lookahead token if there is one. Otherwise
// it pulls a fresh token from the scanner; with peek set the token is kept
// as lookahead instead of being consumed.
func (p *textPlistParser) nextToken(peek bool) Token {
	if p.hasLookahead {
		if !peek {
			p.hasLookahead = false
		}
		return p.lookahead
	}

	tok := p.scanner.Next()
	if tok.Kind == TokenError {
		if err := p.scanner.src.err; err != nil {
			panic(err)
		}
		panic(&LexError{Line: p.scanner.Line(), Column: p.scanner.Column(), Msg: tok.Value})
	}
	if peek {
		p.lookahead = tok
		p.hasLookahead = true
	}
	return tok
}

func (p *textPlistParser) syntaxError(format string, args ...interface{}) {
	panic(&SyntaxError{
		Line:   p.scanner.Line(),
		Column: p.scanner.Column(),
		Msg:    fmt.Sprintf(format, args...),
	})
}

func (p *textPlistParser) parseValue() interface{} {
	tok := p.nextToken(false)
	switch tok.Kind {
	case TokenNumber, TokenString, TokenIdentifier:
		return tok
	case TokenOpenList:
		return p.parseList()
	case TokenOpenDict:
		return p.parseDict()
	}
	p.syntaxError("Invalid token found: %v", tok)
	return nil
}

// The opening ( has been consumed.
func (p *textPlistParser) parseList() []interface{} {
	out := make([]interface{}, 0)
	for {
		tok := p.nextToken(true)
		switch tok.Kind {
		case TokenCloseList:
			p.nextToken(false)
			return out
		case TokenEnd:
			p.syntaxError("Expected ')', Found: %v", tok)
		}

		out = append(out, p.parseValue())

		switch tok = p.nextToken(false); tok.Kind {
		case TokenCloseList:
			return out
		case TokenComma, TokenSemicolon:
		default:
			p.syntaxError("Expected ';', ',' or ')', Found: %v", tok)
		}
	}
}

// The opening { has been consumed.
func (p *textPlistParser) parseDict() *Dict {
	out := NewDict()
	for {
		key := p.nextToken(false)
		if key.Kind == TokenCloseDict {
			return out
		}
		if !key.IsValue() {
			p.syntaxError("Expected string or identifier, Found: %v", key)
		}

		if tok := p.nextToken(false); tok.Kind != TokenEquals {
			p.syntaxError("Expected '=', Found: %v", tok)
		}

		out.Set(key, p.parseValue())

		switch tok := p.nextToken(false); tok.Kind {
		case TokenCloseDict:
			return out
		case TokenComma, TokenSemicolon:
		default:
			p.syntaxError("Expected ',', ';', or '}', Found: %v", tok)
		}
	}
}

// ParseReader parses one text property list value from r and returns its
// raw value tree: a Token, a []interface{} or a *Dict.
//
// The returned error is a *SyntaxError for a token out of place, a
// *LexError for malformed input such as an unterminated string, or a
// *SourceError when r fails or yields malformed UTF-8.
func ParseReader(r io.Reader, opts ...Option) (interface{}, error) {
	var o parserOptions
	if err := applyOptions(&o, opts); err != nil {
		return nil, err
	}
	return newTextPlistParser(r, o).parseDocument()
}

// Parse parses a text property list held in a string.
func Parse(src string, opts ...Option) (interface{}, error) {
	return ParseReader(strings.NewReader(src), opts...)
}

// ParseBytes parses a text property list held in a byte slice.
func ParseBytes(src []byte, opts ...Option) (interface{}, error) {
	return ParseReader(bytes.NewReader(src), opts...)
}

// ParseFile parses the text property list stored at path.
func ParseFile(path string, opts ...Option) (interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "while opening %s", path)
	}
	defer f.Close()

	pval, err := ParseReader(f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "while parsing %s", path)
	}
	return pval, nil
}
