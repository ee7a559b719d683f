package plists

import "strconv"

// TokenKind classifies a Token produced by the Scanner.
type TokenKind uint8

const (
	TokenNumber TokenKind = iota
	TokenIdentifier
	TokenString
	TokenEquals
	TokenComment
	TokenComma
	TokenSemicolon
	TokenOpenDict
	TokenOpenList
	TokenCloseDict
	TokenCloseList
	TokenError
	TokenEnd
)

var tokenKindNames = [...]string{
	TokenNumber:     "NUMBER",
	TokenIdentifier: "IDENTIFIER",
	TokenString:     "STRING",
	TokenEquals:     "EQUALS",
	TokenComment:    "COMMENT",
	TokenComma:      "COMMA",
	TokenSemicolon:  "SEMICOLON",
	TokenOpenDict:   "OPEN_DICT",
	TokenOpenList:   "OPEN_LIST",
	TokenCloseDict:  "CLOSE_DICT",
	TokenCloseList:  "CLOSE_LIST",
	TokenError:      "ERROR",
	TokenEnd:        "END",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// A Token is a single lexical unit of a text property list.
//
// Tokens are plain comparable values: two Tokens are equal (and hash
// identically as map keys) exactly when their kinds and payloads match.
// Value is empty for punctuation and END tokens, and holds the message
// for ERROR tokens.
type Token struct {
	Kind  TokenKind
	Value string
}

// IsValue reports whether t carries a value payload: a number, an
// identifier or a quoted string.
func (t Token) IsValue() bool {
	switch t.Kind {
	case TokenNumber, TokenIdentifier, TokenString:
		return true
	}
	return false
}

// EqualString reports whether t is an identifier or string token whose
// payload is s. Numbers never compare equal to a plain string.
func (t Token) EqualString(s string) bool {
	return (t.Kind == TokenIdentifier || t.Kind == TokenString) && t.Value == s
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber, TokenIdentifier:
		return t.Value
	case TokenString:
		return strconv.Quote(t.Value)
	case TokenError:
		return "ERROR(" + t.Value + ")"
	}
	return t.Kind.String()
}

func identifier(s string) Token {
	return Token{Kind: TokenIdentifier, Value: s}
}

func errorToken(msg string) Token {
	return Token{Kind: TokenError, Value: msg}
}
