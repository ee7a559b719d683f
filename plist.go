package plists

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/pkg/errors"
)

const (
	// InvalidFormat is returned by Unmarshal when the document could not be
	// identified as any supported property list format.
	InvalidFormat int = 0
	// OpenStepFormat is the legacy NeXT/OpenStep text format.
	OpenStepFormat = 1
	// XMLFormat is Apple's XML property list format.
	XMLFormat = 2

	// AutomaticFormat lets Marshal and the Decoder pick a format.
	AutomaticFormat = -1
)

// FormatNames maps each format to its human readable name.
var FormatNames = map[int]string{
	InvalidFormat:  "unknown/invalid",
	OpenStepFormat: "OpenStep",
	XMLFormat:      "XML",
}

// ErrInvalidUTF8 is reported when a text property list is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 in input")

// A SyntaxError describes a token that does not fit the grammar at the
// position where it was found.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Line: %d, Column: %d, %s", e.Line, e.Column, e.Msg)
}

// A LexError is raised when the scanner produced an ERROR token, for
// example for a quoted string missing its closing quote.
type LexError struct {
	Line   int
	Column int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("Line: %d, Column: %d, %s", e.Line, e.Column, e.Msg)
}

// A SourceError wraps a failure of the underlying character source: a read
// error or malformed UTF-8.
type SourceError struct {
	Line   int
	Column int
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("Line: %d, Column: %d, %v", e.Line, e.Column, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Cause lets github.com/pkg/errors unwrap a SourceError.
func (e *SourceError) Cause() error {
	return e.Err
}

type invalidPlistError struct {
	format string
	err    error
}

func (e invalidPlistError) Error() string {
	s := "plist: invalid " + e.format + " property list"
	if e.err != nil {
		s += ": " + e.err.Error()
	}
	return s
}

func (e invalidPlistError) Unwrap() error {
	return e.err
}

type plistParseError struct {
	format string
	err    error
}

func (e plistParseError) Error() string {
	s := "plist: error parsing " + e.format + " property list"
	if e.err != nil {
		s += ": " + e.err.Error()
	}
	return s
}

func (e plistParseError) Unwrap() error {
	return e.err
}

type unknownTypeError struct {
	typ reflect.Type
}

func (u *unknownTypeError) Error() string {
	return "plist: can't marshal value of type " + u.typ.String()
}

// An InvalidUnmarshalError describes an invalid argument passed to Decode,
// DecodeElement or Unmarshal. The argument must be a non-nil pointer.
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "plist: Decode(nil)"
	}
	if e.Type.Kind() != reflect.Ptr {
		return "plist: Decode(non-pointer " + e.Type.String() + ")"
	}
	return "plist: Decode(nil " + e.Type.String() + ")"
}

func checkUnmarshalTarget(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &InvalidUnmarshalError{reflect.TypeOf(v)}
	}
	return nil
}

// recoveredError turns a value recovered at a document boundary back into
// an error. Runtime errors are re-panicked.
func recoveredError(r interface{}) error {
	if _, ok := r.(runtime.Error); ok {
		panic(r)
	}
	if err, ok := r.(error); ok {
		return err
	}
	return errors.Errorf("plist: %v", r)
}
