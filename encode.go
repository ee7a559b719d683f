package plists

import (
	"bytes"
	"io"
	"reflect"

	"github.com/pkg/errors"
)

// An Encoder writes a property list to an output stream.
type Encoder struct {
	writer io.Writer
	opts   generatorOptions
}

// Encode writes the property list encoding of v to the stream.
//
// Encode traverses the value v recursively.
// Any nil values encountered, other than the root, will be silently discarded as
// the property list format bears no representation for nil values.
//
// Raw value trees, as returned by Parse, are written as they are: Tokens keep
// their kind, so a quoted string stays quoted and a bare word stays bare in
// the text format.
//
// Strings and booleans are encoded unchanged; a boolean is written as YES or
// NO in the text format. Integers and floats are written as numbers in
// decimal notation. time.Time values are written as RFC 3339 strings.
//
// Slice and Array values are encoded as property list arrays.
//
// Map values encode as dictionaries, with their keys sorted. The map's key
// type must be string.
//
// Struct values are encoded as dictionaries, with only exported fields being serialized. Struct field encoding may be influenced with the use of tags.
// The tag format is:
//
//	`plist:"<key>[,flags...]"`
//
// The following flags are supported:
//
//	omitempty    Only include the field if it is not set to the zero value for its type.
//
// If the key is "-", the field is ignored.
//
// Anonymous struct fields are encoded as if their exported fields were exposed via the outer struct.
//
// Pointer values encode as the value pointed to.
//
// Channel, complex and function values cannot be encoded. Any attempt to do so causes Encode to return an error.
func (p *Encoder) Encode(v interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError(r)
		}
	}()

	pval := p.marshal(reflect.ValueOf(v))
	if pval == nil {
		panic(errors.New("plist: no root element to encode"))
	}

	switch p.opts.format {
	case OpenStepFormat:
		g := newTextPlistGenerator(p.writer)
		g.Indent(p.opts.indent)
		g.generateDocument(pval)
	default:
		g := newXMLPlistGenerator(p.writer)
		g.Indent(p.opts.indent)
		g.generateDocument(pval)
	}
	return
}

// Indent turns on pretty-printing for the XML and text formats.
// Each element begins on a new line and is indented by one or more
// copies of indent according to its nesting depth.
func (p *Encoder) Indent(indent string) {
	p.opts.indent = indent
}

// NewEncoder returns an Encoder that writes an XML property list to w.
func NewEncoder(w io.Writer) *Encoder {
	return NewEncoderForFormat(w, XMLFormat)
}

// NewEncoderForFormat returns an Encoder that writes a property list to w in
// the specified format. AutomaticFormat selects XML.
func NewEncoderForFormat(w io.Writer, format int) *Encoder {
	return &Encoder{
		writer: w,
		opts:   generatorOptions{format: format},
	}
}

func newEncoderWithOptions(w io.Writer, opts ...Option) (*Encoder, error) {
	enc := NewEncoder(w)
	if err := applyOptions(&enc.opts, opts); err != nil {
		return nil, err
	}
	return enc, nil
}

// Marshal returns the property list encoding of v in the specified format.
// AutomaticFormat selects XML. Options may override the format and set an
// indent.
func Marshal(v interface{}, format int, opts ...Option) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc, err := newEncoderWithOptions(buf, append([]Option{Format(format)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent works like Marshal, but each property list element
// begins on a new line and is indented by one or more copies of indent
// according to its nesting depth.
func MarshalIndent(v interface{}, format int, indent string) ([]byte, error) {
	return Marshal(v, format, Indent(indent))
}
