package plists

import (
	"bufio"
	"bytes"
	"io"
	"reflect"
)

// A Decoder reads a property list from an input stream, detecting whether
// it is an XML or a text document.
type Decoder struct {
	// the format of the most-recently-decoded property list
	Format int

	reader *bufio.Reader
	opts   parserOptions
	err    error
}

// Decode parses the property list from the underlying stream and stores the
// result in the value pointed to by v.
//
// Text property lists carry no type information: every scalar is a string.
// Decode therefore parses strings into numeric, boolean and time.Time
// destinations. Booleans are read from YES/NO, true/false or 1/0. An XML
// <true/> or <false/> can only be stored in a bool or an interface{}.
//
// Dictionaries decode into structs (honouring `plist:"name"` tags, as
// Encode does) and into maps with string keys. Arrays decode into slices
// and arrays. Decoding into an interface{} stores a detached tree of
// map[string]interface{}, []interface{}, string and bool values, as
// produced by Native. Decoding into a *RawValue keeps the raw subtree for
// later use with DecodeElement.
func (p *Decoder) Decode(v interface{}) error {
	if p.err != nil {
		return p.err
	}
	pval, err := p.decodeDocument()
	if err != nil {
		return err
	}
	return p.unmarshalRoot(pval, v)
}

// DecodeElement stores the subtree held by raw in the value pointed to by v.
func (p *Decoder) DecodeElement(v interface{}, raw *RawValue) error {
	if raw == nil {
		return nil
	}
	return p.unmarshalRoot(raw.value, v)
}

// DecodeValue parses the property list and returns its raw value tree
// without converting it.
func (p *Decoder) DecodeValue() (interface{}, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.decodeDocument()
}

func (p *Decoder) unmarshalRoot(pval interface{}, v interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError(r)
		}
	}()

	if err := checkUnmarshalTarget(v); err != nil {
		return err
	}
	p.unmarshal(pval, reflect.ValueOf(v))
	return
}

func (p *Decoder) decodeDocument() (interface{}, error) {
	if isXMLDocument(p.reader) {
		p.Format = XMLFormat
		pval, err := newXMLPlistParser(p.reader).parseDocument()
		if err != nil {
			p.Format = InvalidFormat
		}
		return pval, err
	}

	p.Format = OpenStepFormat
	pval, err := newTextPlistParser(p.reader, p.opts).parseDocument()
	if err != nil {
		p.Format = InvalidFormat
		return nil, plistParseError{"text", err}
	}
	return pval, nil
}

var xmlPrefixes = [][]byte{
	[]byte("<?xml"),
	[]byte("<!DOCTYPE"),
	[]byte("<plist"),
}

// isXMLDocument peeks past a byte order mark and leading whitespace to
// look for an XML prologue or a <plist> element.
func isXMLDocument(r *bufio.Reader) bool {
	head, _ := r.Peek(512)
	head = bytes.TrimPrefix(head, utf8BOM)
	head = bytes.TrimLeft(head, " \t\r\n")
	for _, prefix := range xmlPrefixes {
		if bytes.HasPrefix(head, prefix) {
			return true
		}
	}
	return false
}

// NewDecoder returns a Decoder that reads a property list from r.
// The options Strict and NumericLiterals apply to text property lists.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	d := &Decoder{Format: InvalidFormat, reader: bufio.NewReader(r)}
	d.err = applyOptions(&d.opts, opts)
	return d
}

// Unmarshal parses a property list document and stores the result in the
// value pointed to by v. It returns the format the document was in.
// See Decoder.Decode for how values are converted.
func Unmarshal(data []byte, v interface{}, opts ...Option) (format int, err error) {
	dec := NewDecoder(bytes.NewReader(data), opts...)
	err = dec.Decode(v)
	format = dec.Format
	return
}
