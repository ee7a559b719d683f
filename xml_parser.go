package plists

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// xmlPlistParser reads an XML property list into the same raw value tree
// the text parser produces. Strings and keys become plain strings,
// <true/> and <false/> bools, <integer> and <real> NUMBER tokens.
type xmlPlistParser struct {
	xmlDecoder *xml.Decoder
}

func (p *xmlPlistParser) error(e string, args ...interface{}) {
	off := p.xmlDecoder.InputOffset()
	panic(fmt.Errorf("%s at offset %v", fmt.Sprintf(e, args...), off))
}

func (p *xmlPlistParser) unexpected(token xml.Token) {
	p.error("unexpected XML element `%v`", token)
}

func (p *xmlPlistParser) parseDocument() (pval interface{}, parseError error) {
	defer func() {
		if r := recover(); r != nil {
			pval = nil
			err := recoveredError(r)
			if _, ok := err.(invalidPlistError); !ok {
				// Wrap all non-invalid-plist errors.
				err = plistParseError{"XML", err}
			}
			parseError = err
		}
	}()
	for {
		token, err := p.xmlDecoder.Token()
		if err != nil {
			// The first XML parse turned out to be invalid:
			// we do not have an XML property list.
			panic(invalidPlistError{"XML", err})
		}
		if element, ok := token.(xml.StartElement); ok {
			pval = p.parseXMLElement(element)
			if pval == nil {
				panic(invalidPlistError{"XML", errors.New("no elements encountered")})
			}
			return
		}
	}
}

func (p *xmlPlistParser) next() xml.Token {
	token, err := p.xmlDecoder.Token()
	if err != nil {
		p.error("%v", err)
	}
	return token
}

func (p *xmlPlistParser) skip() {
	if err := p.xmlDecoder.Skip(); err != nil {
		p.error("%v", err)
	}
}

// The opening tag has been consumed.
func (p *xmlPlistParser) getNextString(element xml.StartElement) string {
	var s strings.Builder
	for {
		switch token := p.next().(type) {
		case xml.EndElement:
			return s.String()
		case xml.CharData:
			s.Write(token)
		case xml.Comment:
		default:
			p.unexpected(token)
		}
	}
}

func (p *xmlPlistParser) parseNumberElement(element xml.StartElement) Token {
	s := strings.TrimSpace(p.getNextString(element))
	if s == "" {
		p.error("empty <%s>", element.Name.Local)
	}
	return Token{Kind: TokenNumber, Value: s}
}

func (p *xmlPlistParser) parseDictionary(element xml.StartElement) *Dict {
	out := NewDict()
	var key string
	haveKey := false
	for {
		switch token := p.next().(type) {
		case xml.StartElement:
			if token.Name.Local == "key" {
				if haveKey {
					p.error("missing value in dictionary")
				}
				key = p.getNextString(token)
				haveKey = true
				continue
			}
			if !haveKey {
				p.error("missing key in dictionary")
			}
			out.Set(key, p.parseXMLElement(token))
			haveKey = false
		case xml.EndElement:
			if haveKey {
				p.error("missing value in dictionary")
			}
			return out
		case xml.CharData, xml.Comment:
		default:
			p.unexpected(token)
		}
	}
}

func (p *xmlPlistParser) parseArray(element xml.StartElement) []interface{} {
	values := make([]interface{}, 0)
	for {
		switch token := p.next().(type) {
		case xml.StartElement:
			values = append(values, p.parseXMLElement(token))
		case xml.EndElement:
			return values
		case xml.CharData, xml.Comment:
		default:
			p.unexpected(token)
		}
	}
}

func (p *xmlPlistParser) parseXMLElement(element xml.StartElement) interface{} {
	switch element.Name.Local {
	case "plist":
		// a <plist> should contain only one sub-element; we can safely recurse in here
		for {
			switch token := p.next().(type) {
			case xml.EndElement:
				return nil
			case xml.StartElement:
				return p.parseXMLElement(token)
			case xml.CharData, xml.Comment:
			default:
				p.unexpected(token)
			}
		}
	case "string", "key", "date", "data":
		return p.getNextString(element)
	case "integer", "real":
		return p.parseNumberElement(element)
	case "true", "false": // small enough to inline
		b := element.Name.Local == "true"
		p.skip() // skip the closing tag
		return b
	case "dict":
		return p.parseDictionary(element)
	case "array":
		return p.parseArray(element)
	}
	p.unexpected(element)
	return nil
}

func newXMLPlistParser(r io.Reader) *xmlPlistParser {
	return &xmlPlistParser{xml.NewDecoder(r)}
}

// ParseXML reads an XML property list from r into a raw value tree.
func ParseXML(r io.Reader) (interface{}, error) {
	return newXMLPlistParser(r).parseDocument()
}
