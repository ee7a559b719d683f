package plists

import (
	"bufio"
	"encoding/xml"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

const (
	xmlHEADER     string = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
	xmlDOCTYPE           = `<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n"
	xmlArrayTag          = "array"
	xmlDictTag           = "dict"
	xmlFalseTag          = "false"
	xmlIntegerTag        = "integer"
	xmlKeyTag            = "key"
	xmlPlistTag          = "plist"
	xmlRealTag           = "real"
	xmlStringTag         = "string"
	xmlTrueTag           = "true"
)

type xmlPlistGenerator struct {
	*bufio.Writer

	indent     string
	depth      int
	putNewline bool
}

func (p *xmlPlistGenerator) generateDocument(root interface{}) {
	p.WriteString(xmlHEADER)
	p.WriteString(xmlDOCTYPE)

	p.openTag(`plist version="1.0"`)
	p.writePlistValue(root)
	p.closeTag(xmlPlistTag)
	if len(p.indent) > 0 {
		p.WriteByte('\n')
	}
	if err := p.Flush(); err != nil {
		panic(err)
	}
}

func (p *xmlPlistGenerator) openTag(n string) {
	p.writeIndent(1)
	p.WriteByte('<')
	p.WriteString(n)
	p.WriteByte('>')
}

func (p *xmlPlistGenerator) closeTag(n string) {
	p.writeIndent(-1)
	p.WriteString("</")
	p.WriteString(n)
	p.WriteByte('>')
}

func (p *xmlPlistGenerator) element(n string, v string) {
	p.writeIndent(0)
	if len(v) == 0 {
		p.WriteByte('<')
		p.WriteString(n)
		p.WriteString("/>")
		return
	}

	p.WriteByte('<')
	p.WriteString(n)
	p.WriteByte('>')

	if err := xml.EscapeText(p.Writer, []byte(v)); err != nil {
		panic(err)
	}

	p.WriteString("</")
	p.WriteString(n)
	p.WriteByte('>')
}

func (p *xmlPlistGenerator) writeDictionary(dict *Dict) {
	p.openTag(xmlDictTag)
	dict.Range(func(k Token, v interface{}) {
		p.element(xmlKeyTag, k.Value)
		p.writePlistValue(v)
	})
	p.closeTag(xmlDictTag)
}

func (p *xmlPlistGenerator) writeArray(a []interface{}) {
	p.openTag(xmlArrayTag)
	for _, v := range a {
		p.writePlistValue(v)
	}
	p.closeTag(xmlArrayTag)
}

func (p *xmlPlistGenerator) writeNumber(s string) {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		p.element(xmlIntegerTag, s)
	} else if _, err := strconv.ParseUint(s, 10, 64); err == nil {
		p.element(xmlIntegerTag, s)
	} else {
		p.element(xmlRealTag, s)
	}
}

func (p *xmlPlistGenerator) writePlistValue(pval interface{}) {
	switch pval := pval.(type) {
	case nil:
	case Token:
		if pval.Kind == TokenNumber {
			p.writeNumber(pval.Value)
		} else {
			p.element(xmlStringTag, pval.Value)
		}
	case string:
		p.element(xmlStringTag, pval)
	case bool:
		if pval {
			p.element(xmlTrueTag, "")
		} else {
			p.element(xmlFalseTag, "")
		}
	case *Dict:
		p.writeDictionary(pval)
	case []interface{}:
		p.writeArray(pval)
	case *DictView:
		p.writeDictionary(pval.Raw())
	case ListView:
		p.writeArray(pval.Raw())
	default:
		panic(errors.Errorf("plist: can't generate XML for value of type %T", pval))
	}
}

func (p *xmlPlistGenerator) writeIndent(delta int) {
	if len(p.indent) == 0 {
		return
	}

	if delta < 0 {
		p.depth--
	}

	if p.putNewline {
		// from encoding/xml/marshal.go; it seems to be intended
		// to suppress the first newline.
		p.WriteByte('\n')
	} else {
		p.putNewline = true
	}
	for i := 0; i < p.depth; i++ {
		p.WriteString(p.indent)
	}
	if delta > 0 {
		p.depth++
	}
}

func (p *xmlPlistGenerator) Indent(i string) {
	p.indent = i
}

func newXMLPlistGenerator(w io.Writer) *xmlPlistGenerator {
	return &xmlPlistGenerator{Writer: bufio.NewWriter(w)}
}
