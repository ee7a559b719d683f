package plists

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type textPlistGenerator struct {
	writer io.Writer

	indent string
	depth  int

	dictKvDelimiter, dictEntryDelimiter, arrayDelimiter []byte
}

func (p *textPlistGenerator) generateDocument(pval interface{}) {
	p.writePlistValue(pval)
	if len(p.indent) > 0 {
		p.writer.Write([]byte("\n"))
	}
}

// isBareword reports whether s survives being written without quotes and
// scanned back as a single identifier.
func isBareword(s string) bool {
	if s == "" || strings.Contains(s, "//") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !bareword.ContainsByte(s[i]) {
			return false
		}
	}
	return true
}

func (p *textPlistGenerator) plistQuotedString(str string) string {
	var b strings.Builder
	b.Grow(len(str) + 2)
	b.WriteByte('"')
	for _, r := range str {
		switch r {
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			if r < 0x20 || r == 0x7F {
				o := strconv.FormatInt(int64(r), 8)
				b.WriteByte('\\')
				b.WriteString(strings.Repeat("0", 3-len(o)))
				b.WriteString(o)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (p *textPlistGenerator) word(s string) string {
	if isBareword(s) {
		return s
	}
	return p.plistQuotedString(s)
}

func (p *textPlistGenerator) tokenString(t Token) string {
	if t.Kind == TokenString {
		return p.plistQuotedString(t.Value)
	}
	return p.word(t.Value)
}

func (p *textPlistGenerator) deltaIndent(depthDelta int) {
	if depthDelta < 0 {
		p.depth--
	} else if depthDelta > 0 {
		p.depth++
	}
}

func (p *textPlistGenerator) writeIndent() {
	if len(p.indent) == 0 {
		return
	}
	p.writer.Write([]byte("\n"))
	for i := 0; i < p.depth; i++ {
		io.WriteString(p.writer, p.indent)
	}
}

func (p *textPlistGenerator) writeDictionary(dict *Dict) {
	p.writer.Write([]byte(`{`))
	p.deltaIndent(1)
	dict.Range(func(k Token, v interface{}) {
		p.writeIndent()
		io.WriteString(p.writer, p.tokenString(k))
		p.writer.Write(p.dictKvDelimiter)
		p.writePlistValue(v)
		p.writer.Write(p.dictEntryDelimiter)
	})
	p.deltaIndent(-1)
	p.writeIndent()
	p.writer.Write([]byte(`}`))
}

func (p *textPlistGenerator) writeArray(a []interface{}) {
	p.writer.Write([]byte(`(`))
	p.deltaIndent(1)
	for _, v := range a {
		p.writeIndent()
		p.writePlistValue(v)
		p.writer.Write(p.arrayDelimiter)
	}
	p.deltaIndent(-1)
	p.writeIndent()
	p.writer.Write([]byte(`)`))
}

func (p *textPlistGenerator) writePlistValue(pval interface{}) {
	switch pval := pval.(type) {
	case nil:
	case Token:
		io.WriteString(p.writer, p.tokenString(pval))
	case string:
		io.WriteString(p.writer, p.plistQuotedString(pval))
	case bool:
		if pval {
			p.writer.Write([]byte(`YES`))
		} else {
			p.writer.Write([]byte(`NO`))
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
		panic(errors.Errorf("plist: can't generate text for value of type %T", pval))
	}
}

func (p *textPlistGenerator) Indent(i string) {
	p.indent = i
	if i == "" {
		p.dictKvDelimiter = []byte(`=`)
	} else {
		// For pretty-printing
		p.dictKvDelimiter = []byte(` = `)
	}
}

func newTextPlistGenerator(w io.Writer) *textPlistGenerator {
	return &textPlistGenerator{
		writer:             mustWriter{w},
		dictKvDelimiter:    []byte(`=`),
		arrayDelimiter:     []byte(`,`),
		dictEntryDelimiter: []byte(`;`),
	}
}

// mustWriter panics on a failed write; the generators recover it at the
// document boundary.
type mustWriter struct {
	io.Writer
}

func (w mustWriter) Write(p []byte) (int, error) {
	n, err := w.Writer.Write(p)
	if err != nil {
		panic(err)
	}
	return n, nil
}
