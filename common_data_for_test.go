package plists

import (
	"time"
)

type nilWriter int

func (w nilWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

// TestData pairs a Go value with its encoded documents. Value is what gets
// encoded; DecodeValue (if set) is what the documents decode back into.
type TestData struct {
	Name        string
	Value       interface{}
	DecodeValue interface{}
	Documents   map[int][]byte

	SkipDecode map[int]bool
	SkipEncode map[int]bool
}

type SparseBundleHeader struct {
	InfoDictionaryVersion string `plist:"CFBundleInfoDictionaryVersion"`
	BandSize              uint64 `plist:"band-size"`
	BackingStoreVersion   int    `plist:"bundle-backingstore-version"`
	DiskImageBundleType   string `plist:"diskimage-bundle-type"`
	Size                  uint64 `plist:"size"`
}

type EmbedA struct {
	EmbedC
	EmbedB EmbedB
	FieldA string
}

type EmbedB struct {
	FieldB string
	*EmbedC
}

type EmbedC struct {
	FieldA1 string `plist:"FieldA"`
	FieldA2 string
	FieldB  string
	FieldC  string
}

type TextMarshalingBool struct {
	b bool
}

func (b TextMarshalingBool) MarshalText() ([]byte, error) {
	if b.b {
		return []byte("truthful"), nil
	}
	return []byte("non-factual"), nil
}

func (b *TextMarshalingBool) UnmarshalText(text []byte) error {
	if string(text) == "truthful" {
		b.b = true
	}
	return nil
}

type TextMarshalingBoolViaPointer struct {
	b bool
}

func (b *TextMarshalingBoolViaPointer) MarshalText() ([]byte, error) {
	if b.b {
		return []byte("plausible"), nil
	}
	return []byte("unimaginable"), nil
}

func (b *TextMarshalingBoolViaPointer) UnmarshalText(text []byte) error {
	if string(text) == "plausible" {
		b.b = true
	}
	return nil
}

var xmlPreamble = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
`

var tests = []TestData{
	{
		Name:  "String",
		Value: "Hello",
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`"Hello"`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><string>Hello</string></plist>`),
		},
	},
	{
		Name:  "String requiring escapes",
		Value: "Tab\there, \"quotes\" and a back\\slash",
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`"Tab\there, \"quotes\" and a back\\slash"`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><string>Tab&#x9;here, &#34;quotes&#34; and a back\slash</string></plist>`),
		},
	},
	{
		Name: "Basic Structure",
		Value: struct {
			Name string
		}{
			Name: "Dustin",
		},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`{Name="Dustin";}`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><dict><key>Name</key><string>Dustin</string></dict></plist>`),
		},
	},
	{
		Name: "Basic Structure with non-exported fields",
		Value: struct {
			Name string
			age  int
		}{
			Name: "Dustin",
			age:  24,
		},
		DecodeValue: struct {
			Name string
			age  int
		}{
			Name: "Dustin",
		},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`{Name="Dustin";}`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><dict><key>Name</key><string>Dustin</string></dict></plist>`),
		},
	},
	{
		Name: "Basic Structure with omitted fields",
		Value: struct {
			Name string
			Age  int `plist:"-"`
		}{
			Name: "Dustin",
			Age:  24,
		},
		DecodeValue: struct {
			Name string
			Age  int `plist:"-"`
		}{
			Name: "Dustin",
		},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`{Name="Dustin";}`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><dict><key>Name</key><string>Dustin</string></dict></plist>`),
		},
	},
	{
		Name: "Basic Structure with empty omitempty fields",
		Value: struct {
			Name      string
			Age       int     `plist:"age,omitempty"`
			Slice     []int   `plist:",omitempty"`
			Bool      bool    `plist:",omitempty"`
			Uint      uint    `plist:",omitempty"`
			Float32   float32 `plist:",omitempty"`
			Float64   float64 `plist:",omitempty"`
			Stringptr *string `plist:",omitempty"`
			Notempty  uint    `plist:",omitempty"`
		}{
			Name:     "Dustin",
			Notempty: 10,
		},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`{Name="Dustin";Notempty=10;}`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><dict><key>Name</key><string>Dustin</string><key>Notempty</key><integer>10</integer></dict></plist>`),
		},
	},
	{
		Name: "Structure with Anonymous Embeds",
		Value: EmbedA{
			EmbedC: EmbedC{
				FieldA1: "",
				FieldA2: "",
				FieldB:  "A.C.B",
				FieldC:  "A.C.C",
			},
			EmbedB: EmbedB{
				FieldB: "A.B.B",
				EmbedC: &EmbedC{
					FieldA1: "A.B.C.A1",
					FieldA2: "A.B.C.A2",
					FieldB:  "", // Shadowed by A.B.B
					FieldC:  "A.B.C.C",
				},
			},
			FieldA: "A.A",
		},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`{EmbedB={FieldB="A.B.B";FieldA="A.B.C.A1";FieldA2="A.B.C.A2";FieldC="A.B.C.C";};FieldA="A.A";FieldA2="";FieldB="A.C.B";FieldC="A.C.C";}`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><dict><key>EmbedB</key><dict><key>FieldB</key><string>A.B.B</string><key>FieldA</key><string>A.B.C.A1</string><key>FieldA2</key><string>A.B.C.A2</string><key>FieldC</key><string>A.B.C.C</string></dict><key>FieldA</key><string>A.A</string><key>FieldA2</key><string/><key>FieldB</key><string>A.C.B</string><key>FieldC</key><string>A.C.C</string></dict></plist>`),
		},
	},
	{
		Name:  "Arbitrary Integer Slice",
		Value: []int{'h', 'e', 'l', 'l', 'o'},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`(104,101,108,108,111,)`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><array><integer>104</integer><integer>101</integer><integer>108</integer><integer>108</integer><integer>111</integer></array></plist>`),
		},
	},
	{
		Name:  "Arbitrary Integer Array",
		Value: [3]int{'h', 'i', '!'},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`(104,105,33,)`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><array><integer>104</integer><integer>105</integer><integer>33</integer></array></plist>`),
		},
	},
	{
		Name:  "Signed Integers",
		Value: []int64{-1, -255, -9223372036854775808},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`(-1,-255,-9223372036854775808,)`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><array><integer>-1</integer><integer>-255</integer><integer>-9223372036854775808</integer></array></plist>`),
		},
	},
	{
		Name:  "Unsigned Integers of Increasing Size",
		Value: []uint64{0xff, 0xfff, 0xffff, 0xffffffff, 0xffffffffffffffff},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`(255,4095,65535,4294967295,18446744073709551615,)`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><array><integer>255</integer><integer>4095</integer><integer>65535</integer><integer>4294967295</integer><integer>18446744073709551615</integer></array></plist>`),
		},
	},
	{
		Name:  "Boolean True",
		Value: true,
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`YES`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><true/></plist>`),
		},
	},
	{
		Name:  "Boolean False",
		Value: false,
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`NO`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><false/></plist>`),
		},
	},
	{
		Name:  "Floating-Point Value",
		Value: 3.14159265358979323846264338327950288,
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`3.141592653589793`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><real>3.141592653589793</real></plist>`),
		},
	},
	{
		Name: "Map (containing arbitrary types)",
		Value: map[string]interface{}{
			"float":  1.5,
			"uint64": uint64(1),
		},
		DecodeValue: map[string]interface{}{
			"float":  "1.5",
			"uint64": "1",
		},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`{float=1.5;uint64=1;}`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><dict><key>float</key><real>1.5</real><key>uint64</key><integer>1</integer></dict></plist>`),
		},
	},
	{
		Name: "Map (containing nil)",
		Value: map[string]interface{}{
			"float":  1.5,
			"uint64": uint64(1),
			"nil":    nil,
		},
		DecodeValue: map[string]interface{}{
			"float":  "1.5",
			"uint64": "1",
		},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`{float=1.5;uint64=1;}`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><dict><key>float</key><real>1.5</real><key>uint64</key><integer>1</integer></dict></plist>`),
		},
	},
	{
		Name:  "Map with keys requiring quotes",
		Value: map[string]string{"a key": "v", "plain.key": "w"},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`{"a key"="v";plain.key="w";}`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><dict><key>a key</key><string>v</string><key>plain.key</key><string>w</string></dict></plist>`),
		},
	},
	{
		Name:  "Nested Arrays",
		Value: [][]string{{"a", "b"}, {}, {"c"}},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`(("a","b",),(),("c",),)`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><array><array><string>a</string><string>b</string></array><array></array><array><string>c</string></array></array></plist>`),
		},
	},
	{
		Name:  "Time",
		Value: time.Date(2013, 11, 27, 0, 34, 0, 0, time.UTC),
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`"2013-11-27T00:34:00Z"`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><string>2013-11-27T00:34:00Z</string></plist>`),
		},
	},
	{
		Name:  "Text Marshaler",
		Value: TextMarshalingBool{true},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`"truthful"`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><string>truthful</string></plist>`),
		},
	},
	{
		Name:  "Text Marshaler via Pointer",
		Value: &TextMarshalingBoolViaPointer{true},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`"plausible"`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><string>plausible</string></plist>`),
		},
	},
	{
		Name: "SparseBundleHeader",
		Value: &SparseBundleHeader{
			InfoDictionaryVersion: "6.0",
			BandSize:              8388608,
			BackingStoreVersion:   1,
			DiskImageBundleType:   "com.apple.diskimage.sparsebundle",
			Size:                  4398046511104,
		},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`{CFBundleInfoDictionaryVersion="6.0";band-size=8388608;bundle-backingstore-version=1;diskimage-bundle-type="com.apple.diskimage.sparsebundle";size=4398046511104;}`),
			XMLFormat:      []byte(xmlPreamble + `<plist version="1.0"><dict><key>CFBundleInfoDictionaryVersion</key><string>6.0</string><key>band-size</key><integer>8388608</integer><key>bundle-backingstore-version</key><integer>1</integer><key>diskimage-bundle-type</key><string>com.apple.diskimage.sparsebundle</string><key>size</key><integer>4398046511104</integer></dict></plist>`),
		},
	},
	{
		Name:  "Bare Words and Comments",
		Value: map[string]string{"A": "1", "Path": "/usr/bin", "Name": "Hello, world"},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`// leading comment
{
	A = 1; /* A is 1 because it is the first letter */
	Path = /usr/bin; // not a comment, then a comment
	Name = 'Hello, world';
}`),
		},
		SkipEncode: map[int]bool{OpenStepFormat: true},
	},
	{
		Name:  "Escapes",
		Value: []string{"\\w", "\a", "\b", "\v", "\f", "\t", "\r", "\n", "\u00ab", "\u00ac", "\u00ad", "\033", "'", "\""},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`("\w", "\a", "\b", "\v", "\f", "\t", "\r", "\n", "\xAB", "\u00AC", "\U00AD", "\033", '\'', "\"")`),
		},
		SkipEncode: map[int]bool{OpenStepFormat: true},
	},
	{
		Name:  "Various Truncated Escapes",
		Value: "\x01\x02\x03\x04\x057",
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`"\x1\u02\U003\4\0057"`),
		},
		SkipEncode: map[int]bool{OpenStepFormat: true},
	},
	{
		Name:  "Various Case-Insensitive Escapes",
		Value: "\u00ab\ucdef",
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`"\xaB\uCdEf"`),
		},
		SkipEncode: map[int]bool{OpenStepFormat: true},
	},
	{
		Name:  "UTF-8 with BOM",
		Value: "Hello",
		Documents: map[int][]byte{
			OpenStepFormat: []byte("\ufeffHello"),
		},
		SkipEncode: map[int]bool{OpenStepFormat: true},
	},
	{
		Name:  "Strings File Format Dictionary with Trailing Separators",
		Value: map[string]string{"Key": "Value", "Key2": "Value2"},
		Documents: map[int][]byte{
			OpenStepFormat: []byte(`{"Key" = "Value", "Key2" = "Value2",}`),
		},
		SkipEncode: map[int]bool{OpenStepFormat: true},
	},
}

// plistValueTreeAsOpenStep is a document exercising every construct of the
// text format; plistValueTree is its parse.
var plistValueTreeAsOpenStep = `// !$*UTF8*$!
{
	intarray = (1, 8, 16, 32, 64, 2, 9, 17, 33, 65);
	floats = (32.0, 64.0);
	booleans = (YES, NO);
	strings = ("Hello, ASCII", "Hello, 世界");
	path = /usr/local/bin; /* a path is a bare word */
	date = "2013-11-27T00:34:00Z";
	nested = { empty = (); inner = { 'quoted key' = value; }; };
}
`

var plistValueTree = mustParseForTest(plistValueTreeAsOpenStep)

func mustParseForTest(s string) interface{} {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}
