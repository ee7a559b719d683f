package plists

//go:generate go run ./internal/cmd/tabler delimiters ",/;(){}='\"\t\n\v\f\r \u0085\u00a0"
//go:generate go run ./internal/cmd/tabler bareword "$+-./:0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// characterSet is a bitmap over the first 256 code points.
// Low bits represent lower characters, and each uint64 represents 64 characters.
type characterSet [4]uint64

func (s *characterSet) Contains(ch rune) bool {
	return ch >= 0 && ch <= 255 && s.ContainsByte(byte(ch))
}

func (s *characterSet) ContainsByte(ch byte) bool {
	return (s[ch/64] & (1 << (ch % 64))) > 0
}

// Characters that end a bare identifier in a text property list.
// Whitespace outside Latin-1 is checked separately.
var delimiters = characterSet{
	0x2800938500003e00,
	0x2800000000000000,
	0x0000000100000020,
	0x0000000000000000,
}

// Characters that may be written unquoted by the text generator.
var bareword = characterSet{
	0x07ffe81000000000,
	0x07fffffe87fffffe,
	0x0000000000000000,
	0x0000000000000000,
}
