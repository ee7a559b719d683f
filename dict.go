package plists

// A Dict is the mapping node of a raw value tree.
//
// Keys are Tokens. A plain string key is stored as an IDENTIFIER token, so
// "name" and Token{TokenIdentifier, "name"} are the same key. Lookups that
// miss on the exact key are retried with the same payload under the other
// value kinds, which lets a quoted key ("name" = ...) be found by its string.
//
// Keys keep the order in which they were first inserted.
type Dict struct {
	keys    []Token
	entries map[Token]interface{}
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{entries: make(map[Token]interface{})}
}

var valueKinds = [...]TokenKind{TokenIdentifier, TokenString, TokenNumber}

// normalizeKey turns a string or Token key into its stored form.
func normalizeKey(key interface{}) (Token, bool) {
	switch key := key.(type) {
	case Token:
		return key, true
	case string:
		return identifier(key), true
	}
	return Token{}, false
}

// Set stores v under key, which must be a Token or a string. Setting an
// existing key replaces its value and keeps its position.
func (d *Dict) Set(key interface{}, v interface{}) {
	k, ok := normalizeKey(key)
	if !ok {
		panic("plist: Dict key must be a Token or a string")
	}
	if d.entries == nil {
		d.entries = make(map[Token]interface{})
	}
	if _, exists := d.entries[k]; !exists {
		d.keys = append(d.keys, k)
	}
	d.entries[k] = v
}

func (d *Dict) find(key interface{}) (Token, bool) {
	k, ok := normalizeKey(key)
	if !ok || d == nil {
		return Token{}, false
	}
	if _, ok := d.entries[k]; ok {
		return k, true
	}
	if !k.IsValue() {
		return Token{}, false
	}
	for _, kind := range valueKinds {
		alt := Token{Kind: kind, Value: k.Value}
		if _, ok := d.entries[alt]; ok {
			return alt, true
		}
	}
	return Token{}, false
}

// Get returns the value stored under key (a Token or a string).
func (d *Dict) Get(key interface{}) (interface{}, bool) {
	k, ok := d.find(key)
	if !ok {
		return nil, false
	}
	return d.entries[k], true
}

// Contains reports whether Get would find key.
func (d *Dict) Contains(key interface{}) bool {
	_, ok := d.find(key)
	return ok
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the stored keys in insertion order.
func (d *Dict) Keys() []Token {
	if d == nil {
		return nil
	}
	out := make([]Token, len(d.keys))
	copy(out, d.keys)
	return out
}

// StringKeys returns the payloads of the stored keys in insertion order.
func (d *Dict) StringKeys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	for i, k := range d.keys {
		out[i] = k.Value
	}
	return out
}

// Range calls fn for every entry in insertion order.
func (d *Dict) Range(fn func(key Token, v interface{})) {
	if d == nil {
		return
	}
	for _, k := range d.keys {
		fn(k, d.entries[k])
	}
}
