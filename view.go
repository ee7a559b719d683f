package plists

// Views present a raw value tree with its Tokens unwrapped, without copying
// the tree. Each access wraps the child it returns, so only the parts of
// the tree that are actually visited are ever converted. A view borrows
// the raw node it wraps and must not outlive it.

// Wrap converts a raw value for native use: a Token becomes its payload
// string, a *Dict becomes a *DictView and a []interface{} a ListView. Any
// other value, such as a string or bool produced by the XML reader, is
// returned unchanged.
func Wrap(raw interface{}) interface{} {
	switch raw := raw.(type) {
	case Token:
		return raw.Value
	case *Dict:
		return &DictView{raw}
	case []interface{}:
		return ListView(raw)
	}
	return raw
}

// AsView is the opt-in entry point for native access to a parse result.
// It is Wrap under another name.
func AsView(raw interface{}) interface{} {
	return Wrap(raw)
}

// DictView is a read-only, unwrapping view of a *Dict.
type DictView struct {
	d *Dict
}

// Get returns the wrapped value stored under key (a string or Token).
func (v *DictView) Get(key interface{}) (interface{}, bool) {
	raw, ok := v.d.Get(key)
	if !ok {
		return nil, false
	}
	return Wrap(raw), true
}

// Lookup is Get without the presence flag.
func (v *DictView) Lookup(key interface{}) interface{} {
	w, _ := v.Get(key)
	return w
}

func (v *DictView) Contains(key interface{}) bool {
	return v.d.Contains(key)
}

// Keys returns the dictionary keys as plain strings.
func (v *DictView) Keys() []string {
	return v.d.StringKeys()
}

func (v *DictView) Len() int {
	return v.d.Len()
}

// Raw returns the underlying Dict.
func (v *DictView) Raw() *Dict {
	return v.d
}

// ListView is a read-only, unwrapping view of a raw sequence.
type ListView []interface{}

// Index returns the wrapped element at i. It panics if i is out of range,
// like indexing a slice.
func (v ListView) Index(i int) interface{} {
	return Wrap(v[i])
}

func (v ListView) Len() int {
	return len(v)
}

// Raw returns the underlying sequence.
func (v ListView) Raw() []interface{} {
	return []interface{}(v)
}

// Native eagerly converts a raw value tree into plain Go values:
// map[string]interface{}, []interface{}, string and bool. Views are
// unwrapped as well. Use it when a detached copy is needed, for example to
// hand the tree to an encoding/json or YAML encoder.
func Native(raw interface{}) interface{} {
	switch raw := raw.(type) {
	case Token:
		return raw.Value
	case *Dict:
		out := make(map[string]interface{}, raw.Len())
		raw.Range(func(k Token, sub interface{}) {
			out[k.Value] = Native(sub)
		})
		return out
	case *DictView:
		return Native(raw.d)
	case []interface{}:
		out := make([]interface{}, len(raw))
		for i, sub := range raw {
			out[i] = Native(sub)
		}
		return out
	case ListView:
		return Native([]interface{}(raw))
	}
	return raw
}
