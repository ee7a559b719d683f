package plists

// RawValue holds an undecoded subtree of a property list. Decoding into a
// RawValue keeps the subtree as-is, to be decoded later with
// Decoder.DecodeElement or re-encoded unchanged by an Encoder.
type RawValue struct {
	value interface{}
}

// NewRawValue wraps a raw value tree, such as the result of Parse.
func NewRawValue(v interface{}) *RawValue {
	return &RawValue{value: v}
}

// Value returns the wrapped raw value tree.
func (r *RawValue) Value() interface{} {
	if r == nil {
		return nil
	}
	return r.value
}

// View returns the wrapped tree through Wrap.
func (r *RawValue) View() interface{} {
	return Wrap(r.Value())
}

func (r RawValue) MarshalPlist() (interface{}, error) {
	return r.value, nil
}
