package plists

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Unmarshaler is implemented by types that decode themselves from a
// property list. unmarshal decodes the value at hand into any other Go value.
type Unmarshaler interface {
	UnmarshalPlist(unmarshal func(interface{}) error) error
}

type incompatibleDecodeTypeError struct {
	dest reflect.Type
	src  string // type name of the property list value
}

func (u *incompatibleDecodeTypeError) Error() string {
	return fmt.Sprintf("plist: type mismatch: tried to decode plist type `%v' into value of type `%v'", u.src, u.dest)
}

var (
	plistUnmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	textUnmarshalerType  = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	rawValueType         = reflect.TypeOf(RawValue{})
)

func isEmptyInterface(v reflect.Value) bool {
	return v.Kind() == reflect.Interface && v.NumMethod() == 0
}

func implementsInterface(val reflect.Value, interfaceType reflect.Type) (interface{}, bool) {
	if val.CanInterface() && val.Type().Implements(interfaceType) {
		return val.Interface(), true
	}

	if val.CanAddr() {
		pv := val.Addr()
		if pv.CanInterface() && pv.Type().Implements(interfaceType) {
			return pv.Interface(), true
		}
	}
	return nil, false
}

// typeName names a raw value for error messages.
func typeName(pval interface{}) string {
	switch pval := pval.(type) {
	case Token:
		if pval.Kind == TokenNumber {
			return "number"
		}
		return "string"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	case *Dict:
		return "dictionary"
	}
	return fmt.Sprintf("%T", pval)
}

// scalarText returns the text of a string-like raw value.
func scalarText(pval interface{}) (string, bool) {
	switch pval := pval.(type) {
	case Token:
		return pval.Value, true
	case string:
		return pval, true
	}
	return "", false
}

func mustParseInt(str string, base, bits int) int64 {
	i, err := strconv.ParseInt(str, base, bits)
	if err != nil {
		panic(err)
	}
	return i
}

func mustParseUint(str string, base, bits int) uint64 {
	i, err := strconv.ParseUint(str, base, bits)
	if err != nil {
		panic(err)
	}
	return i
}

func mustParseFloat(str string, bits int) float64 {
	f, err := strconv.ParseFloat(str, bits)
	if err != nil {
		panic(err)
	}
	return f
}

func mustParseBool(str string) bool {
	switch strings.ToUpper(str) {
	case "YES", "Y":
		return true
	case "NO", "N":
		return false
	}
	b, err := strconv.ParseBool(str)
	if err != nil {
		panic(err)
	}
	return b
}

func (p *Decoder) unmarshalPlistInterface(pval interface{}, unmarshalable Unmarshaler) {
	err := unmarshalable.UnmarshalPlist(func(i interface{}) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recoveredError(r)
			}
		}()
		if err := checkUnmarshalTarget(i); err != nil {
			return err
		}
		p.unmarshal(pval, reflect.ValueOf(i))
		return
	})

	if err != nil {
		panic(err)
	}
}

func (p *Decoder) unmarshalTextInterface(s string, unmarshalable encoding.TextUnmarshaler) {
	err := unmarshalable.UnmarshalText([]byte(s))
	if err != nil {
		panic(err)
	}
}

// unmarshalLaxString stores the text of a scalar into a non-string value.
func (p *Decoder) unmarshalLaxString(s string, val reflect.Value) {
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := mustParseInt(s, 10, val.Type().Bits())
		val.SetInt(i)
		return
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i := mustParseUint(s, 10, val.Type().Bits())
		val.SetUint(i)
		return
	case reflect.Float32, reflect.Float64:
		f := mustParseFloat(s, val.Type().Bits())
		val.SetFloat(f)
		return
	case reflect.Bool:
		b := mustParseBool(s)
		val.SetBool(b)
		return
	case reflect.Struct:
		if val.Type() == timeType {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				panic(err)
			}
			val.Set(reflect.ValueOf(t.In(time.UTC)))
			return
		}
	}
	panic(&incompatibleDecodeTypeError{val.Type(), "string"})
}

// unviewed strips view wrappers so that decoding sees raw nodes only.
func unviewed(pval interface{}) interface{} {
	switch pval := pval.(type) {
	case *DictView:
		return pval.Raw()
	case ListView:
		return pval.Raw()
	case *RawValue:
		return pval.Value()
	}
	return pval
}

func (p *Decoder) unmarshal(pval interface{}, val reflect.Value) {
	pval = unviewed(pval)
	if pval == nil {
		return
	}

	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		val = val.Elem()
	}

	if val.Type() == rawValueType {
		val.Set(reflect.ValueOf(RawValue{value: pval}))
		return
	}

	if isEmptyInterface(val) {
		val.Set(reflect.ValueOf(Native(pval)))
		return
	}

	incompatibleTypeError := &incompatibleDecodeTypeError{val.Type(), typeName(pval)}

	if receiver, can := implementsInterface(val, plistUnmarshalerType); can {
		p.unmarshalPlistInterface(pval, receiver.(Unmarshaler))
		return
	}

	if val.Type() != timeType {
		if receiver, can := implementsInterface(val, textUnmarshalerType); can {
			if s, ok := scalarText(pval); ok {
				p.unmarshalTextInterface(s, receiver.(encoding.TextUnmarshaler))
			} else {
				panic(incompatibleTypeError)
			}
			return
		}
	}

	switch pval := pval.(type) {
	case Token, string:
		s, _ := scalarText(pval)
		if val.Kind() == reflect.String {
			val.SetString(s)
			return
		}
		p.unmarshalLaxString(s, val)
	case bool:
		if val.Kind() == reflect.Bool {
			val.SetBool(pval)
		} else {
			panic(incompatibleTypeError)
		}
	case []interface{}:
		p.unmarshalArray(pval, val)
	case *Dict:
		p.unmarshalDictionary(pval, val)
	default:
		panic(incompatibleTypeError)
	}
}

func (p *Decoder) unmarshalArray(a []interface{}, val reflect.Value) {
	var n int
	if val.Kind() == reflect.Slice {
		// Slice of element values.
		// Grow slice.
		cnt := len(a) + val.Len()
		if cnt >= val.Cap() {
			ncap := 2 * cnt
			if ncap < 4 {
				ncap = 4
			}
			new := reflect.MakeSlice(val.Type(), val.Len(), ncap)
			reflect.Copy(new, val)
			val.Set(new)
		}
		n = val.Len()
		val.SetLen(cnt)
	} else if val.Kind() == reflect.Array {
		if len(a) > val.Cap() {
			panic(fmt.Errorf("plist: attempted to unmarshal %d values into an array of size %d", len(a), val.Cap()))
		}
	} else {
		panic(&incompatibleDecodeTypeError{val.Type(), "array"})
	}

	// Recur to read element into slice.
	for _, sval := range a {
		p.unmarshal(sval, val.Index(n))
		n++
	}
}

func (p *Decoder) unmarshalDictionary(dict *Dict, val reflect.Value) {
	typ := val.Type()
	switch val.Kind() {
	case reflect.Struct:
		tinfo, err := getTypeInfo(typ)
		if err != nil {
			panic(err)
		}

		for _, finfo := range tinfo.fields {
			if sval, ok := dict.Get(finfo.name); ok {
				p.unmarshal(sval, finfo.value(val, true))
			}
		}
	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			panic(&incompatibleDecodeTypeError{typ, "dictionary"})
		}
		if val.IsNil() {
			val.Set(reflect.MakeMap(typ))
		}

		dict.Range(func(k Token, sval interface{}) {
			keyv := reflect.ValueOf(k.Value).Convert(typ.Key())
			mapElem := reflect.New(typ.Elem()).Elem()
			if existing := val.MapIndex(keyv); existing.IsValid() {
				mapElem.Set(existing)
			}

			p.unmarshal(sval, mapElem)
			val.SetMapIndex(keyv, mapElem)
		})
	default:
		panic(&incompatibleDecodeTypeError{typ, "dictionary"})
	}
}
