package plists

import (
	"encoding"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// Marshaler is implemented by types that produce their own property list
// representation: a raw value tree, or any Go value that Encode accepts.
type Marshaler interface {
	MarshalPlist() (interface{}, error)
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

var (
	plistMarshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()
	textMarshalerType  = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	timeType           = reflect.TypeOf((*time.Time)(nil)).Elem()
)

func (p *Encoder) marshalPlistInterface(marshalable Marshaler) interface{} {
	v, err := marshalable.MarshalPlist()
	if err != nil {
		panic(err)
	}
	return p.marshal(reflect.ValueOf(v))
}

func (p *Encoder) marshalTextInterface(marshalable encoding.TextMarshaler) interface{} {
	s, err := marshalable.MarshalText()
	if err != nil {
		panic(err)
	}
	return string(s)
}

func (p *Encoder) marshalStruct(typ reflect.Type, val reflect.Value) *Dict {
	tinfo, err := getTypeInfo(typ)
	if err != nil {
		panic(err)
	}

	dict := NewDict()
	for _, finfo := range tinfo.fields {
		value := finfo.value(val, false)
		if !value.IsValid() || finfo.omitEmpty && isEmptyValue(value) {
			continue
		}
		if v := p.marshal(value); v != nil {
			dict.Set(finfo.name, v)
		}
	}
	return dict
}

func (p *Encoder) marshalTime(val reflect.Value) interface{} {
	t := val.Interface().(time.Time)
	return t.Format(time.RFC3339)
}

// marshal converts val into a raw value tree. Nil values produce nil and
// are dropped from arrays and dictionaries.
func (p *Encoder) marshal(val reflect.Value) interface{} {
	if !val.IsValid() {
		return nil
	}

	if val.CanInterface() {
		switch raw := val.Interface().(type) {
		case Token, *Dict, *DictView, ListView:
			return raw
		}
	}

	typ := val.Type()

	// time.Time implements TextMarshaler, but we need to store it in RFC3339
	if typ == timeType {
		return p.marshalTime(val)
	}
	if val.Kind() == reflect.Ptr || (val.Kind() == reflect.Interface && val.NumMethod() == 0) {
		if val.IsNil() {
			return nil
		}
		ival := val.Elem()
		if ival.Type() == timeType {
			return p.marshalTime(ival)
		}
	}

	if receiver, can := implementsInterface(val, plistMarshalerType); can {
		return p.marshalPlistInterface(receiver.(Marshaler))
	}

	// Check for text marshaler.
	if receiver, can := implementsInterface(val, textMarshalerType); can {
		return p.marshalTextInterface(receiver.(encoding.TextMarshaler))
	}

	// Descend into pointers or interfaces
	if val.Kind() == reflect.Ptr || (val.Kind() == reflect.Interface && val.NumMethod() == 0) {
		return p.marshal(val.Elem())
	}

	switch val.Kind() {
	case reflect.Struct:
		return p.marshalStruct(typ, val)
	case reflect.String:
		return val.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Token{Kind: TokenNumber, Value: strconv.FormatInt(val.Int(), 10)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Token{Kind: TokenNumber, Value: strconv.FormatUint(val.Uint(), 10)}
	case reflect.Float32, reflect.Float64:
		return Token{Kind: TokenNumber, Value: strconv.FormatFloat(val.Float(), 'g', -1, typ.Bits())}
	case reflect.Bool:
		return val.Bool()
	case reflect.Slice, reflect.Array:
		if val.Kind() == reflect.Slice && val.IsNil() {
			return nil
		}
		subvalues := make([]interface{}, 0, val.Len())
		for idx, length := 0, val.Len(); idx < length; idx++ {
			if v := p.marshal(val.Index(idx)); v != nil {
				subvalues = append(subvalues, v)
			}
		}
		return subvalues
	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			panic(&unknownTypeError{typ})
		}
		if val.IsNil() {
			return nil
		}

		keys := val.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		dict := NewDict()
		for _, keyv := range keys {
			if v := p.marshal(val.MapIndex(keyv)); v != nil {
				dict.Set(keyv.String(), v)
			}
		}
		return dict
	}
	panic(&unknownTypeError{typ})
}
