package plists

import (
	"reflect"
	"strings"
	"sync"
)

// typeInfo holds details for the plist representation of a struct type.
type typeInfo struct {
	fields []fieldInfo
}

// fieldInfo holds details for the plist representation of a single field.
type fieldInfo struct {
	idx       []int
	name      string
	omitEmpty bool
}

var tinfoMap sync.Map // map[reflect.Type]*typeInfo

// getTypeInfo returns the typeInfo structure with details necessary
// for marshalling and unmarshalling typ.
func getTypeInfo(typ reflect.Type) (*typeInfo, error) {
	if ti, ok := tinfoMap.Load(typ); ok {
		return ti.(*typeInfo), nil
	}

	tinfo := &typeInfo{}
	seen := make(map[string]bool)
	if err := addFields(tinfo, typ, nil, seen); err != nil {
		return nil, err
	}
	ti, _ := tinfoMap.LoadOrStore(typ, tinfo)
	return ti.(*typeInfo), nil
}

// addFields walks typ breadth-first so that shallower fields shadow the
// fields of embedded structs with the same name.
func addFields(tinfo *typeInfo, typ reflect.Type, index []int, seen map[string]bool) error {
	type embedded struct {
		typ   reflect.Type
		index []int
	}
	var deferred []embedded

	for i, n := 0, typ.NumField(); i < n; i++ {
		f := typ.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue // Private field
		}

		tag := f.Tag.Get("plist")
		if tag == "-" {
			continue
		}

		idx := make([]int, len(index)+1)
		copy(idx, index)
		idx[len(index)] = i

		if f.Anonymous && tag == "" {
			t := f.Type
			if t.Kind() == reflect.Ptr {
				t = t.Elem()
			}
			if t.Kind() == reflect.Struct {
				deferred = append(deferred, embedded{t, idx})
				continue
			}
			if f.PkgPath != "" {
				continue
			}
		}

		finfo := structFieldInfo(&f, tag)
		finfo.idx = idx
		if seen[finfo.name] {
			continue
		}
		seen[finfo.name] = true
		tinfo.fields = append(tinfo.fields, finfo)
	}

	for _, e := range deferred {
		if err := addFields(tinfo, e.typ, e.index, seen); err != nil {
			return err
		}
	}
	return nil
}

// structFieldInfo builds and returns a fieldInfo for f.
func structFieldInfo(f *reflect.StructField, tag string) fieldInfo {
	finfo := fieldInfo{name: f.Name}
	tokens := strings.Split(tag, ",")
	if tokens[0] != "" {
		finfo.name = tokens[0]
	}
	for _, flag := range tokens[1:] {
		if flag == "omitempty" {
			finfo.omitEmpty = true
		}
	}
	return finfo
}

// value returns v's field value corresponding to finfo.
// It allocates nil embedded pointers when alloc is set; otherwise a nil
// embedded pointer yields the zero Value.
func (finfo *fieldInfo) value(v reflect.Value, alloc bool) reflect.Value {
	for i, x := range finfo.idx {
		if i > 0 {
			t := v.Type()
			if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct {
				if v.IsNil() {
					if !alloc {
						return reflect.Value{}
					}
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}
		v = v.Field(x)
	}
	return v
}
