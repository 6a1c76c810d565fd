package mem

import (
	"fmt"
	"reflect"
)

// CheckTrivial reports whether values of t can live in memory the garbage
// collector does not scan: no pointers, slices, maps, strings, interfaces,
// funcs or channels at any depth.
func CheckTrivial(t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("nil type is not trivially copyable")
	}
	if path, kind, ok := pointerField(t, t.String()); ok {
		return fmt.Errorf("type %s is not trivially copyable: %s is a %s", t, path, kind)
	}
	return nil
}

func pointerField(t reflect.Type, path string) (string, reflect.Kind, bool) {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Slice, reflect.Map, reflect.Interface,
		reflect.Func, reflect.Chan, reflect.String:
		return path, t.Kind(), true
	case reflect.Array:
		return pointerField(t.Elem(), path+"[]")
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if p, k, ok := pointerField(f.Type, path+"."+f.Name); ok {
				return p, k, true
			}
		}
	}
	return "", reflect.Invalid, false
}
