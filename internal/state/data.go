package state

import "reflect"

// SameData reports whether two application data values are the same value.
//
// Reference types (maps, slices, pointers, funcs, channels) compare by
// identity, so a handler that returns its input unchanged is detected as a
// no-op even when the value is not comparable with ==. Comparable values
// compare with ==. Anything else is treated as changed.
func SameData(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}
