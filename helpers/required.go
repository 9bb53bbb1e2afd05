package helpers

import (
	"reflect"
)

// StrPanic returns s, or panics with msg when s is empty. Constructors use it for required names and addresses
// (service names, registry prefixes, proxy tags) so a miswired binary fails at startup instead of at the first call.
func StrPanic(s string, msg string) string {
	if s == "" {
		panic(msg)
	}
	return s
}

// NilPanic returns v, or panics with msg when v is nil. Typed nils (nil pointer, slice, map, chan, func held in
// an interface) count as nil.
//
// Called from every service, handler and adapter constructor that takes a collaborator
// (registry, backend, resolver, sender, logger).
func NilPanic[T any](v T, msg string) T {
	if isNil(v) {
		panic(msg)
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
