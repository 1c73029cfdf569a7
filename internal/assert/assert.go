package assert

import (
	"fmt"
	"reflect"
)

// IsValueType panics if t is a pointer-like type that can not be stored
// as a component value.
func IsValueType(t reflect.Type) {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		panic(fmt.Sprintf("expected value type, got %s (%s)", t, t.Kind()))
	}
}

// InRange panics with the error returned by fail if idx is not within [0, n).
func InRange[I ~int | ~uint32](idx I, n int, fail func() error) {
	if int(idx) < 0 || int(idx) >= n {
		panic(fail())
	}
}

// That panics with the error returned by fail if cond does not hold.
func That(cond bool, fail func() error) {
	if !cond {
		panic(fail())
	}
}
