package enum

import (
	"fmt"
	"reflect"
)

var enumManager = map[string]any{}

type enum[T comparable] struct {
	toEnum map[string]T
	values []T
}

// New registers a value into the enum of its type and returns it unchanged.
// Registration order is preserved for All.
func New[T comparable](value T) T {
	v := reflect.ValueOf(value)
	t := v.Type()
	if _, ok := enumManager[t.Name()]; !ok {
		enumManager[t.Name()] = &enum[T]{toEnum: make(map[string]T)}
	}

	e := enumManager[t.Name()].(*enum[T])
	if _, ok := e.toEnum[v.String()]; !ok {
		e.toEnum[v.String()] = value
		e.values = append(e.values, value)
	}

	return value
}

// ToEnum returns the registered value whose string form is s.
func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT).Name()]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(*enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

// All returns every registered value of the enum type in registration
// order. The returned slice is a copy.
func All[T comparable]() []T {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT).Name()]
	if !ok {
		return nil
	}

	values := e.(*enum[T]).values
	return append([]T(nil), values...)
}
