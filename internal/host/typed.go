package host

import (
	"fmt"
	"reflect"
)

// Defaulter lets a resource type provide its own initial value instead of
// the zero value.
type Defaulter[T any] interface {
	Default() T
}

// TypeOf returns the reflect.Type used as the key for T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// NewDefault returns a pointer to the initial value of T.
func NewDefault[T any]() *T {
	v := new(T)
	if d, ok := any(*v).(Defaulter[T]); ok {
		*v = d.Default()
	}
	return v
}

// InitResource stores the initial value of T unless one is already present.
func InitResource[T any](b BuildState) bool {
	return b.InitResource(TypeOf[T](), func() any { return NewDefault[T]() })
}

// GetResource returns the resource of type T if present.
func GetResource[T any](w World) (*T, bool) {
	v, ok := w.Resource(TypeOf[T]())
	if !ok {
		return nil, false
	}
	r, ok := v.(*T)
	return r, ok
}

// MustResource is like GetResource but panics when the resource is missing.
func MustResource[T any](w World) *T {
	r, ok := GetResource[T](w)
	if !ok {
		panic(fmt.Sprintf("resource %s is not initialized", TypeOf[T]()))
	}
	return r
}
