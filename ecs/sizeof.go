package ecs

import "unsafe"

// sizeOf reports the in-memory size of a value of type T. Used only to
// detect zero-sized component types so storage can skip allocating dense
// backing for them; this is the one place the package reaches past plain
// generics, since Go's type system has no built-in zero-size predicate.
func sizeOf[T any](v T) uintptr {
	return unsafe.Sizeof(v)
}
