package depot

import (
	"reflect"
	"unsafe"
)

// Component is a typed descriptor for a fixed-size component record.
// T must be free of Go pointers; its bytes are copied into a ComponentStore verbatim.
type Component[T any] struct {
	name string
	size int
}

func (c Component[T]) Name() string { return c.name }
func (c Component[T]) Size() int     { return c.size }

// Tag is a descriptor for a zero-size marker component.
type Tag struct {
	name string
}

func (t Tag) Name() string { return t.name }
func (t Tag) Size() int     { return 0 }

func newComponent[T any](name string) Component[T] {
	typ := reflect.TypeFor[T]()
	if hasPointers(typ) {
		panic(PointerComponentError{Type: typ.String()})
	}
	if name == "" {
		name = typeName(typ)
	}
	return Component[T]{
		name: name,
		size: int(typ.Size()),
	}
}

func typeName(typ reflect.Type) string {
	if n := typ.Name(); n != "" {
		return n
	}
	return typ.String()
}

func hasPointers(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return typ.Len() > 0 && hasPointers(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if hasPointers(typ.Field(i).Type) {
				return true
			}
		}
		return false
	}
	return true
}

func bytesOf[T any](v *T, size int) []byte {
	if size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), size)
}

func recordAs[T any](record []byte) *T {
	if len(record) == 0 {
		return new(T)
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(record)))
}
