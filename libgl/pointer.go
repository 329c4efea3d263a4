package libgl

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Pointer returns the address of the first element behind data.
// data must be nil, a pointer, a uintptr offset or a non-empty slice.
func Pointer(data any) unsafe.Pointer {
	if data == nil {
		return unsafe.Pointer(nil)
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Ptr:
		return unsafe.Pointer(v.Elem().UnsafeAddr())
	case reflect.Uintptr:
		return unsafe.Pointer(data.(uintptr))
	case reflect.Slice:
		if v.Len() == 0 {
			return unsafe.Pointer(nil)
		}
		return unsafe.Pointer(v.Index(0).UnsafeAddr())
	}
	panic(fmt.Errorf("unsupported type %s; must be a slice, uintptr or pointer to a value", v.Type()))
}
