package reflection

import "reflect"

// Reflectable is implemented by every type taking part in reflection.
//
// FieldByKey and FieldByKeyMut return the field named by key in the value's own
// registry, or false when the key is absent. Hidden fields, unknown keys and keys
// of an enum variant that is not currently held are all equally absent.
//
// A transparent wrapper answers true from IsTransparent and exposes its single
// wrapped value through Unwrap and UnwrapMut. Other types answer false and
// return nil from both.
type Reflectable interface {
	FieldByKey(key Key) (Value, bool)
	FieldByKeyMut(key Key) (Value, bool)
	IsTransparent() bool
	Unwrap() Reflectable
	UnwrapMut() Reflectable
}

// Dereferencer is implemented by container types that hold exactly one value.
// Deref returns a pointer to the held value, or nil when there is none.
// A field marked with Deref is seen through by way of this method.
type Dereferencer interface {
	Deref() any
}

// MutDereferencer is the write-access counterpart of Dereferencer. Containers
// that do not implement it are dereferenced with Deref in both modes.
type MutDereferencer interface {
	DerefMut() any
}

// Reflect returns the Reflectable view of a pointer. Pointers whose type
// implements Reflectable are used as is; otherwise the type index is consulted.
func Reflect(ptr any) (Reflectable, bool) {
	if isNil(ptr) {
		return nil, false
	}

	if r, ok := ptr.(Reflectable); ok {
		return r, true
	}

	return lookupIndex(ptr)
}

// GetField returns the value of the field named by key if it exists and has type T.
// The result is a copy; use GetFieldMut or FieldByKey to reach the field itself.
func GetField[T any](r Reflectable, key Key) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}

	v, ok := r.FieldByKey(key)
	if !ok {
		return zero, false
	}

	p, ok := Cast[T](v)
	if !ok {
		return zero, false
	}

	return *p, true
}

// GetFieldMut returns a pointer to the field named by key if it exists and has type T.
// Writes through the pointer modify the instance r refers to.
func GetFieldMut[T any](r Reflectable, key Key) (*T, bool) {
	if r == nil {
		return nil, false
	}

	v, ok := r.FieldByKeyMut(key)
	if !ok {
		return nil, false
	}

	return Cast[T](v)
}

// LookupField is GetField with a typed error: ErrKeyNotFound when the key is
// absent, ErrTypeMismatch when the field is not a T.
func LookupField[T any](r Reflectable, key Key) (T, error) {
	var zero T

	p, err := lookup[T](r, key, false)
	if err != nil {
		return zero, err
	}

	return *p, nil
}

// LookupFieldMut is GetFieldMut with a typed error.
func LookupFieldMut[T any](r Reflectable, key Key) (*T, error) {
	return lookup[T](r, key, true)
}

func lookup[T any](r Reflectable, key Key, mut bool) (*T, error) {
	var (
		v  Value
		ok bool
	)

	if r != nil {
		if mut {
			v, ok = r.FieldByKeyMut(key)
		} else {
			v, ok = r.FieldByKey(key)
		}
	}

	if !ok {
		return nil, &PathError{Kind: KindKeyNotFound, Path: string(key), Segment: key}
	}

	p, ok := Cast[T](v)
	if !ok {
		return nil, &PathError{
			Kind:    KindTypeMismatch,
			Path:    string(key),
			Segment: key,
			Want:    reflect.TypeFor[T](),
			Got:     v.Type(),
		}
	}

	return p, nil
}

func isNil(ptr any) bool {
	if ptr == nil {
		return true
	}

	rv := reflect.ValueOf(ptr)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
