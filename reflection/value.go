package reflection

import "reflect"

// Value is a typed reference to one field of a reflected instance.
// It holds a pointer into the instance and never copies the field.
type Value struct {
	ptr   any
	typ   reflect.Type
	deref *derefInfo
}

type derefInfo struct {
	inner    func(field any) any
	innerMut func(field any) any
}

// ValueOf wraps a field pointer. A nil pointer yields an invalid Value.
func ValueOf[F any](ptr *F) Value {
	if ptr == nil {
		return Value{}
	}

	return Value{ptr: ptr, typ: reflect.TypeFor[F]()}
}

// IsValid reports whether v refers to a field.
func (v Value) IsValid() bool {
	return v.ptr != nil
}

// Type returns the static type of the referenced field, or nil for an invalid Value.
func (v Value) Type() reflect.Type {
	return v.typ
}

// Interface returns the field pointer (a *F for a field of type F).
func (v Value) Interface() any {
	return v.ptr
}

// IsDeref reports whether the field was declared deref-transparent.
func (v Value) IsDeref() bool {
	return v.deref != nil
}

// Cast returns the field pointer as *T if the field has type T.
func Cast[T any](v Value) (*T, bool) {
	if !v.IsValid() {
		return nil, false
	}

	p, ok := v.ptr.(*T)
	if !ok || p == nil {
		return nil, false
	}

	return p, true
}

// reflectable returns the reflectable view of the referenced field used to
// continue a path walk. Deref fields become transparent wrappers around the
// value they hold.
func (v Value) reflectable() (Reflectable, bool) {
	if !v.IsValid() {
		return nil, false
	}

	if v.deref != nil {
		return &transparent{field: v.ptr, deref: v.deref}, true
	}

	return Reflect(v.ptr)
}

// transparent is the view of a deref field during path resolution.
// It has no fields of its own.
type transparent struct {
	field any
	deref *derefInfo
}

func (t *transparent) FieldByKey(Key) (Value, bool) { return Value{}, false }
func (t *transparent) FieldByKeyMut(Key) (Value, bool) { return Value{}, false }
func (t *transparent) IsTransparent() bool { return true }

func (t *transparent) Unwrap() Reflectable {
	return reflectInner(t.deref.inner(t.field))
}

func (t *transparent) UnwrapMut() Reflectable {
	return reflectInner(t.deref.innerMut(t.field))
}

func reflectInner(ptr any) Reflectable {
	if r, ok := Reflect(ptr); ok {
		return r
	}

	return nil
}
