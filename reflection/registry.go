package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrDuplicateKey = errors.New("duplicate field key")
	ErrNilGetter    = errors.New("field getter is nil")
	ErrEmptyKey     = errors.New("field key is empty")
	ErrInvalidKey   = errors.New("field key contains the path separator")
)

// Accessor describes how to reach one field of S. Build accessors with Field,
// Positional, Variant, VariantPositional or NewAccessor.
type Accessor[S any] struct {
	key    Key
	typ    reflect.Type
	get    func(*S) any
	hidden bool
	deref  *derefInfo
}

// FieldOption annotates an accessor.
type FieldOption func(*fieldOptions)

type fieldOptions struct {
	hidden bool
	deref  bool
	inner  func(field any) any
}

// Hidden removes the field from the registry. Hidden fields cannot be reached
// by key or by path.
func Hidden() FieldOption {
	return func(o *fieldOptions) { o.hidden = true }
}

// Deref marks the field deref-transparent. Path resolution continues with the
// value the field holds: through Dereferencer (and MutDereferencer) when the
// field type implements it, otherwise through the pointer the field stores.
func Deref() FieldOption {
	return func(o *fieldOptions) { o.deref = true }
}

// DerefWith marks the field deref-transparent and reaches the wrapped value
// through fn. fn receives the field pointer and returns a pointer to the
// wrapped value, or nil.
func DerefWith(fn func(field any) any) FieldOption {
	return func(o *fieldOptions) {
		o.deref = true
		o.inner = fn
	}
}

// NewAccessor builds an accessor for a field of type typ. get returns a pointer
// to the field (a *F for typ F) or nil when the field is absent for this instance.
func NewAccessor[S any](key Key, typ reflect.Type, get func(*S) any, opts ...FieldOption) Accessor[S] {
	var o fieldOptions
	for _, opt := range opts {
		opt(&o)
	}

	a := Accessor[S]{key: key, typ: typ, get: get, hidden: o.hidden}
	if o.deref {
		a.deref = newDerefInfo(o.inner)
	}

	return a
}

// Field builds an accessor for a named field.
func Field[S, F any](key Key, get func(*S) *F, opts ...FieldOption) Accessor[S] {
	var fn func(*S) any
	if get != nil {
		fn = func(s *S) any {
			if p := get(s); p != nil {
				return p
			}

			return nil
		}
	}

	return NewAccessor[S](key, reflect.TypeFor[F](), fn, opts...)
}

// Positional builds an accessor for a tuple-style field at index.
func Positional[S, F any](index int, get func(*S) *F, opts ...FieldOption) Accessor[S] {
	return Field(TupleKey(index), get, opts...)
}

// Variant builds an accessor for a named field of an enum variant.
// get returns nil while the instance holds another variant.
func Variant[S, F any](variant, field string, get func(*S) *F, opts ...FieldOption) Accessor[S] {
	return Field(VariantKey(variant, field), get, opts...)
}

// VariantPositional builds an accessor for a positional field of an enum variant.
func VariantPositional[S, F any](variant string, index int, get func(*S) *F, opts ...FieldOption) Accessor[S] {
	return Field(VariantTupleKey(variant, index), get, opts...)
}

// FieldInfo describes one registered field.
type FieldInfo struct {
	Key   Key
	Type  reflect.Type
	Deref bool
}

// Registry is the fixed table of field accessors of S. It is built once and
// never changes afterwards.
type Registry[S any] struct {
	name      string
	typ       reflect.Type
	entries   []Accessor[S]
	index     map[Key]int
	unwrap    func(*S) any
	unwrapMut func(*S) any
}

// NewRegistry builds the registry of S from its accessors, in declaration order.
// Hidden accessors are dropped.
func NewRegistry[S any](name string, accessors ...Accessor[S]) (*Registry[S], error) {
	r := &Registry[S]{
		name:  name,
		typ:   reflect.TypeFor[S](),
		index: make(map[Key]int, len(accessors)),
	}

	if r.name == "" {
		r.name = r.typ.String()
	}

	for _, a := range accessors {
		if a.hidden {
			continue
		}

		if a.key == "" {
			return nil, fmt.Errorf("%s: %w", r.name, ErrEmptyKey)
		}

		// Such a key would split into two segments and could never be resolved.
		if strings.Contains(string(a.key), PathSeparator) {
			return nil, fmt.Errorf("%s.%s: %w", r.name, a.key, ErrInvalidKey)
		}

		if a.get == nil {
			return nil, fmt.Errorf("%s.%s: %w", r.name, a.key, ErrNilGetter)
		}

		if _, dup := r.index[a.key]; dup {
			return nil, fmt.Errorf("%s.%s: %w", r.name, a.key, ErrDuplicateKey)
		}

		r.index[a.key] = len(r.entries)
		r.entries = append(r.entries, a)
	}

	return r, nil
}

// MustRegistry is NewRegistry for package-level registries. It panics on error.
func MustRegistry[S any](name string, accessors ...Accessor[S]) *Registry[S] {
	r, err := NewRegistry(name, accessors...)
	if err != nil {
		panic(err)
	}

	return r
}

// NewTransparentRegistry builds the registry of a transparent wrapper type.
// The wrapper has no fields of its own; unwrap and unwrapMut return a pointer
// to the wrapped value. A nil unwrapMut reuses unwrap.
func NewTransparentRegistry[S any](name string, unwrap, unwrapMut func(*S) any) *Registry[S] {
	if unwrap == nil {
		panic(fmt.Sprintf("%s: transparent registry needs an unwrap function", name))
	}

	if unwrapMut == nil {
		unwrapMut = unwrap
	}

	r := MustRegistry[S](name)
	r.unwrap = unwrap
	r.unwrapMut = unwrapMut

	return r
}

// Name returns the type name the registry was built for.
func (r *Registry[S]) Name() string { return r.name }

// Type returns the reflected type S.
func (r *Registry[S]) Type() reflect.Type { return r.typ }

// Len returns the number of visible fields.
func (r *Registry[S]) Len() int { return len(r.entries) }

// Has reports whether key names a visible field.
func (r *Registry[S]) Has(key Key) bool {
	_, ok := r.index[key]
	return ok
}

// Keys returns the visible keys in declaration order.
func (r *Registry[S]) Keys() []Key {
	keys := make([]Key, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.key
	}

	return keys
}

// Fields describes the visible fields in declaration order.
func (r *Registry[S]) Fields() []FieldInfo {
	fields := make([]FieldInfo, len(r.entries))
	for i, e := range r.entries {
		fields[i] = FieldInfo{Key: e.key, Type: e.typ, Deref: e.deref != nil}
	}

	return fields
}

// Field returns the field of s named by key.
func (r *Registry[S]) Field(s *S, key Key) (Value, bool) {
	if s == nil {
		return Value{}, false
	}

	i, ok := r.index[key]
	if !ok {
		return Value{}, false
	}

	e := r.entries[i]

	ptr := e.get(s)
	if isNil(ptr) {
		return Value{}, false
	}

	return Value{ptr: ptr, typ: e.typ, deref: e.deref}, true
}

// FieldMut returns the field of s named by key for write access.
// Go pointers carry no read-only flavour, so this is the same reference Field
// returns; the distinction matters to wrappers reached from it.
func (r *Registry[S]) FieldMut(s *S, key Key) (Value, bool) {
	return r.Field(s, key)
}

// IsTransparent reports whether S is a transparent wrapper.
func (r *Registry[S]) IsTransparent() bool {
	return r.unwrap != nil
}

// Unwrap returns the value wrapped by s, or nil when S is not a wrapper.
func (r *Registry[S]) Unwrap(s *S) Reflectable {
	if r.unwrap == nil || s == nil {
		return nil
	}

	return reflectInner(r.unwrap(s))
}

// UnwrapMut returns the value wrapped by s for write access.
func (r *Registry[S]) UnwrapMut(s *S) Reflectable {
	if r.unwrapMut == nil || s == nil {
		return nil
	}

	return reflectInner(r.unwrapMut(s))
}

// Bind returns s as a Reflectable backed by this registry.
func (r *Registry[S]) Bind(s *S) Reflectable {
	return &bound[S]{reg: r, s: s}
}

type bound[S any] struct {
	reg *Registry[S]
	s   *S
}

func (b *bound[S]) FieldByKey(key Key) (Value, bool) { return b.reg.Field(b.s, key) }
func (b *bound[S]) FieldByKeyMut(key Key) (Value, bool) { return b.reg.FieldMut(b.s, key) }
func (b *bound[S]) IsTransparent() bool { return b.reg.IsTransparent() }
func (b *bound[S]) Unwrap() Reflectable { return b.reg.Unwrap(b.s) }
func (b *bound[S]) UnwrapMut() Reflectable { return b.reg.UnwrapMut(b.s) }

func newDerefInfo(inner func(field any) any) *derefInfo {
	if inner != nil {
		return &derefInfo{inner: inner, innerMut: inner}
	}

	return &derefInfo{inner: derefRead, innerMut: derefWrite}
}

func derefRead(field any) any {
	if d, ok := field.(Dereferencer); ok {
		return d.Deref()
	}

	return derefPointer(field)
}

func derefWrite(field any) any {
	if d, ok := field.(MutDereferencer); ok {
		return d.DerefMut()
	}

	return derefRead(field)
}

// derefPointer loads the pointer stored in the field *F when F is itself a
// pointer type.
func derefPointer(field any) any {
	rv := reflect.ValueOf(field)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil
	}

	inner := rv.Elem()
	if inner.Kind() != reflect.Pointer || inner.IsNil() {
		return nil
	}

	return inner.Interface()
}
