package reflection_test

import "reflect-registry/reflection"

// Struct has one visible and one hidden field.
type Struct struct {
	field  uint
	hidden uint
}

const StructField = "field"

var structRegistry = reflection.MustRegistry[Struct]("Struct",
	reflection.Field(StructField, func(s *Struct) *uint { return &s.field }),
	reflection.Field("hidden", func(s *Struct) *uint { return &s.hidden }, reflection.Hidden()),
)

func (s *Struct) FieldByKey(k reflection.Key) (reflection.Value, bool) { return structRegistry.Field(s, k) }
func (s *Struct) FieldByKeyMut(k reflection.Key) (reflection.Value, bool) {
	return structRegistry.FieldMut(s, k)
}
func (s *Struct) IsTransparent() bool { return structRegistry.IsTransparent() }
func (s *Struct) Unwrap() reflection.Reflectable { return structRegistry.Unwrap(s) }
func (s *Struct) UnwrapMut() reflection.Reflectable { return structRegistry.UnwrapMut(s) }

// Tuple is a tuple-style struct.
type Tuple struct {
	f0, f1 uint
}

const (
	TupleF0 = "0"
	TupleF1 = "1"
)

var tupleRegistry = reflection.MustRegistry[Tuple]("Tuple",
	reflection.Positional(0, func(t *Tuple) *uint { return &t.f0 }),
	reflection.Positional(1, func(t *Tuple) *uint { return &t.f1 }),
)

func (t *Tuple) FieldByKey(k reflection.Key) (reflection.Value, bool) { return tupleRegistry.Field(t, k) }
func (t *Tuple) FieldByKeyMut(k reflection.Key) (reflection.Value, bool) {
	return tupleRegistry.FieldMut(t, k)
}
func (t *Tuple) IsTransparent() bool { return tupleRegistry.IsTransparent() }
func (t *Tuple) Unwrap() reflection.Reflectable { return tupleRegistry.Unwrap(t) }
func (t *Tuple) UnwrapMut() reflection.Reflectable { return tupleRegistry.UnwrapMut(t) }

// Enum holds exactly one of its variants.
type Enum struct {
	Named *EnumNamed
	Tuple *EnumTuple
	Unit  *struct{}
}

type EnumNamed struct{ field uint }

type EnumTuple struct{ f0 uint }

const (
	EnumNamedField = "Named@field"
	EnumTupleF0    = "Tuple@0"
)

func NamedEnum(field uint) Enum { return Enum{Named: &EnumNamed{field: field}} }
func TupleEnum(f0 uint) Enum { return Enum{Tuple: &EnumTuple{f0: f0}} }
func UnitEnum() Enum { return Enum{Unit: &struct{}{}} }

var enumRegistry = reflection.MustRegistry[Enum]("Enum",
	reflection.Variant("Named", "field", func(e *Enum) *uint {
		if e.Named == nil {
			return nil
		}
		return &e.Named.field
	}),
	reflection.VariantPositional("Tuple", 0, func(e *Enum) *uint {
		if e.Tuple == nil {
			return nil
		}
		return &e.Tuple.f0
	}),
)

func (e *Enum) FieldByKey(k reflection.Key) (reflection.Value, bool) { return enumRegistry.Field(e, k) }
func (e *Enum) FieldByKeyMut(k reflection.Key) (reflection.Value, bool) {
	return enumRegistry.FieldMut(e, k)
}
func (e *Enum) IsTransparent() bool { return enumRegistry.IsTransparent() }
func (e *Enum) Unwrap() reflection.Reflectable { return enumRegistry.Unwrap(e) }
func (e *Enum) UnwrapMut() reflection.Reflectable { return enumRegistry.UnwrapMut(e) }

// DerefContainer holds one value and is not reflectable itself.
type DerefContainer[T any] struct {
	data T
}

func (c *DerefContainer[T]) Deref() any { return &c.data }

// X reaches a Struct through a deref-transparent container.
type X struct {
	container DerefContainer[Struct]
}

var xRegistry = reflection.MustRegistry[X]("X",
	reflection.Field("container", func(x *X) *DerefContainer[Struct] { return &x.container }, reflection.Deref()),
)

func (x *X) FieldByKey(k reflection.Key) (reflection.Value, bool) { return xRegistry.Field(x, k) }
func (x *X) FieldByKeyMut(k reflection.Key) (reflection.Value, bool) { return xRegistry.FieldMut(x, k) }
func (x *X) IsTransparent() bool { return xRegistry.IsTransparent() }
func (x *X) Unwrap() reflection.Reflectable { return xRegistry.Unwrap(x) }
func (x *X) UnwrapMut() reflection.Reflectable { return xRegistry.UnwrapMut(x) }

// B reaches a Struct through a deref-transparent pointer.
type B struct {
	data *Struct
}

var bRegistry = reflection.MustRegistry[B]("B",
	reflection.Field("data", func(b *B) **Struct { return &b.data }, reflection.Deref()),
)

func (b *B) FieldByKey(k reflection.Key) (reflection.Value, bool) { return bRegistry.Field(b, k) }
func (b *B) FieldByKeyMut(k reflection.Key) (reflection.Value, bool) { return bRegistry.FieldMut(b, k) }
func (b *B) IsTransparent() bool { return bRegistry.IsTransparent() }
func (b *B) Unwrap() reflection.Reflectable { return bRegistry.Unwrap(b) }
func (b *B) UnwrapMut() reflection.Reflectable { return bRegistry.UnwrapMut(b) }

// Hierarchy nests a struct and an enum.
type Hierarchy struct {
	s Struct
	e Enum
}

var hierarchyRegistry = reflection.MustRegistry[Hierarchy]("Hierarchy",
	reflection.Field("s", func(h *Hierarchy) *Struct { return &h.s }),
	reflection.Field("e", func(h *Hierarchy) *Enum { return &h.e }),
)

func (h *Hierarchy) FieldByKey(k reflection.Key) (reflection.Value, bool) {
	return hierarchyRegistry.Field(h, k)
}
func (h *Hierarchy) FieldByKeyMut(k reflection.Key) (reflection.Value, bool) {
	return hierarchyRegistry.FieldMut(h, k)
}
func (h *Hierarchy) IsTransparent() bool { return hierarchyRegistry.IsTransparent() }
func (h *Hierarchy) Unwrap() reflection.Reflectable { return hierarchyRegistry.Unwrap(h) }
func (h *Hierarchy) UnwrapMut() reflection.Reflectable { return hierarchyRegistry.UnwrapMut(h) }

// Handle is a transparent wrapper type: it has no fields and always stands
// for the Struct it points at.
type Handle struct {
	target *Struct
}

var handleRegistry = reflection.NewTransparentRegistry[Handle]("Handle",
	func(h *Handle) any { return h.target }, nil)

func (h *Handle) FieldByKey(k reflection.Key) (reflection.Value, bool) {
	return handleRegistry.Field(h, k)
}
func (h *Handle) FieldByKeyMut(k reflection.Key) (reflection.Value, bool) {
	return handleRegistry.FieldMut(h, k)
}
func (h *Handle) IsTransparent() bool { return handleRegistry.IsTransparent() }
func (h *Handle) Unwrap() reflection.Reflectable { return handleRegistry.Unwrap(h) }
func (h *Handle) UnwrapMut() reflection.Reflectable { return handleRegistry.UnwrapMut(h) }

// Loop is a wrapper that unwraps to itself.
type Loop struct{}

func (l *Loop) FieldByKey(reflection.Key) (reflection.Value, bool) { return reflection.Value{}, false }
func (l *Loop) FieldByKeyMut(reflection.Key) (reflection.Value, bool) { return reflection.Value{}, false }
func (l *Loop) IsTransparent() bool { return true }
func (l *Loop) Unwrap() reflection.Reflectable { return l }
func (l *Loop) UnwrapMut() reflection.Reflectable { return l }
