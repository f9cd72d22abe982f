package derive

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"

	"reflect-registry/reflection"
)

var (
	ErrNotStruct        = errors.New("type is not a struct")
	ErrBadVariant       = errors.New("enum variant field must be a pointer to a struct")
	ErrBadDeref         = errors.New("deref field is neither a pointer nor a Dereferencer")
	ErrConflictingShape = errors.New("tuple and enum layouts are exclusive")
)

var dereferencerType = reflect.TypeFor[reflection.Dereferencer]()

// Option configures Registry.
type Option func(*options)

type options struct {
	name   string
	tagKey string
	tuple  bool
	enum   bool
}

// AsTuple derives positional keys: the field at index N gets key "N".
// Hidden fields keep their position, so later keys are not renumbered.
func AsTuple() Option {
	return func(o *options) { o.tuple = true }
}

// AsEnum treats S as an enum holder: every field is a pointer to the payload
// struct of one variant, and exactly one of them is set at a time. A
// *struct{} field is a unit variant.
func AsEnum() Option {
	return func(o *options) { o.enum = true }
}

// WithName sets the registry name. It defaults to the Go type name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithTagKey reads field annotations from a tag other than `reflect`.
func WithTagKey(key string) Option {
	return func(o *options) { o.tagKey = key }
}

// Registry derives the registry of S from its struct declaration.
func Registry[S any](opts ...Option) (*reflection.Registry[S], error) {
	o := options{tagKey: TagKey}
	for _, opt := range opts {
		opt(&o)
	}

	t := reflect.TypeFor[S]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("derive %s: %w", t, ErrNotStruct)
	}

	if o.tuple && o.enum {
		return nil, fmt.Errorf("derive %s: %w", t, ErrConflictingShape)
	}

	if o.name == "" {
		o.name = t.Name()
	}

	var (
		accessors []reflection.Accessor[S]
		err       error
	)

	if o.enum {
		accessors, err = enumAccessors[S](t, &o)
	} else {
		accessors, err = structAccessors[S](t, &o)
	}

	if err != nil {
		return nil, fmt.Errorf("derive %s: %w", o.name, err)
	}

	return reflection.NewRegistry(o.name, accessors...)
}

// MustRegistry is Registry for package-level variables. It panics on error.
func MustRegistry[S any](opts ...Option) *reflection.Registry[S] {
	reg, err := Registry[S](opts...)
	if err != nil {
		panic(err)
	}

	return reg
}

// Register derives the registry of S and adds it to the reflection type index,
// so *S values become navigable by path resolution.
func Register[S any](opts ...Option) error {
	reg, err := Registry[S](opts...)
	if err != nil {
		return err
	}

	reflection.Register(reg)

	return nil
}

func structAccessors[S any](t reflect.Type, o *options) ([]reflection.Accessor[S], error) {
	var accessors []reflection.Accessor[S]

	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}

		tag := ParseTagKey(sf.Tag, o.tagKey)
		if tag.Hidden {
			continue
		}

		key := reflection.Key(tag.KeyName(sf.Name))
		if o.tuple {
			key = reflection.TupleKey(i)
		}

		fieldOpts, err := fieldOptions(sf, tag)
		if err != nil {
			return nil, err
		}

		get := fieldGetter[S](sf)

		accessors = append(accessors, reflection.NewAccessor(key, sf.Type, get, fieldOpts...))
	}

	return accessors, nil
}

func enumAccessors[S any](t reflect.Type, o *options) ([]reflection.Accessor[S], error) {
	var accessors []reflection.Accessor[S]

	for i := range t.NumField() {
		vf := t.Field(i)

		tag := ParseTagKey(vf.Tag, o.tagKey)
		if tag.Hidden || vf.Name == "_" {
			continue
		}

		if vf.Type.Kind() != reflect.Pointer || vf.Type.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("variant %s: %w", vf.Name, ErrBadVariant)
		}

		variant := tag.KeyName(vf.Name)
		holder := xunsafe.NewField(vf)
		payload := vf.Type.Elem()

		for j := range payload.NumField() {
			pf := payload.Field(j)
			if pf.Name == "_" {
				continue
			}

			ptag := ParseTagKey(pf.Tag, o.tagKey)
			if ptag.Hidden {
				continue
			}

			key := reflection.VariantKey(variant, ptag.KeyName(pf.Name))
			if tag.Tuple {
				key = reflection.VariantTupleKey(variant, j)
			}

			fieldOpts, err := fieldOptions(pf, ptag)
			if err != nil {
				return nil, fmt.Errorf("variant %s: %w", variant, err)
			}

			field := xunsafe.NewField(pf)
			get := func(s *S) any {
				p := *(*unsafe.Pointer)(holder.Pointer(unsafe.Pointer(s)))
				if p == nil {
					return nil
				}

				return addr(field, pf.Type, p)
			}

			accessors = append(accessors, reflection.NewAccessor(key, pf.Type, get, fieldOpts...))
		}
	}

	return accessors, nil
}

func fieldGetter[S any](sf reflect.StructField) func(*S) any {
	field := xunsafe.NewField(sf)

	return func(s *S) any {
		return addr(field, sf.Type, unsafe.Pointer(s))
	}
}

// addr returns a *F for the field of type typ inside the struct at base.
func addr(field *xunsafe.Field, typ reflect.Type, base unsafe.Pointer) any {
	return reflect.NewAt(typ, field.Pointer(base)).Interface()
}

func fieldOptions(sf reflect.StructField, tag Tag) ([]reflection.FieldOption, error) {
	if !tag.Deref {
		return nil, nil
	}

	if sf.Type.Kind() != reflect.Pointer && !reflect.PointerTo(sf.Type).Implements(dereferencerType) {
		return nil, fmt.Errorf("field %s (%s): %w", sf.Name, sf.Type, ErrBadDeref)
	}

	return []reflection.FieldOption{reflection.Deref()}, nil
}
