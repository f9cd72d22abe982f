package plan

import (
	"reflect-registry/internal/analyze"
	"reflect-registry/internal/config"
	"reflect-registry/internal/diagnostic"
	"reflect-registry/reflection"
)

// ReflectionPath is the import path of the runtime package generated code uses.
const ReflectionPath = "reflect-registry/reflection"

// Plan is the final output of planning.
// It contains everything needed for code generation.
type Plan struct {
	// Config is the config the plan was built from.
	Config *config.File
	// Package is the analyzed package.
	Package *analyze.Package
	// Types holds one plan per configured type, in config order.
	Types []TypePlan
	// Imports lists the packages field types refer to, sorted by path.
	Imports []Import
	// Diagnostics contains all warnings and errors from planning.
	Diagnostics diagnostic.Diagnostics
	// Paths holds the outcome of every configured path check, in config order.
	Paths []PathResult
}

// Import is one import of the generated file.
type Import struct {
	Path string
	Name string
}

// TypePlan is the registry of one type.
type TypePlan struct {
	// Name is the Go type name.
	Name string
	// Kind is the configured shape.
	Kind config.Kind
	// Registry is the package-level variable holding the registry.
	Registry string
	// Receiver is the receiver name of the generated methods.
	Receiver string
	// Fields are the visible fields, in declaration order.
	Fields []FieldPlan
	// Hidden lists keys left out of the registry.
	Hidden []reflection.Key
	// Unwrap is set for wrappers.
	Unwrap *UnwrapPlan
	// Info is the analyzed type.
	Info *analyze.TypeInfo
}

// FieldPlan is one registry entry.
type FieldPlan struct {
	// Key is the registry key.
	Key reflection.Key
	// Const is the Go constant holding Key.
	Const string
	// Name is the Go field name; for enums, the payload field name.
	Name string
	// Variant is the enum holder field the payload hangs off.
	Variant string
	// TypeExpr is the field type as written in the package.
	TypeExpr string
	// Deref marks a deref-transparent field.
	Deref bool
	// Pointer marks a pointer-typed field.
	Pointer bool
	// Target is the named type the field holds, looking through one pointer.
	Target analyze.TypeID
	// Inner is the named type a deref hop lands on, if known.
	Inner analyze.TypeID
}

// UnwrapPlan describes where a wrapper forwards to.
type UnwrapPlan struct {
	// Field is the Go field holding the wrapped value.
	Field string
	// Pointer is set when Field already holds a pointer.
	Pointer bool
	// Target is the wrapped named type.
	Target analyze.TypeID
}

// Type returns the plan of the named type.
func (p *Plan) Type(name string) (*TypePlan, bool) {
	for i := range p.Types {
		if p.Types[i].Name == name {
			return &p.Types[i], true
		}
	}

	return nil, false
}

// planned returns the plan for a type of the analyzed package.
func (p *Plan) planned(id analyze.TypeID) (*TypePlan, bool) {
	if id.IsZero() || p.Package == nil || id.PkgPath != p.Package.Path {
		return nil, false
	}

	return p.Type(id.Name)
}

// Keys returns the visible keys in registry order.
func (t *TypePlan) Keys() []reflection.Key {
	keys := make([]reflection.Key, len(t.Fields))
	for i, f := range t.Fields {
		keys[i] = f.Key
	}

	return keys
}

// Field returns the entry for key.
func (t *TypePlan) Field(key reflection.Key) (*FieldPlan, bool) {
	for i := range t.Fields {
		if t.Fields[i].Key == key {
			return &t.Fields[i], true
		}
	}

	return nil, false
}

// IsTransparent reports whether the registry is a transparent wrapper.
func (t *TypePlan) IsTransparent() bool {
	return t.Kind == config.KindWrapper
}
