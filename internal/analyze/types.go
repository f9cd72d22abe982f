package analyze

import (
	"go/types"
	"reflect"

	"reflect-registry/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "reflect-registry/examples/hierarchy"
	Name    string // e.g., "Struct"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// IsZero reports whether the TypeID names nothing.
func (t TypeID) IsZero() bool {
	return t.Name == ""
}

// TypeKind represents the kind of a named type.
type TypeKind int

const (
	TypeKindUnknown TypeKind = iota
	TypeKindStruct           // struct type
	TypeKindOther            // any other named type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindStruct:
		return "struct"
	case TypeKindOther:
		return "other"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a named type of the loaded package.
type TypeInfo struct {
	ID     TypeID
	Kind   TypeKind
	Fields []FieldInfo // For structs, all fields in declaration order
	GoType types.Type  // The original go/types.Type
	// Generic is set for types with type parameters.
	Generic bool
	// Derefable is set when *T has a Deref() any method.
	Derefable bool
	// MutDerefable is set when *T has a DerefMut() any method.
	MutDerefable bool
	// Methods lists methods of *T that a generated file would redeclare.
	Methods []string
	// Pos is the declaration position, "file:line".
	Pos string
}

// Field returns the field with the given name.
func (t *TypeInfo) Field(name string) (*FieldInfo, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}

	return nil, false
}

// Reflectable reports whether *T declares every method a generated file
// would, that is, it is reflectable without generation.
func (t *TypeInfo) Reflectable() bool {
	return len(t.Methods) == len(generatedMethods)
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
	Tag      reflect.StructTag // Raw struct tag
	GoType   types.Type        // Field type
	// TypeExpr is the field type as written inside the loaded package.
	TypeExpr string
	// Imports maps import paths used by TypeExpr to package names.
	Imports map[string]string
	// Pointer is set when the field type is a pointer.
	Pointer bool
	// Target is the named type the field holds, looking through one pointer.
	Target TypeID
	// TargetStruct is set when Target (or the unnamed pointee) is a struct.
	TargetStruct bool
	// EmptyStruct is set for struct{} and *struct{} fields.
	EmptyStruct bool
	// Derefable is set when the field may carry a deref option: it is a
	// pointer, or *F has a Deref() any method.
	Derefable bool
	// Inner is the named type a deref hop lands on, when it can be told
	// statically: the pointee of a pointer, or the only field of a
	// single-field container.
	Inner TypeID
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// Package holds the named types of one loaded package.
type Package struct {
	Path string // Import path
	Name string // Package name
	Dir  string // Directory of the package sources
	// Module is the module the package belongs to, if any.
	Module *Module
	// Types maps type names to their info.
	Types map[string]*TypeInfo
	// Scope lists every package-level identifier.
	Scope map[string]struct{}
	// Files lists the Go files of the package.
	Files []string
}

// GetType returns the TypeInfo for a type name, or nil if not found.
func (p *Package) GetType(name string) *TypeInfo {
	return p.Types[name]
}

// Declared reports whether name is declared at package level.
func (p *Package) Declared(name string) bool {
	_, ok := p.Scope[name]
	return ok
}
