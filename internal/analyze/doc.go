// Package analyze provides package loading and struct extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to build the model the
// planner works from:
//   - TypeID: package import path + type name
//   - TypeInfo: a named type, its fields and whether *T already has methods
//     the generator would emit, or a Deref method
//   - FieldInfo: field name, index, tag, type expression relative to the
//     loaded package, and what the field points or dereferences to
//
// Module lookup reads go.mod with golang.org/x/mod/modfile.
package analyze
