// Package gen provides deterministic Go code generation for field registries.
//
// Generation approach uses text/template + go/format. One file is produced per
// config and holds, for every planned type:
//   - a const block with one reflection.Key per visible field
//   - the registry variable (reflection.MustRegistry, or
//     reflection.NewTransparentRegistry for wrappers)
//   - the five reflection.Reflectable methods on the pointer type
package gen
