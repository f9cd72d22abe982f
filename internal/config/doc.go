// Package config loads generator configuration files.
//
// A config names one Go package and the types in it that should get a field
// registry, together with dotted paths that are checked statically against the
// planned registries:
//
//	version: "1"
//	package: ./examples/hierarchy
//	filename: reflect_gen.go
//	types:
//	  - name: Struct
//	  - name: Tuple
//	    kind: tuple
//	  - name: Enum
//	    kind: enum
//	  - name: Handle
//	    kind: wrapper
//	    unwrap: target
//	paths:
//	  - root: Hierarchy
//	    path: s.field
//	    type: uint
//
// Relative package and output directories are resolved against the directory
// of the config file.
package config
