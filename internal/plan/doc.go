// Package plan turns a generator config and an analyzed package into the
// registry plan consumed by code generation.
//
// Planning pipeline:
//  1. Load YAML config → validate
//  2. Analyze the package, skipping the previously generated file
//  3. For each configured type:
//     - Check it is a non-generic struct without hand-written Reflectable methods
//     - Derive keys from the kind, field names and `reflect` tags
//     - Name a Go constant per key and check it is free
//  4. Check configured paths against the planned registries
//  5. Emit diagnostics (unknown names with suggestions, bad variants, bad deref fields)
package plan
