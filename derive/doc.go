// Package derive builds reflection registries from struct declarations at run
// time, for types that have no hand-written or generated registry.
//
// Fields are described with the `reflect` struct tag:
//
//	hidden      the field is left out of the registry
//	-           same as hidden
//	deref       the field is deref-transparent
//	tuple       on an enum variant field: the payload uses positional keys
//	name=<key>  register the field (or variant) under key instead of its Go name
//
// Field access goes through github.com/viant/xunsafe, so unexported fields are
// reflected exactly like exported ones.
package derive
