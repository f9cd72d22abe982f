// Package reflection exposes the fields of composite values through string keys
// and dotted paths.
//
// Every participating type owns one Registry, built once at the type's definition
// site, which maps keys to typed accessors. Values of that type implement
// Reflectable by delegating to the registry, either by hand or through code
// emitted by reflectgen. Types that carry no methods can be registered in the
// type index instead (see Register and package derive).
//
// Key naming:
//   - named struct field: the declared field name, e.g. "field"
//   - tuple-style field: its zero-based position, e.g. "0"
//   - enum field: "<Variant>@<field>" or "<Variant>@<position>", e.g. "Named@field"
//
// Paths join keys with ".". A field marked deref-transparent is seen through during
// path resolution: the segment after it is matched against the wrapped value, so
// "container.field" reaches the field of the value held by container.
package reflection
