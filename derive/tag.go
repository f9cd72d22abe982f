package derive

import (
	"reflect"
	"strings"
)

// TagKey is the struct tag key read by Registry and by reflectgen.
const TagKey = "reflect"

// Tag is the parsed form of a `reflect` struct tag.
type Tag struct {
	Name   string
	Hidden bool
	Deref  bool
	Tuple  bool
	// Unknown lists options that were not recognised.
	Unknown []string
}

// ParseTag parses the `reflect` tag of a struct field.
func ParseTag(tag reflect.StructTag) Tag {
	return ParseTagKey(tag, TagKey)
}

// ParseTagKey parses the tag stored under key.
func ParseTagKey(tag reflect.StructTag, key string) Tag {
	var t Tag

	value, ok := tag.Lookup(key)
	if !ok {
		return t
	}

	for opt := range strings.SplitSeq(value, ",") {
		opt = strings.TrimSpace(opt)

		switch {
		case opt == "":
		case opt == "-" || opt == "hidden":
			t.Hidden = true
		case opt == "deref":
			t.Deref = true
		case opt == "tuple":
			t.Tuple = true
		case strings.HasPrefix(opt, "name="):
			t.Name = strings.TrimPrefix(opt, "name=")
		default:
			t.Unknown = append(t.Unknown, opt)
		}
	}

	return t
}

// KeyName returns the tag name if set, otherwise fallback.
func (t Tag) KeyName(fallback string) string {
	if t.Name != "" {
		return t.Name
	}

	return fallback
}
