package reflection

import (
	"strconv"
	"strings"
)

const (
	// PathSeparator joins keys into a path.
	PathSeparator = "."
	// VariantSeparator joins an enum variant name and a field name or position.
	VariantSeparator = "@"
)

// Key names one field of one type, or one field of one enum variant.
type Key string

// TupleKey returns the key of the positional field at index.
func TupleKey(index int) Key {
	return Key(strconv.Itoa(index))
}

// VariantKey returns the key of a named field inside an enum variant.
func VariantKey(variant, field string) Key {
	return Key(variant + VariantSeparator + field)
}

// VariantTupleKey returns the key of a positional field inside an enum variant.
func VariantTupleKey(variant string, index int) Key {
	return VariantKey(variant, strconv.Itoa(index))
}

// Variant splits an enum key into its variant and field parts.
// ok is false for keys without a variant separator.
func (k Key) Variant() (variant, field string, ok bool) {
	return strings.Cut(string(k), VariantSeparator)
}

// Index reports the position encoded in a tuple key, or in the field part
// of a positional enum key.
func (k Key) Index() (int, bool) {
	s := string(k)
	if _, field, ok := k.Variant(); ok {
		s = field
	}

	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}

// String returns the key as a plain string.
func (k Key) String() string {
	return string(k)
}

// SplitPath splits a dotted path into its keys. An empty path yields a single
// empty key, which never matches any registry.
func SplitPath(path string) []Key {
	parts := strings.Split(path, PathSeparator)
	keys := make([]Key, len(parts))

	for i, p := range parts {
		keys[i] = Key(p)
	}

	return keys
}

// JoinPath joins keys into a dotted path.
func JoinPath(keys ...Key) string {
	var b strings.Builder

	for i, k := range keys {
		if i > 0 {
			b.WriteString(PathSeparator)
		}

		b.WriteString(string(k))
	}

	return b.String()
}
