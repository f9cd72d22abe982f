package plan

import (
	"strconv"
	"strings"
	"unicode"

	"reflect-registry/internal/match"
	"reflect-registry/reflection"
)

// ConstName returns the Go constant for key in the registry of typeName:
// the type name followed by the CamelCased key. Positional parts N become FN,
// so Struct's "field" is StructField, Tuple's "0" is TupleF0 and Enum's
// "Named@field" is EnumNamedField.
func ConstName(typeName string, key reflection.Key) string {
	if variant, field, ok := key.Variant(); ok {
		return typeName + match.Camel(variant) + constPart(field)
	}

	return typeName + constPart(string(key))
}

func constPart(s string) string {
	if _, err := strconv.Atoi(s); err == nil {
		return "F" + s
	}

	return match.Camel(s)
}

// RegistryName returns the default registry variable for typeName.
func RegistryName(typeName string) string {
	return lowerFirst(typeName) + "Registry"
}

// ReceiverName returns the receiver name used in generated methods.
func ReceiverName(typeName string) string {
	for _, r := range typeName {
		return string(unicode.ToLower(r))
	}

	return "v"
}

func lowerFirst(s string) string {
	// Leading acronyms are lowered as a whole: URLSet becomes urlSet.
	runes := []rune(s)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	if n > 1 && n < len(runes) {
		n--
	}

	return strings.ToLower(string(runes[:n])) + string(runes[n:])
}
