package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the shape of a reflected type.
type Kind int

const (
	KindStruct  Kind = iota // struct
	KindTuple               // tuple
	KindEnum                // enum
	KindWrapper             // wrapper
)

// ParseKind parses the YAML spelling of a kind. The empty string is a struct.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "struct":
		return KindStruct, nil
	case "tuple":
		return KindTuple, nil
	case "enum":
		return KindEnum, nil
	case "wrapper":
		return KindWrapper, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	kind, err := ParseKind(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*k = kind

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}
