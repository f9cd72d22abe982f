package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

//go:generate go tool stringer -type=ErrorKind -trimprefix=Kind -output=errorkind_string.go

// ErrorKind classifies lookup and resolution failures.
type ErrorKind int

const (
	_ ErrorKind = iota

	KindKeyNotFound   // single-key lookup found no visible field
	KindFieldNotFound // a path segment found no field at its level
	KindTypeMismatch  // the terminal field is not of the requested type
)

var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrFieldNotFound = errors.New("field not found")
	ErrTypeMismatch  = errors.New("type mismatch")
)

// PathError reports a failed lookup or path resolution.
type PathError struct {
	Kind ErrorKind
	// Path is the full path that was being resolved.
	Path string
	// Segment is the key that failed to match, or the terminal key on a type mismatch.
	Segment Key
	// Prefix is the part of Path consumed before Segment.
	Prefix string
	// Want and Got are set for KindTypeMismatch.
	Want, Got reflect.Type
}

// Error returns a human-readable description.
func (e *PathError) Error() string {
	var b strings.Builder

	switch e.Kind {
	case KindTypeMismatch:
		fmt.Fprintf(&b, "%s: %q holds %s, not %s", ErrTypeMismatch, e.Path, typeName(e.Got), typeName(e.Want))
	case KindKeyNotFound:
		fmt.Fprintf(&b, "%s: %q", ErrKeyNotFound, e.Segment)
	default:
		fmt.Fprintf(&b, "%s: no field %q", e.sentinel(), e.Segment)
		if e.Prefix != "" {
			fmt.Fprintf(&b, " after %q", e.Prefix)
		}

		fmt.Fprintf(&b, " in path %q", e.Path)
	}

	return b.String()
}

// Is matches the sentinel error of the same kind.
func (e *PathError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *PathError) sentinel() error {
	switch e.Kind {
	case KindKeyNotFound:
		return ErrKeyNotFound
	case KindTypeMismatch:
		return ErrTypeMismatch
	default:
		return ErrFieldNotFound
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
