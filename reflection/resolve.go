package reflection

import "reflect"

// MaxUnwrapDepth bounds the number of transparent wrappers crossed before a
// single path segment. Wrapper chains deeper than this fail as FieldNotFound.
const MaxUnwrapDepth = 32

// ResolvePath walks path from root and returns the terminal field as a T.
// The result is a copy; Resolve and ResolvePathMut hand back the field itself.
func ResolvePath[T any](root Reflectable, path string) (T, error) {
	var zero T

	p, err := resolveAs[T](root, path, false)
	if err != nil {
		return zero, err
	}

	return *p, nil
}

// ResolvePathMut walks path from root and returns a pointer to the terminal
// field. Writes through it modify root. Nothing is written on failure.
func ResolvePathMut[T any](root Reflectable, path string) (*T, error) {
	return resolveAs[T](root, path, true)
}

// Resolve walks path from root and returns the terminal field untyped.
func Resolve(root Reflectable, path string) (Value, error) {
	return walk(root, path, false)
}

// ResolveMut is Resolve for write access.
func ResolveMut(root Reflectable, path string) (Value, error) {
	return walk(root, path, true)
}

func resolveAs[T any](root Reflectable, path string, mut bool) (*T, error) {
	v, err := walk(root, path, mut)
	if err != nil {
		return nil, err
	}

	p, ok := Cast[T](v)
	if !ok {
		keys := SplitPath(path)

		return nil, &PathError{
			Kind:    KindTypeMismatch,
			Path:    path,
			Segment: keys[len(keys)-1],
			Prefix:  JoinPath(keys[:len(keys)-1]...),
			Want:    reflect.TypeFor[T](),
			Got:     v.Type(),
		}
	}

	return p, nil
}

// walk matches the keys of path left to right. Before each key the current
// value is unwrapped for as long as it is a transparent wrapper; the field a
// key reaches is only unwrapped when another key follows it.
func walk(root Reflectable, path string, mut bool) (Value, error) {
	keys := SplitPath(path)
	cur := root

	for i, key := range keys {
		notFound := func() error {
			return &PathError{
				Kind:    KindFieldNotFound,
				Path:    path,
				Segment: key,
				Prefix:  JoinPath(keys[:i]...),
			}
		}

		cur = unwrapAll(cur, mut)
		if cur == nil {
			return Value{}, notFound()
		}

		var (
			v  Value
			ok bool
		)

		if mut {
			v, ok = cur.FieldByKeyMut(key)
		} else {
			v, ok = cur.FieldByKey(key)
		}

		if !ok {
			return Value{}, notFound()
		}

		if i == len(keys)-1 {
			return v, nil
		}

		next, ok := v.reflectable()
		if !ok {
			// The field holds no reflectable value, so the next key has
			// nothing to match against.
			cur = nil
			continue
		}

		cur = next
	}

	// unreachable: SplitPath always yields at least one key
	return Value{}, &PathError{Kind: KindFieldNotFound, Path: path}
}

func unwrapAll(r Reflectable, mut bool) Reflectable {
	for depth := 0; r != nil && r.IsTransparent(); depth++ {
		if depth == MaxUnwrapDepth {
			return nil
		}

		if mut {
			r = r.UnwrapMut()
		} else {
			r = r.Unwrap()
		}
	}

	return r
}
