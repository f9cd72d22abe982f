package analyze

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// ErrNoModule is returned when no go.mod is found above a directory.
var ErrNoModule = errors.New("go.mod not found")

// Module is a Go module on disk.
type Module struct {
	Path string // Module path from the module directive
	Dir  string // Directory holding go.mod
}

// FindModule walks up from dir to the nearest go.mod and parses it.
func FindModule(dir string) (*Module, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for cur := abs; ; {
		gomod := filepath.Join(cur, "go.mod")

		data, err := os.ReadFile(gomod)
		if err == nil {
			f, err := modfile.ParseLax(gomod, data, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", gomod, err)
			}

			if f.Module == nil {
				return nil, fmt.Errorf("%s has no module directive", gomod)
			}

			return &Module{Path: f.Module.Mod.Path, Dir: cur}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("%w above %s", ErrNoModule, abs)
		}

		cur = parent
	}
}

// ImportPath returns the import path of the package in dir.
func (m *Module) ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	rel, err := filepath.Rel(m.Dir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside module %s", dir, m.Path)
	}

	if rel == "." {
		return m.Path, nil
	}

	return path.Join(m.Path, filepath.ToSlash(rel)), nil
}
