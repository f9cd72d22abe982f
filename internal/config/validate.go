package config

import (
	"fmt"
	"go/token"
	"path/filepath"

	"reflect-registry/internal/diagnostic"
)

// Validate checks the config on its own, without loading the package.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("config_is_nil", "config is nil", "", "")
		return res
	}

	if f.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", f.Version), "", "")
	}

	if f.Package == "" {
		res.AddError("missing_package", "package is required", "", "")
	}

	if filepath.Ext(f.Filename) != ".go" || filepath.Base(f.Filename) != f.Filename {
		res.AddError("invalid_filename", fmt.Sprintf("filename %q must be a plain .go file name", f.Filename), "", "")
	}

	if len(f.Types) == 0 {
		res.AddWarning("no_types", "no types configured", "", "")
	}

	seen := map[string]struct{}{}
	registries := map[string]string{}

	for i := range f.Types {
		validateType(res, &f.Types[i], seen, registries)
	}

	for _, p := range f.Paths {
		if p.Root == "" || p.Path == "" {
			res.AddError("invalid_path", "path check needs both root and path", p.Root, p.Path)
			continue
		}

		if _, ok := seen[p.Root]; !ok {
			res.AddError("unknown_root", fmt.Sprintf("root type %q is not configured", p.Root), p.Root, p.Path)
		}
	}

	return res
}

func validateType(res *diagnostic.Diagnostics, tc *TypeConfig, seen map[string]struct{}, registries map[string]string) {
	if !token.IsIdentifier(tc.Name) {
		res.AddError("invalid_type_name", fmt.Sprintf("%q is not a Go identifier", tc.Name), tc.Name, "")
		return
	}

	if _, ok := seen[tc.Name]; ok {
		res.AddError("duplicate_type", fmt.Sprintf("type %q configured twice", tc.Name), tc.Name, "")
		return
	}

	seen[tc.Name] = struct{}{}

	switch {
	case tc.Kind == KindWrapper && tc.Unwrap == "":
		res.AddError("missing_unwrap", "wrapper needs an unwrap field", tc.Name, "")
	case tc.Kind != KindWrapper && tc.Unwrap != "":
		res.AddWarning("unused_unwrap", fmt.Sprintf("unwrap is ignored for kind %s", tc.Kind), tc.Name, tc.Unwrap)
	}

	if tc.Registry == "" {
		return
	}

	if !token.IsIdentifier(tc.Registry) {
		res.AddError("invalid_registry_name", fmt.Sprintf("%q is not a Go identifier", tc.Registry), tc.Name, "")
		return
	}

	if other, ok := registries[tc.Registry]; ok {
		res.AddError("duplicate_registry", fmt.Sprintf("registry %q already used by %s", tc.Registry, other), tc.Name, "")
		return
	}

	registries[tc.Registry] = tc.Name
}
