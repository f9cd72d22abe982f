package config

import "path/filepath"

// DefaultFilename is the generated file name when none is configured.
const DefaultFilename = "reflect_gen.go"

// DefaultTag is the struct tag key read for field options.
const DefaultTag = "reflect"

// File is the root of a generator config.
type File struct {
	// Version is the schema version; "1" is the only one.
	Version string `yaml:"version"`
	// Package is the directory of the package whose types are reflected.
	Package string `yaml:"package"`
	// Output overrides the directory the generated file is written to.
	Output string `yaml:"output,omitempty"`
	// Filename is the generated file name.
	Filename string `yaml:"filename,omitempty"`
	// Tag is the struct tag key holding field options.
	Tag string `yaml:"tag,omitempty"`
	// Types lists the types to generate registries for, in output order.
	Types []TypeConfig `yaml:"types"`
	// Paths are checked against the planned registries.
	Paths []PathCheck `yaml:"paths,omitempty"`

	// BaseDir is the directory relative paths are resolved against.
	BaseDir string `yaml:"-"`
}

// TypeConfig selects one type.
type TypeConfig struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind,omitempty"`
	// Unwrap names the field a wrapper forwards to.
	Unwrap string `yaml:"unwrap,omitempty"`
	// Registry overrides the generated registry variable name.
	Registry string `yaml:"registry,omitempty"`
}

// PathCheck is a path expected to resolve from Root.
type PathCheck struct {
	Root string `yaml:"root"`
	Path string `yaml:"path"`
	// Type, when set, is the expected Go type of the terminal field.
	Type string `yaml:"type,omitempty"`
}

// PackageDir returns the package directory.
func (f *File) PackageDir() string {
	return f.resolve(f.Package)
}

// OutputDir returns the directory the generated file goes to.
func (f *File) OutputDir() string {
	if f.Output == "" {
		return f.PackageDir()
	}

	return f.resolve(f.Output)
}

// OutputPath returns the full path of the generated file.
func (f *File) OutputPath() string {
	return filepath.Join(f.OutputDir(), f.Filename)
}

// Type returns the config of the named type.
func (f *File) Type(name string) (*TypeConfig, bool) {
	for i := range f.Types {
		if f.Types[i].Name == name {
			return &f.Types[i], true
		}
	}

	return nil, false
}

func (f *File) resolve(p string) string {
	if p == "" {
		p = "."
	}

	if filepath.IsAbs(p) || f.BaseDir == "" {
		return filepath.Clean(p)
	}

	return filepath.Join(f.BaseDir, p)
}
