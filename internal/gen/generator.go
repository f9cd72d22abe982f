package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"reflect-registry/internal/plan"
)

// Header is the first line of every generated file.
const Header = "Code generated by reflectgen. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Header overrides the generated-code comment line.
	Header string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Header:           Header,
		GenerateComments: true,
	}
}

// Generator generates Go code from a registry plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Header == "" {
		config.Header = Header
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "reflect_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the full path of the file.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate generates the registry file for p. A plan with errors is refused.
func (g *Generator) Generate(p *plan.Plan) (*GeneratedFile, error) {
	if p == nil || p.Package == nil || p.Config == nil {
		return nil, fmt.Errorf("generating: incomplete plan")
	}

	if err := p.Diagnostics.Error(); err != nil {
		return nil, fmt.Errorf("generating %s: %w", p.Package.Path, err)
	}

	data := g.buildTemplateData(p)

	var buf bytes.Buffer
	if err := registryTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{
		Dir:      p.Config.OutputDir(),
		Filename: p.Config.Filename,
		Content:  buf.Bytes(),
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// The unformatted code is returned for debugging.
		return file, fmt.Errorf("formatting %s: %w", file.Filename, err)
	}

	file.Content = formatted

	return file, nil
}

// buildTemplateData constructs the template data from a plan.
func (g *Generator) buildTemplateData(p *plan.Plan) *templateData {
	data := &templateData{
		Header:      g.config.Header,
		PackageName: p.Package.Name,
		Comments:    g.config.GenerateComments,
	}

	var modulePath string
	if p.Package.Module != nil {
		modulePath = p.Package.Module.Path
	}

	for _, imp := range p.Imports {
		spec := importSpec{Path: imp.Path}
		if path.Base(imp.Path) != imp.Name {
			spec.Alias = imp.Name
		}

		if isStdLib(imp.Path, modulePath) {
			data.StdImports = append(data.StdImports, spec)
		} else {
			data.Imports = append(data.Imports, spec)
		}
	}

	data.Imports = append(data.Imports, importSpec{Path: plan.ReflectionPath})

	for i := range p.Types {
		data.Types = append(data.Types, buildTypeData(&p.Types[i]))
	}

	return data
}

func buildTypeData(tp *plan.TypePlan) typeData {
	td := typeData{
		Name:     tp.Name,
		Registry: tp.Registry,
		Receiver: tp.Receiver,
	}

	if tp.Unwrap != nil {
		td.Unwrap = tp.Receiver + "." + tp.Unwrap.Field
		if !tp.Unwrap.Pointer {
			td.Unwrap = "&" + td.Unwrap
		}

		return td
	}

	for _, f := range tp.Fields {
		td.Consts = append(td.Consts, constData{Name: f.Const, Key: strconv.Quote(string(f.Key))})

		entry := entryData{
			Const:    f.Const,
			TypeExpr: f.TypeExpr,
			Expr:     f.Name,
		}

		if f.Variant != "" {
			entry.Variant = f.Variant
			entry.Expr = f.Variant + "." + f.Name
		}

		if f.Deref {
			entry.Opts = ", reflection.Deref()"
		}

		td.Entries = append(td.Entries, entry)
	}

	return td
}

// isStdLib reports whether an import path belongs to the standard library:
// its first element has no dot and it is not inside the current module.
func isStdLib(importPath, modulePath string) bool {
	if modulePath != "" && (importPath == modulePath || strings.HasPrefix(importPath, modulePath+"/")) {
		return false
	}

	first, _, _ := strings.Cut(importPath, "/")

	return !strings.Contains(first, ".")
}
