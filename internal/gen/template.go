package gen

import "text/template"

// templateData holds all data needed for the registry template.
type templateData struct {
	Header      string
	PackageName string
	StdImports  []importSpec
	Imports     []importSpec
	Types       []typeData
	Comments    bool
}

// importSpec is one import line; Alias is set when the package name differs
// from the last path element.
type importSpec struct {
	Alias string
	Path  string
}

type typeData struct {
	Name     string
	Registry string
	Receiver string
	Consts   []constData
	Entries  []entryData
	// Unwrap is the expression a wrapper forwards to; empty for other types.
	Unwrap string
}

type constData struct {
	Name string
	Key  string // quoted
}

type entryData struct {
	Const    string
	TypeExpr string
	// Variant is the enum holder field checked for nil.
	Variant string
	// Expr is the field selector below the receiver, e.g. "field" or "Named.field".
	Expr string
	Opts string
}

var registryTemplate = template.Must(template.New("registry").Parse(`// {{.Header}}

package {{.PackageName}}

import (
{{range .StdImports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}{{if .StdImports}}
{{end}}{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{range .Types}}{{$t := .}}
{{if .Consts}}{{if $.Comments}}// Field keys of {{.Name}}.
{{end}}const (
{{range .Consts}}	{{.Name}} reflection.Key = {{.Key}}
{{end}})

{{end}}{{if .Unwrap}}var {{.Registry}} = reflection.NewTransparentRegistry[{{.Name}}]({{printf "%q" .Name}},
	func({{.Receiver}} *{{.Name}}) any { return {{.Unwrap}} }, nil)
{{else}}var {{.Registry}} = reflection.MustRegistry[{{.Name}}]({{printf "%q" .Name}},
{{range .Entries}}{{if .Variant}}	reflection.Field({{.Const}}, func({{$t.Receiver}} *{{$t.Name}}) *{{.TypeExpr}} {
		if {{$t.Receiver}}.{{.Variant}} == nil {
			return nil
		}
		return &{{$t.Receiver}}.{{.Expr}}
	}{{.Opts}}),
{{else}}	reflection.Field({{.Const}}, func({{$t.Receiver}} *{{$t.Name}}) *{{.TypeExpr}} { return &{{$t.Receiver}}.{{.Expr}} }{{.Opts}}),
{{end}}{{end}})
{{end}}
{{if $.Comments}}// FieldByKey implements reflection.Reflectable.
{{end}}func ({{.Receiver}} *{{.Name}}) FieldByKey(key reflection.Key) (reflection.Value, bool) {
	return {{.Registry}}.Field({{.Receiver}}, key)
}

{{if $.Comments}}// FieldByKeyMut implements reflection.Reflectable.
{{end}}func ({{.Receiver}} *{{.Name}}) FieldByKeyMut(key reflection.Key) (reflection.Value, bool) {
	return {{.Registry}}.FieldMut({{.Receiver}}, key)
}

{{if $.Comments}}// IsTransparent implements reflection.Reflectable.
{{end}}func ({{.Receiver}} *{{.Name}}) IsTransparent() bool {
	return {{.Registry}}.IsTransparent()
}

{{if $.Comments}}// Unwrap implements reflection.Reflectable.
{{end}}func ({{.Receiver}} *{{.Name}}) Unwrap() reflection.Reflectable {
	return {{.Registry}}.Unwrap({{.Receiver}})
}

{{if $.Comments}}// UnwrapMut implements reflection.Reflectable.
{{end}}func ({{.Receiver}} *{{.Name}}) UnwrapMut() reflection.Reflectable {
	return {{.Registry}}.UnwrapMut({{.Receiver}})
}
{{end}}`))
