package plan

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflect-registry/internal/analyze"
	"reflect-registry/internal/config"
	"reflect-registry/reflection"
)

const testPkgPath = "example.com/shapes"

func id(name string) analyze.TypeID {
	return analyze.TypeID{PkgPath: testPkgPath, Name: name}
}

func field(name string, index int, typeExpr, opts string) analyze.FieldInfo {
	fi := analyze.FieldInfo{Name: name, Index: index, TypeExpr: typeExpr}
	if opts != "" {
		fi.Tag = reflect.StructTag(`reflect:"` + opts + `"`)
	}

	return fi
}

// testPackage builds a package by hand, covering shapes the example package
// does not have.
func testPackage() *analyze.Package {
	point := &analyze.TypeInfo{
		ID:   id("Point"),
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			field("x", 0, "int", ""),
			field("y", 1, "int", "name=x"),
		},
	}

	boxPtr := field("inner", 0, "*Point", "deref")
	boxPtr.Pointer, boxPtr.Derefable, boxPtr.Target, boxPtr.Inner = true, true, id("Point"), id("Point")

	box := &analyze.TypeInfo{
		ID:     id("Box"),
		Kind:   analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{boxPtr, field("bad", 1, "int", "deref")},
	}

	notAPointer := field("Plain", 0, "Point", "")
	notAPointer.Target, notAPointer.TargetStruct = id("Point"), true

	foreign := field("Stamp", 1, "*time.Time", "")
	foreign.Pointer, foreign.TargetStruct = true, true
	foreign.Target = analyze.TypeID{PkgPath: "time", Name: "Time"}

	shape := &analyze.TypeInfo{
		ID:     id("Shape"),
		Kind:   analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{notAPointer, foreign},
	}

	return &analyze.Package{
		Path: testPkgPath,
		Name: "shapes",
		Types: map[string]*analyze.TypeInfo{
			"Point":   point,
			"Box":     box,
			"Shape":   shape,
			"Alias":   {ID: id("Alias"), Kind: analyze.TypeKindOther},
			"List":    {ID: id("List"), Kind: analyze.TypeKindStruct, Generic: true},
			"Manual":  {ID: id("Manual"), Kind: analyze.TypeKindStruct, Methods: []string{"FieldByKey"}},
			"Clashes": {ID: id("Clashes"), Kind: analyze.TypeKindStruct, Fields: []analyze.FieldInfo{field("point", 0, "int", "")}},
		},
		Scope: map[string]struct{}{"Point": {}, "Box": {}, "Shape": {}, "ClashesPoint": {}},
	}
}

func buildTypes(types ...config.TypeConfig) *Plan {
	cfg := &config.File{Version: "1", Package: ".", Filename: config.DefaultFilename, Tag: config.DefaultTag, Types: types}

	return Build(cfg, testPackage())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name  string
		types []config.TypeConfig
		codes []string
	}{
		{"unknown type", []config.TypeConfig{{Name: "Pont"}}, []string{"unknown_type"}},
		{"not a struct", []config.TypeConfig{{Name: "Alias"}}, []string{"not_struct"}},
		{"generic", []config.TypeConfig{{Name: "List"}}, []string{"generic_type"}},
		{"hand-written methods", []config.TypeConfig{{Name: "Manual"}}, []string{"methods_declared"}},
		{"duplicate key", []config.TypeConfig{{Name: "Point"}}, []string{"duplicate_key"}},
		{"bad deref", []config.TypeConfig{{Name: "Box"}}, []string{"bad_deref"}},
		{"bad variants", []config.TypeConfig{{Name: "Shape", Kind: config.KindEnum}}, []string{"bad_variant", "foreign_variant"}},
		{"wrapper field", []config.TypeConfig{{Name: "Box", Kind: config.KindWrapper, Unwrap: "iner"}}, []string{"unknown_field"}},
		{"declared constant", []config.TypeConfig{{Name: "Clashes"}}, []string{"name_collision"}},
		{"declared registry", []config.TypeConfig{{Name: "Clashes", Kind: config.KindTuple, Registry: "Point"}}, []string{"name_collision"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := buildTypes(tt.types...)
			assert.Equal(t, tt.codes, p.Diagnostics.Codes())
			assert.Empty(t, p.Types)
		})
	}
}

func TestBuild_Suggestions(t *testing.T) {
	p := buildTypes(config.TypeConfig{Name: "Pont"})
	require.Len(t, p.Diagnostics.Errors, 1)
	assert.Equal(t, []string{"Point"}, p.Diagnostics.Errors[0].Suggestions)

	p = buildTypes(config.TypeConfig{Name: "Box", Kind: config.KindWrapper, Unwrap: "iner"})
	require.Len(t, p.Diagnostics.Errors, 1)
	assert.Equal(t, []string{"inner"}, p.Diagnostics.Errors[0].Suggestions)
}

func TestBuild_Tuple(t *testing.T) {
	// As a tuple, Point's name=x tag is irrelevant.
	p := buildTypes(config.TypeConfig{Name: "Point", Kind: config.KindTuple})
	require.False(t, p.Diagnostics.HasErrors(), "%v", p.Diagnostics.Error())

	tp, ok := p.Type("Point")
	require.True(t, ok)
	assert.Equal(t, []reflection.Key{"0", "1"}, tp.Keys())
	assert.Equal(t, "PointF0", tp.Fields[0].Const)
	assert.Equal(t, "pointRegistry", tp.Registry)
	assert.Equal(t, "p", tp.Receiver)
}

func TestBuild_Wrapper(t *testing.T) {
	p := buildTypes(config.TypeConfig{Name: "Box", Kind: config.KindWrapper, Unwrap: "inner"}, config.TypeConfig{Name: "Point", Kind: config.KindTuple})
	require.False(t, p.Diagnostics.HasErrors(), "%v", p.Diagnostics.Error())

	tp, ok := p.Type("Box")
	require.True(t, ok)
	assert.True(t, tp.IsTransparent())
	assert.Empty(t, tp.Fields)
	assert.Equal(t, &UnwrapPlan{Field: "inner", Pointer: true, Target: id("Point")}, tp.Unwrap)
}

func TestBuild_MissingInput(t *testing.T) {
	assert.Equal(t, []string{"missing_input"}, Build(nil, nil).Diagnostics.Codes())
}

func TestFromConfigFile_Hierarchy(t *testing.T) {
	p := loadHierarchy(t)

	names := make([]string, len(p.Types))
	for i, tp := range p.Types {
		names[i] = tp.Name
	}

	assert.Equal(t, []string{"Struct", "Tuple", "Enum", "X", "B", "Handle", "Meta", "Hierarchy"}, names)
	assert.Equal(t, []Import{{Path: "time", Name: "time"}}, p.Imports)

	tests := []struct {
		typeName string
		keys     []reflection.Key
		hidden   []reflection.Key
	}{
		{"Struct", []reflection.Key{"field"}, []reflection.Key{"hidden"}},
		{"Tuple", []reflection.Key{"0", "1"}, nil},
		{"Enum", []reflection.Key{"Named@field", "Tuple@0"}, nil},
		{"X", []reflection.Key{"container"}, nil},
		{"B", []reflection.Key{"data"}, nil},
		{"Handle", []reflection.Key{}, nil},
		{"Meta", []reflection.Key{"created", "tags", "labels"}, nil},
		{"Hierarchy", []reflection.Key{"s", "t", "e", "x", "b", "h", "meta"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			tp, ok := p.Type(tt.typeName)
			require.True(t, ok)
			assert.Equal(t, tt.keys, tp.Keys())
			assert.Equal(t, tt.hidden, tp.Hidden)
		})
	}

	enum, _ := p.Type("Enum")
	assert.Equal(t, "EnumNamedField", enum.Fields[0].Const)
	assert.Equal(t, "Named", enum.Fields[0].Variant)
	assert.Equal(t, "EnumTupleF0", enum.Fields[1].Const)

	x, _ := p.Type("X")
	assert.True(t, x.Fields[0].Deref)
	assert.Equal(t, "DerefContainer[Struct]", x.Fields[0].TypeExpr)

	handle, _ := p.Type("Handle")
	require.NotNil(t, handle.Unwrap)
	assert.Equal(t, "target", handle.Unwrap.Field)
	assert.True(t, handle.Unwrap.Pointer)

	require.Len(t, p.Paths, len(p.Config.Paths))
	for _, pr := range p.Paths {
		assert.NotNil(t, pr.Field, pr.Check.Path)
		assert.True(t, pr.Verified, pr.Check.Path)
	}
}

func TestFromConfig_PathDiagnosticsOnce(t *testing.T) {
	cfg, err := config.LoadFile("../../examples/hierarchy/reflect.yaml")
	require.NoError(t, err)

	cfg.Paths = append(cfg.Paths, config.PathCheck{Root: "Hierarchy", Path: "s.feild"})

	p, err := FromConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"path_not_found"}, p.Diagnostics.Codes())
	require.Len(t, p.Paths, len(cfg.Paths))
	assert.Nil(t, p.Paths[len(p.Paths)-1].Field)
}

func loadHierarchy(t *testing.T) *Plan {
	t.Helper()

	p, err := FromConfigFile("../../examples/hierarchy/reflect.yaml")
	require.NoError(t, err)
	require.False(t, p.Diagnostics.HasErrors(), "%v", p.Diagnostics.Error())
	assert.Empty(t, p.Diagnostics.Warnings)

	return p
}

func TestFromConfigFile_Missing(t *testing.T) {
	_, err := FromConfigFile("testdata/missing.yaml")
	require.Error(t, err)
}
