package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hierarchyPkg = "reflect-registry/examples/hierarchy"

func loadHierarchy(t *testing.T) *Package {
	t.Helper()

	analyzer := NewAnalyzer()
	analyzer.Skip = []string{"reflect_gen.go"}

	pkg, err := analyzer.LoadDir("../../examples/hierarchy")
	require.NoError(t, err)

	return pkg
}

func TestAnalyzer_Load(t *testing.T) {
	pkg, err := NewAnalyzer().Load(hierarchyPkg)
	require.NoError(t, err)

	assert.Equal(t, hierarchyPkg, pkg.Path)
	assert.Equal(t, "hierarchy", pkg.Name)
	require.NotNil(t, pkg.Module)
	assert.Equal(t, "reflect-registry", pkg.Module.Path)

	for _, name := range []string{"Struct", "Tuple", "Enum", "X", "B", "Handle", "Hierarchy", "DerefContainer"} {
		assert.Contains(t, pkg.Types, name)
	}

	// The generated file is part of the package unless skipped.
	assert.ElementsMatch(t, generatedMethods, pkg.GetType("Struct").Methods)
	assert.True(t, pkg.Declared("StructField"))
}

func TestAnalyzer_SkipGenerated(t *testing.T) {
	pkg := loadHierarchy(t)

	assert.Empty(t, pkg.GetType("Struct").Methods)
	assert.False(t, pkg.Declared("StructField"))
	assert.True(t, pkg.Declared("Struct"))

	for _, f := range pkg.Files {
		assert.NotEqual(t, "reflect_gen.go", filepath.Base(f))
	}
}

func TestAnalyzer_StructFields(t *testing.T) {
	pkg := loadHierarchy(t)

	st := pkg.GetType("Struct")
	require.NotNil(t, st)
	assert.Equal(t, TypeKindStruct, st.Kind)
	require.Len(t, st.Fields, 2)

	field := st.Fields[0]
	assert.Equal(t, "field", field.Name)
	assert.False(t, field.Exported)
	assert.Equal(t, 0, field.Index)
	assert.Equal(t, "uint", field.TypeExpr)
	assert.False(t, field.Pointer)
	assert.True(t, field.Target.IsZero())

	hidden := st.Fields[1]
	assert.Equal(t, "hidden", hidden.GetTag("reflect"))
	assert.Equal(t, 1, hidden.Index)
}

func TestAnalyzer_EnumHolder(t *testing.T) {
	pkg := loadHierarchy(t)

	enum := pkg.GetType("Enum")
	require.NotNil(t, enum)

	named, ok := enum.Field("Named")
	require.True(t, ok)
	assert.True(t, named.Pointer)
	assert.True(t, named.TargetStruct)
	assert.Equal(t, "EnumNamed", named.Target.Name)
	assert.Equal(t, "*EnumNamed", named.TypeExpr)

	unit, ok := enum.Field("Unit")
	require.True(t, ok)
	assert.True(t, unit.EmptyStruct)
	assert.Equal(t, "*struct{}", unit.TypeExpr)

	tuple, ok := enum.Field("Tuple")
	require.True(t, ok)
	assert.Equal(t, "tuple", tuple.GetTag("reflect"))
}

func TestAnalyzer_Deref(t *testing.T) {
	pkg := loadHierarchy(t)

	container := pkg.GetType("DerefContainer")
	require.NotNil(t, container)
	assert.True(t, container.Generic)
	assert.True(t, container.Derefable)
	assert.False(t, container.MutDerefable)

	x := pkg.GetType("X")
	require.NotNil(t, x)

	f, ok := x.Field("container")
	require.True(t, ok)
	assert.True(t, f.Derefable)
	assert.False(t, f.Pointer)
	assert.Equal(t, "DerefContainer[Struct]", f.TypeExpr)
	assert.Equal(t, "Struct", f.Inner.Name)
	assert.Equal(t, "DerefContainer", f.Target.Name)

	b := pkg.GetType("B")
	require.NotNil(t, b)

	data, ok := b.Field("data")
	require.True(t, ok)
	assert.True(t, data.Derefable)
	assert.True(t, data.Pointer)
	assert.Equal(t, "Struct", data.Inner.Name)

	h := pkg.GetType("Hierarchy")
	require.NotNil(t, h)

	s, ok := h.Field("s")
	require.True(t, ok)
	assert.False(t, s.Derefable)
	assert.True(t, s.Inner.IsZero())
}

func TestAnalyzer_Imports(t *testing.T) {
	pkg := loadHierarchy(t)

	meta := pkg.GetType("Meta")
	require.NotNil(t, meta)

	f, ok := meta.Field("created")
	require.True(t, ok)
	assert.Equal(t, "time.Time", f.TypeExpr)
	assert.Equal(t, map[string]string{"time": "time"}, f.Imports)
}

func TestAnalyzer_LoadMissing(t *testing.T) {
	_, err := NewAnalyzer().Load("reflect-registry/does/not/exist")
	require.Error(t, err)
}

func TestFindModule(t *testing.T) {
	mod, err := FindModule(".")
	require.NoError(t, err)
	assert.Equal(t, "reflect-registry", mod.Path)

	path, err := mod.ImportPath("../../examples/hierarchy")
	require.NoError(t, err)
	assert.Equal(t, hierarchyPkg, path)

	path, err = mod.ImportPath(mod.Dir)
	require.NoError(t, err)
	assert.Equal(t, "reflect-registry", path)

	_, err = mod.ImportPath(filepath.Dir(mod.Dir))
	require.Error(t, err)
}

func TestFindModule_Temp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/tmp\n\ngo 1.24\n"), 0o644))
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	mod, err := FindModule(sub)
	require.NoError(t, err)
	assert.Equal(t, "example.com/tmp", mod.Path)

	path, err := mod.ImportPath(sub)
	require.NoError(t, err)
	assert.Equal(t, "example.com/tmp/a/b", path)
}
