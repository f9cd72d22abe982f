package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedModule

// ErrNoPackage is returned when a pattern matches no package.
var ErrNoPackage = errors.New("no package found")

// ignoredFile is excluded from every build.
var ignoredFile = []byte("//go:build ignore\n\npackage ignore\n")

// generatedMethods are the methods a generated file declares on *T.
var generatedMethods = []string{"FieldByKey", "FieldByKeyMut", "IsTransparent", "Unwrap", "UnwrapMut"}

// Analyzer loads Go packages.
type Analyzer struct {
	// Dir is the working directory of the build tool; empty means the
	// current directory.
	Dir string
	// Tags are extra build tags.
	Tags []string
	// Skip lists file base names excluded from analysis, typically the
	// previously generated file.
	Skip []string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// LoadDir loads the package whose sources are in dir.
func (a *Analyzer) LoadDir(dir string) (*Package, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	cp := *a
	cp.Dir = abs

	return cp.Load(".")
}

// Load loads the single package matched by pattern (e.g. "./examples/hierarchy",
// "reflect-registry/examples/hierarchy").
func (a *Analyzer) Load(pattern string) (*Package, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	if len(a.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(a.Tags, ",")}
	}

	if len(a.Skip) > 0 {
		cfg.Overlay = a.overlay()
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPackage, pattern)
	}

	if len(pkgs) > 1 {
		return nil, fmt.Errorf("pattern %s matches %d packages, want 1", pattern, len(pkgs))
	}

	pkg := pkgs[0]

	// Check for package errors
	var errs []error
	for _, e := range pkg.Errors {
		errs = append(errs, e)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	return a.processPackage(pkg), nil
}

// overlay replaces skipped files with an ignored stub so that stale generated
// code does not clash with the type check.
func (a *Analyzer) overlay() map[string][]byte {
	dir := a.Dir
	if dir == "" {
		dir = "."
	}

	out := make(map[string][]byte, len(a.Skip))
	for _, name := range a.Skip {
		abs, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			continue
		}

		out[abs] = ignoredFile
	}

	return out
}

// processPackage extracts types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) *Package {
	out := &Package{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Types: make(map[string]*TypeInfo),
		Scope: make(map[string]struct{}),
		Files: pkg.GoFiles,
	}

	if len(pkg.GoFiles) > 0 {
		out.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	if pkg.Module != nil {
		out.Module = &Module{Path: pkg.Module.Path, Dir: pkg.Module.Dir}
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		out.Scope[name] = struct{}{}

		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		info := analyzeNamed(pkg.Types, named)
		info.Pos = pkg.Fset.Position(typeName.Pos()).String()
		out.Types[name] = info
	}

	return out
}

// analyzeNamed analyzes a named type declared in pkg.
func analyzeNamed(pkg *types.Package, named *types.Named) *TypeInfo {
	obj := named.Obj()
	info := &TypeInfo{
		ID:      TypeID{PkgPath: pkg.Path(), Name: obj.Name()},
		Kind:    TypeKindOther,
		GoType:  named,
		Generic: named.TypeParams().Len() > 0,
	}

	ptr := types.NewPointer(named)
	info.Derefable = hasAnyMethod(ptr, pkg, "Deref")
	info.MutDerefable = hasAnyMethod(ptr, pkg, "DerefMut")

	for _, m := range generatedMethods {
		obj, _, _ := types.LookupFieldOrMethod(ptr, false, pkg, m)
		if _, ok := obj.(*types.Func); ok {
			info.Methods = append(info.Methods, m)
		}
	}

	if st, ok := named.Underlying().(*types.Struct); ok {
		info.Kind = TypeKindStruct
		info.Fields = analyzeFields(pkg, st)
	}

	return info
}

// analyzeFields extracts every field of a struct type, exported or not.
func analyzeFields(pkg *types.Package, st *types.Struct) []FieldInfo {
	fields := make([]FieldInfo, 0, st.NumFields())

	for i := range st.NumFields() {
		field := st.Field(i)
		imports := map[string]string{}

		fi := FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Embedded: field.Embedded(),
			Index:    i,
			Tag:      reflect.StructTag(st.Tag(i)),
			GoType:   field.Type(),
			TypeExpr: types.TypeString(field.Type(), qualifier(pkg, imports)),
			Imports:  imports,
		}

		describeField(pkg, &fi)
		fields = append(fields, fi)
	}

	return fields
}

// describeField fills in pointer, target and deref information.
func describeField(pkg *types.Package, fi *FieldInfo) {
	t := fi.GoType
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		fi.Pointer = true
		fi.Derefable = true
		t = p.Elem()
		fi.Inner = namedID(t)
	}

	fi.Target = namedID(t)

	if st, ok := t.Underlying().(*types.Struct); ok {
		fi.TargetStruct = true
		fi.EmptyStruct = st.NumFields() == 0 && fi.Target.IsZero()
	}

	if fi.Pointer {
		return
	}

	if hasAnyMethod(types.NewPointer(fi.GoType), pkg, "Deref") {
		fi.Derefable = true

		if st, ok := fi.GoType.Underlying().(*types.Struct); ok && st.NumFields() == 1 {
			fi.Inner = namedID(st.Field(0).Type())
		}
	}
}

// namedID returns the TypeID of a named type, or the zero TypeID.
func namedID(t types.Type) TypeID {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return TypeID{}
	}

	return TypeID{PkgPath: named.Obj().Pkg().Path(), Name: named.Obj().Name()}
}

// hasAnyMethod reports whether t has a method name with signature func() any.
func hasAnyMethod(t types.Type, pkg *types.Package, name string) bool {
	obj, _, _ := types.LookupFieldOrMethod(t, false, pkg, name)

	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}

	iface, ok := sig.Results().At(0).Type().Underlying().(*types.Interface)

	return ok && iface.Empty()
}

// qualifier writes types of pkg unqualified and records every other package used.
func qualifier(pkg *types.Package, imports map[string]string) types.Qualifier {
	return func(p *types.Package) string {
		if p == pkg {
			return ""
		}

		imports[p.Path()] = p.Name()

		return p.Name()
	}
}
