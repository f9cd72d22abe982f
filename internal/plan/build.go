package plan

import (
	"fmt"
	"go/token"
	"maps"
	"slices"
	"sort"
	"strings"

	"reflect-registry/derive"
	"reflect-registry/internal/analyze"
	"reflect-registry/internal/config"
	"reflect-registry/internal/diagnostic"
	"reflect-registry/internal/match"
	"reflect-registry/reflection"
)

// maxSuggestions caps "did you mean" lists.
const maxSuggestions = 3

// Build plans the registries of every type in cfg against pkg.
// Problems are reported in Plan.Diagnostics; types with errors are left out.
func Build(cfg *config.File, pkg *analyze.Package) *Plan {
	p := &Plan{Config: cfg, Package: pkg}
	if cfg == nil || pkg == nil {
		p.Diagnostics.AddError("missing_input", "config and package are required", "", "")
		return p
	}

	b := &builder{plan: p, tag: cfg.Tag, consts: map[string]string{}}
	if b.tag == "" {
		b.tag = config.DefaultTag
	}

	for i := range cfg.Types {
		tp, ok := b.typePlan(&cfg.Types[i])
		if ok {
			p.Types = append(p.Types, tp)
		}
	}

	b.collectImports()

	return p
}

type builder struct {
	plan *Plan
	tag  string
	// consts maps generated identifiers to the type that owns them.
	consts map[string]string
}

func (b *builder) diags() *diagnostic.Diagnostics {
	return &b.plan.Diagnostics
}

func (b *builder) typePlan(tc *config.TypeConfig) (TypePlan, bool) {
	pkg := b.plan.Package

	info := pkg.GetType(tc.Name)
	if info == nil {
		b.diags().AddError("unknown_type",
			fmt.Sprintf("type %s not found in package %s", tc.Name, pkg.Path),
			tc.Name, "", match.Suggest(tc.Name, slices.Sorted(maps.Keys(pkg.Types)), maxSuggestions)...)

		return TypePlan{}, false
	}

	if info.Kind != analyze.TypeKindStruct {
		b.diags().AddError("not_struct", fmt.Sprintf("type %s is not a struct", tc.Name), tc.Name, "")
		return TypePlan{}, false
	}

	if info.Generic {
		b.diags().AddError("generic_type", fmt.Sprintf("generic type %s cannot get a generated registry", tc.Name), tc.Name, "")
		return TypePlan{}, false
	}

	if len(info.Methods) > 0 {
		b.diags().AddError("methods_declared",
			fmt.Sprintf("*%s already declares %s", tc.Name, strings.Join(info.Methods, ", ")), tc.Name, "")

		return TypePlan{}, false
	}

	tp := TypePlan{
		Name:     tc.Name,
		Kind:     tc.Kind,
		Registry: tc.Registry,
		Receiver: ReceiverName(tc.Name),
		Info:     info,
	}

	if tp.Registry == "" {
		tp.Registry = RegistryName(tc.Name)
	}

	errs := len(b.diags().Errors)

	switch tc.Kind {
	case config.KindWrapper:
		b.planUnwrap(&tp, tc.Unwrap)
	case config.KindEnum:
		b.planEnum(&tp)
	default:
		b.planStruct(&tp, tc.Kind == config.KindTuple)
	}

	b.claim(tp.Name, tp.Registry, "")

	for _, f := range tp.Fields {
		b.claim(tp.Name, f.Const, string(f.Key))
	}

	return tp, len(b.diags().Errors) == errs
}

// claim reserves a generated package-level identifier.
func (b *builder) claim(typeName, ident, key string) {
	switch {
	case !token.IsIdentifier(ident):
		b.diags().AddError("invalid_const", fmt.Sprintf("key %q gives invalid identifier %q", key, ident), typeName, key)
	case b.plan.Package.Declared(ident):
		b.diags().AddError("name_collision", fmt.Sprintf("%s is already declared in package %s", ident, b.plan.Package.Name), typeName, key)
	case b.consts[ident] != "":
		b.diags().AddError("name_collision", fmt.Sprintf("%s is also generated for %s", ident, b.consts[ident]), typeName, key)
	default:
		b.consts[ident] = typeName
	}
}

func (b *builder) planStruct(tp *TypePlan, tuple bool) {
	seen := map[reflection.Key]struct{}{}

	for i := range tp.Info.Fields {
		fi := &tp.Info.Fields[i]
		if fi.Name == "_" {
			continue
		}

		tag := derive.ParseTagKey(fi.Tag, b.tag)
		b.unknownOptions(tp.Name, fi.Name, tag)

		key := reflection.Key(tag.KeyName(fi.Name))
		if tuple {
			key = reflection.TupleKey(fi.Index)
		}

		if tag.Hidden {
			tp.Hidden = append(tp.Hidden, key)
			continue
		}

		if !b.validKey(tp.Name, key, seen) {
			continue
		}

		fp, ok := b.fieldPlan(tp.Name, key, fi, tag)
		if ok {
			tp.Fields = append(tp.Fields, fp)
		}
	}
}

func (b *builder) planEnum(tp *TypePlan) {
	seen := map[reflection.Key]struct{}{}

	for i := range tp.Info.Fields {
		vf := &tp.Info.Fields[i]
		if vf.Name == "_" {
			continue
		}

		tag := derive.ParseTagKey(vf.Tag, b.tag)
		b.unknownOptions(tp.Name, vf.Name, tag)

		if tag.Hidden {
			continue
		}

		if !vf.Pointer || !vf.TargetStruct {
			b.diags().AddError("bad_variant",
				fmt.Sprintf("variant %s must be a pointer to a struct, not %s", vf.Name, vf.TypeExpr), tp.Name, vf.Name)

			continue
		}

		if vf.EmptyStruct {
			continue
		}

		payload := b.plan.Package.GetType(vf.Target.Name)
		if vf.Target.PkgPath != b.plan.Package.Path || payload == nil {
			b.diags().AddError("foreign_variant",
				fmt.Sprintf("variant %s payload %s must be declared in package %s", vf.Name, vf.TypeExpr, b.plan.Package.Name),
				tp.Name, vf.Name)

			continue
		}

		variant := tag.KeyName(vf.Name)

		for j := range payload.Fields {
			pf := &payload.Fields[j]
			if pf.Name == "_" {
				continue
			}

			ptag := derive.ParseTagKey(pf.Tag, b.tag)
			key := reflection.VariantKey(variant, ptag.KeyName(pf.Name))
			if tag.Tuple {
				key = reflection.VariantTupleKey(variant, pf.Index)
			}

			if ptag.Hidden {
				tp.Hidden = append(tp.Hidden, key)
				continue
			}

			if !b.validKey(tp.Name, key, seen) {
				continue
			}

			fp, ok := b.fieldPlan(tp.Name, key, pf, ptag)
			if ok {
				fp.Variant = vf.Name
				tp.Fields = append(tp.Fields, fp)
			}
		}
	}
}

func (b *builder) planUnwrap(tp *TypePlan, name string) {
	fi, ok := tp.Info.Field(name)
	if !ok {
		names := make([]string, len(tp.Info.Fields))
		for i, f := range tp.Info.Fields {
			names[i] = f.Name
		}

		b.diags().AddError("unknown_field", fmt.Sprintf("wrapper field %q not found", name), tp.Name, name,
			match.Suggest(name, names, maxSuggestions)...)

		return
	}

	tp.Unwrap = &UnwrapPlan{Field: fi.Name, Pointer: fi.Pointer, Target: fi.Target}
}

func (b *builder) fieldPlan(typeName string, key reflection.Key, fi *analyze.FieldInfo, tag derive.Tag) (FieldPlan, bool) {
	if tag.Deref && !fi.Derefable {
		b.diags().AddError("bad_deref",
			fmt.Sprintf("deref field %s (%s) is neither a pointer nor a Dereferencer", fi.Name, fi.TypeExpr),
			typeName, string(key))

		return FieldPlan{}, false
	}

	return FieldPlan{
		Key:      key,
		Const:    ConstName(typeName, key),
		Name:     fi.Name,
		TypeExpr: fi.TypeExpr,
		Deref:    tag.Deref,
		Pointer:  fi.Pointer,
		Target:   fi.Target,
		Inner:    fi.Inner,
	}, true
}

func (b *builder) validKey(typeName string, key reflection.Key, seen map[reflection.Key]struct{}) bool {
	if key == "" || strings.Contains(string(key), reflection.PathSeparator) {
		b.diags().AddError("invalid_key", fmt.Sprintf("key %q may not be empty or contain %q", key, reflection.PathSeparator), typeName, string(key))
		return false
	}

	if _, dup := seen[key]; dup {
		b.diags().AddError("duplicate_key", fmt.Sprintf("key %q is used twice", key), typeName, string(key))
		return false
	}

	seen[key] = struct{}{}

	return true
}

func (b *builder) unknownOptions(typeName, field string, tag derive.Tag) {
	for _, opt := range tag.Unknown {
		b.diags().AddWarning("unknown_option", fmt.Sprintf("unknown %s tag option %q", b.tag, opt), typeName, field)
	}
}

// collectImports gathers the packages named by planned field types.
func (b *builder) collectImports() {
	byPath := map[string]string{}
	byName := map[string]string{"reflection": ReflectionPath}

	for _, tp := range b.plan.Types {
		for _, fp := range tp.Fields {
			fi := b.fieldInfo(&tp, &fp)
			if fi == nil {
				continue
			}

			for path, name := range fi.Imports {
				if other, ok := byName[name]; ok && other != path {
					b.diags().AddError("import_collision",
						fmt.Sprintf("package name %s is used by both %s and %s", name, other, path), tp.Name, string(fp.Key))

					continue
				}

				byName[name] = path
				byPath[path] = name
			}
		}
	}

	for path, name := range byPath {
		b.plan.Imports = append(b.plan.Imports, Import{Path: path, Name: name})
	}

	sort.Slice(b.plan.Imports, func(i, j int) bool { return b.plan.Imports[i].Path < b.plan.Imports[j].Path })
}

// fieldInfo finds the analyzed field behind a planned one.
func (b *builder) fieldInfo(tp *TypePlan, fp *FieldPlan) *analyze.FieldInfo {
	owner := tp.Info
	if fp.Variant != "" {
		vf, ok := owner.Field(fp.Variant)
		if !ok {
			return nil
		}

		owner = b.plan.Package.GetType(vf.Target.Name)
		if owner == nil {
			return nil
		}
	}

	fi, _ := owner.Field(fp.Name)

	return fi
}
