package plan

import (
	"fmt"

	"reflect-registry/internal/analyze"
	"reflect-registry/internal/config"
	"reflect-registry/internal/match"
	"reflect-registry/reflection"
)

// PathResult is the static outcome of one path check.
type PathResult struct {
	Check config.PathCheck
	// Field is the terminal entry, when the path resolves.
	Field *FieldPlan
	// Verified is false when the walk reached a type it cannot see into.
	Verified bool
}

// CheckPaths walks every configured path over the planned registries with
// the runtime resolution rules and records problems in the plan diagnostics.
func (p *Plan) CheckPaths() []PathResult {
	if p.Config == nil {
		return nil
	}

	results := make([]PathResult, 0, len(p.Config.Paths))
	for _, c := range p.Config.Paths {
		results = append(results, p.CheckPath(c))
	}

	return results
}

// CheckPath checks a single path. Before each segment the current type is
// unwrapped while it is transparent: a wrapper forwards to its unwrap target
// and a deref field to its inner type. The segment is then looked up among the
// visible keys. A non-terminal field must hold a planned type by value unless
// it is a deref field.
func (p *Plan) CheckPath(c config.PathCheck) PathResult {
	res := PathResult{Check: c}

	root, ok := p.Type(c.Root)
	if !ok {
		p.Diagnostics.AddError("unknown_root", fmt.Sprintf("root type %s is not planned", c.Root), c.Root, c.Path)
		return res
	}

	keys := reflection.SplitPath(c.Path)
	cur := view{plan: root}

	for i, key := range keys {
		prefix := reflection.JoinPath(keys[:i]...)

		next, ok := p.unwrapAll(cur)
		if !ok {
			p.Diagnostics.AddError("wrapper_cycle",
				fmt.Sprintf("more than %d transparent hops before %q", reflection.MaxUnwrapDepth, key), c.Root, c.Path)

			return res
		}

		if next.plan == nil {
			p.Diagnostics.AddWarning("unverifiable_path", next.reason(key, prefix), c.Root, c.Path)
			return res
		}

		field, ok := next.plan.fieldFor(key)
		if !ok {
			p.Diagnostics.AddError("path_not_found", notFound(key, prefix, c.Path), c.Root, c.Path,
				match.Suggest(string(key), keyStrings(next.plan.Keys()), maxSuggestions)...)

			return res
		}

		if i == len(keys)-1 {
			res.Field = field
			res.Verified = true
			p.checkType(c, field)

			return res
		}

		cur = p.step(field)
		if cur.dead {
			p.Diagnostics.AddError("not_reflectable",
				fmt.Sprintf("%s (%s) after %q is not reflectable", key, field.TypeExpr, prefix), c.Root, c.Path)

			return res
		}
	}

	return res
}

func (p *Plan) checkType(c config.PathCheck, field *FieldPlan) {
	if c.Type == "" || c.Type == field.TypeExpr {
		return
	}

	p.Diagnostics.AddError("type_mismatch",
		fmt.Sprintf("%q holds %s, not %s", c.Path, field.TypeExpr, c.Type), c.Root, c.Path)
}

// view is the statically known value at some point of a path walk.
type view struct {
	plan *TypePlan
	// deref marks the empty transparent view of a deref field.
	deref bool
	inner analyze.TypeID
	// dead marks a value that is not reflectable at all.
	dead bool
	// opaque is a type that may be reflectable but is not planned.
	opaque analyze.TypeID
}

func (v view) reason(key reflection.Key, prefix string) string {
	where := "at the root"
	if prefix != "" {
		where = fmt.Sprintf("after %q", prefix)
	}

	if v.opaque.IsZero() {
		return fmt.Sprintf("cannot tell what the deref hop %s leads to, %q is not checked", where, key)
	}

	return fmt.Sprintf("%s %s is not planned here, %q is not checked", v.opaque.Name, where, key)
}

// unwrapAll follows transparent views. It reports false on a cycle.
func (p *Plan) unwrapAll(v view) (view, bool) {
	for range reflection.MaxUnwrapDepth {
		switch {
		case v.deref:
			v = p.viewOf(v.inner)
		case v.plan != nil && v.plan.IsTransparent():
			if v.plan.Unwrap == nil {
				return view{}, true
			}

			v = p.viewOf(v.plan.Unwrap.Target)
		default:
			return v, true
		}
	}

	return view{}, false
}

// step returns the view reached through a non-terminal field.
func (p *Plan) step(field *FieldPlan) view {
	if field.Deref {
		return view{deref: true, inner: field.Inner}
	}

	if field.Pointer || field.Target.IsZero() {
		return view{dead: true}
	}

	v := p.viewOf(field.Target)
	if v.plan != nil || v.opaque.PkgPath != p.Package.Path {
		return v
	}

	// A local type is only reachable if it declares the methods by hand.
	if info := p.Package.GetType(field.Target.Name); info == nil || !info.Reflectable() {
		return view{dead: true}
	}

	return v
}

func (p *Plan) viewOf(id analyze.TypeID) view {
	if tp, ok := p.planned(id); ok {
		return view{plan: tp}
	}

	return view{opaque: id}
}

// fieldFor looks key up among the visible keys. Transparent registries have none.
func (t *TypePlan) fieldFor(key reflection.Key) (*FieldPlan, bool) {
	if t.IsTransparent() {
		return nil, false
	}

	return t.Field(key)
}

func notFound(key reflection.Key, prefix, path string) string {
	if prefix == "" {
		return fmt.Sprintf("no field %q in path %q", key, path)
	}

	return fmt.Sprintf("no field %q after %q in path %q", key, prefix, path)
}

func keyStrings(keys []reflection.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}

	return out
}
