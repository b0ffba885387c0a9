package typesystem

// Subst is a parallel substitution: a finite map from rigid variables to
// types, applied atomically. Adding an entry never applies the existing
// substitution to the incoming type; callers pre-substitute when they need
// sequencing, so entry order cannot be observed.
type Subst struct {
	m map[*TVar]Type
}

// NewSubst returns the empty substitution.
func NewSubst() Subst {
	return Subst{m: make(map[*TVar]Type)}
}

// IsEmpty reports whether the substitution has no entries.
func (s Subst) IsEmpty() bool { return len(s.m) == 0 }

// RenameToFresh extends the substitution with a rigid-to-rigid renaming.
// The replacement must have the same kind; v must not already be bound.
func (s Subst) RenameToFresh(v, w *TVar) Subst {
	return s.AddType(v, VarType(w))
}

// AddType extends the substitution, mapping v to t. Binding a variable twice
// is an internal invariant violation: the combinator is parallel, and a
// second binding has no coherent meaning.
func (s Subst) AddType(v *TVar, t Type) Subst {
	if _, ok := s.m[v]; ok {
		panic("typesystem: variable bound twice in a substitution")
	}
	if !KindEqual(v.kind, KindOf(t)) {
		panic("typesystem: substitution entry has kind " + KindOf(t).String() +
			", want " + v.kind.String())
	}
	s.m[v] = t
	return s
}

// ApplyToType substitutes through t. Unset unification variables are left
// alone (their delayed permutations already account for rigid renamings)
// and rigid row ends are re-spliced, so a cons may grow the row.
func (s Subst) ApplyToType(t Type) Type {
	if len(s.m) == 0 {
		return t
	}
	return s.applyType(t)
}

func (s Subst) applyType(t Type) Type {
	switch t := t.(type) {
	case tUVar:
		return t
	case tVar:
		if r, ok := s.m[t.v]; ok {
			return r
		}
		return t
	case tEffect:
		out := make([]*TVar, 0, t.vars.Size())
		for _, v := range t.vars.Slice() {
			r, ok := s.m[v]
			if !ok {
				out = append(out, v)
				continue
			}
			switch rv := View(r).(type) {
			case VVar:
				out = append(out, rv.V)
			case VEffect:
				out = append(out, rv.Vars...)
			default:
				panic("typesystem: effect variable substituted with a non-effect")
			}
		}
		return EffectType(out...)
	case tEffrow:
		return s.applyRow(t)
	case tPureArrow:
		return tPureArrow{arg: s.ApplyToScheme(t.arg), ret: s.applyType(t.ret)}
	case tArrow:
		return tArrow{arg: s.ApplyToScheme(t.arg), ret: s.applyType(t.ret), eff: s.applyType(t.eff)}
	case tHandler:
		return tHandler{
			v:      s.applyBoundVar(t.v),
			cap:    s.applyType(t.cap),
			in:     s.applyType(t.in),
			inEff:  s.applyType(t.inEff),
			out:    s.applyType(t.out),
			outEff: s.applyType(t.outEff),
		}
	case tLabel:
		return tLabel{
			eff:      s.applyType(t.eff),
			delim:    s.applyType(t.delim),
			delimEff: s.applyType(t.delimEff),
		}
	case tApp:
		return tApp{fn: s.applyType(t.fn), arg: s.applyType(t.arg)}
	default:
		return t
	}
}

// applyBoundVar renames a binder occurrence when the substitution maps it to
// another rigid. Mapping a binder to a structured type is an internal
// invariant violation; binders are only ever alpha-renamed.
func (s Subst) applyBoundVar(v *TVar) *TVar {
	r, ok := s.m[v]
	if !ok {
		return v
	}
	if rv, ok := View(r).(VVar); ok {
		return rv.V
	}
	panic("typesystem: binder substituted with a non-variable")
}

func (s Subst) applyRow(row tEffrow) Type {
	vars := make([]*TVar, 0, row.vars.Size())
	for _, v := range row.vars.Slice() {
		r, ok := s.m[v]
		if !ok {
			vars = append(vars, v)
			continue
		}
		switch rv := View(r).(type) {
		case VVar:
			vars = append(vars, rv.V)
		case VEffect:
			vars = append(vars, rv.Vars...)
		default:
			panic("typesystem: effect variable substituted with a non-effect")
		}
	}

	end := row.end
	if end != nil {
		switch e := end.(type) {
		case tVar:
			if r, ok := s.m[e.v]; ok {
				// The rigid row end maps to a row: EffrowType re-splices
				// its variables, so the cons may grow.
				end = r
			}
		case tApp:
			end = s.applyType(e)
		case tUVar:
			// left alone
		}
	}
	return EffrowType(vars, end)
}

// ApplyToScheme substitutes through a scheme. Entries binding the scheme's
// own type arguments are dropped; the scheme's binders shadow them.
func (s Subst) ApplyToScheme(sch Scheme) Scheme {
	inner := s
	for _, ta := range sch.TArgs {
		if _, ok := s.m[ta.Var]; ok {
			inner = s.without(sch.TArgs)
			break
		}
	}
	named := make([]NamedScheme, len(sch.Named))
	for i, ns := range sch.Named {
		named[i] = NamedScheme{Name: ns.Name, Scheme: inner.ApplyToScheme(ns.Scheme)}
	}
	return Scheme{TArgs: sch.TArgs, Named: named, Body: inner.ApplyToType(sch.Body)}
}

// ApplyToNamedScheme substitutes through a named scheme.
func (s Subst) ApplyToNamedScheme(ns NamedScheme) NamedScheme {
	return NamedScheme{Name: ns.Name, Scheme: s.ApplyToScheme(ns.Scheme)}
}

// ApplyToCtorDecl substitutes through a constructor declaration. Entries
// binding the constructor's existential type arguments are dropped.
func (s Subst) ApplyToCtorDecl(c CtorDecl) CtorDecl {
	inner := s
	for _, ta := range c.TArgs {
		if _, ok := s.m[ta.Var]; ok {
			inner = s.without(c.TArgs)
			break
		}
	}
	named := make([]NamedScheme, len(c.Named))
	for i, ns := range c.Named {
		named[i] = inner.ApplyToNamedScheme(ns)
	}
	args := make([]Scheme, len(c.ArgSchemes))
	for i, a := range c.ArgSchemes {
		args[i] = inner.ApplyToScheme(a)
	}
	return CtorDecl{Name: c.Name, TArgs: c.TArgs, Named: named, ArgSchemes: args}
}

// without returns a copy of the substitution with the given binders removed.
func (s Subst) without(binders []NamedTVar) Subst {
	out := make(map[*TVar]Type, len(s.m))
	for v, t := range s.m {
		out[v] = t
	}
	for _, b := range binders {
		delete(out, b.Var)
	}
	return Subst{m: out}
}
