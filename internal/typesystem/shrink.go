package typesystem

// TryShrinkScope checks that every rigid variable mentioned in t lies in
// scope, narrowing the scope of every unification variable along the way.
// It returns the first escaping rigid variable, or nil on success: a scope
// escape is an expected failure the caller reports, not an invariant
// violation.
func TryShrinkScope(scope Scope, t Type) *TVar {
	return shrinkType(scope, t)
}

func shrinkType(scope Scope, t Type) *TVar {
	switch v := View(t).(type) {
	case VVar:
		if !scope.Mem(v.V) {
			return v.V
		}
		return nil
	case VUVar:
		// The mention sees the cell's scope through its permutation; keep
		// exactly the variables visible in the target scope, plus anything
		// bound at an outer level.
		v.U.FilterScope(scope.Level(), func(w *TVar) bool {
			return scope.Mem(v.Perm.Apply(w))
		})
		return nil
	case VEffect:
		return shrinkVars(scope, v.Vars)
	case VEffrow:
		if esc := shrinkVars(scope, v.Vars); esc != nil {
			return esc
		}
		if v.End != nil {
			return shrinkType(scope, v.End)
		}
		return nil
	case VPureArrow:
		if esc := shrinkScheme(scope, v.Arg); esc != nil {
			return esc
		}
		return shrinkType(scope, v.Ret)
	case VArrow:
		if esc := shrinkScheme(scope, v.Arg); esc != nil {
			return esc
		}
		if esc := shrinkType(scope, v.Ret); esc != nil {
			return esc
		}
		return shrinkType(scope, v.Eff)
	case VHandler:
		inner := scope.Add(v.Var)
		for _, t := range []Type{v.Cap, v.In, v.InEff, v.Out, v.OutEff} {
			if esc := shrinkType(inner, t); esc != nil {
				return esc
			}
		}
		return nil
	case VLabel:
		for _, t := range []Type{v.Eff, v.Delim, v.DelimEff} {
			if esc := shrinkType(scope, t); esc != nil {
				return esc
			}
		}
		return nil
	case VApp:
		if esc := shrinkType(scope, v.Fn); esc != nil {
			return esc
		}
		return shrinkType(scope, v.Arg)
	default:
		panic("typesystem: unknown type view")
	}
}

func shrinkVars(scope Scope, vs []*TVar) *TVar {
	for _, v := range vs {
		if !scope.Mem(v) {
			return v
		}
	}
	return nil
}

func shrinkScheme(scope Scope, sch Scheme) *TVar {
	inner := scope
	for _, ta := range sch.TArgs {
		inner = inner.Add(ta.Var)
	}
	for _, ns := range sch.Named {
		if esc := shrinkScheme(inner, ns.Scheme); esc != nil {
			return esc
		}
	}
	return shrinkType(inner, sch.Body)
}

// OpenUp walks a proper type and, at every positive position holding a
// closed effect row, replaces the closed end with a fresh unification
// variable of row kind in the given scope. Polarity flips under arrows.
// This is one direction of effect subsumption: results are free to mention
// more effects than the code performs.
func (s *Session) OpenUp(scope Scope, t Type) Type {
	return s.openType(scope, t, true, true)
}

// OpenDown is the dual of OpenUp: closed rows at negative positions are
// opened instead. The type itself is a positive position for both walks.
func (s *Session) OpenDown(scope Scope, t Type) Type {
	return s.openType(scope, t, true, false)
}

// openType rebuilds t, opening closed rows at positions whose polarity
// equals openAt. pos tracks the polarity of the current position.
func (s *Session) openType(scope Scope, t Type, pos, openAt bool) Type {
	switch v := View(t).(type) {
	case VUVar, VVar, VEffect, VApp:
		// Nothing to open under an unknown or neutral head.
		return t
	case VEffrow:
		if pos == openAt {
			return s.openRow(scope, t)
		}
		return t
	case VPureArrow:
		return tPureArrow{
			arg: s.openScheme(scope, v.Arg, !pos, openAt),
			ret: s.openType(scope, v.Ret, pos, openAt),
		}
	case VArrow:
		eff := v.Eff
		if pos == openAt {
			eff = s.openRow(scope, eff)
		}
		return tArrow{
			arg: s.openScheme(scope, v.Arg, !pos, openAt),
			ret: s.openType(scope, v.Ret, pos, openAt),
			eff: eff,
		}
	case VHandler:
		inner := scope.Add(v.Var)
		in := s.openType(inner, v.In, !pos, openAt)
		inEff := v.InEff
		if pos != openAt {
			inEff = s.openRow(inner, inEff)
		}
		out := s.openType(inner, v.Out, pos, openAt)
		outEff := v.OutEff
		if pos == openAt {
			outEff = s.openRow(inner, outEff)
		}
		return tHandler{v: v.Var, cap: v.Cap, in: in, inEff: inEff, out: out, outEff: outEff}
	case VLabel:
		delimEff := v.DelimEff
		if pos == openAt {
			delimEff = s.openRow(scope, delimEff)
		}
		return tLabel{eff: v.Eff, delim: s.openType(scope, v.Delim, pos, openAt), delimEff: delimEff}
	default:
		panic("typesystem: unknown type view")
	}
}

func (s *Session) openScheme(scope Scope, sch Scheme, pos, openAt bool) Scheme {
	inner := scope
	for _, ta := range sch.TArgs {
		inner = inner.Add(ta.Var)
	}
	named := make([]NamedScheme, len(sch.Named))
	for i, ns := range sch.Named {
		named[i] = NamedScheme{Name: ns.Name, Scheme: s.openScheme(inner, ns.Scheme, !pos, openAt)}
	}
	return Scheme{TArgs: sch.TArgs, Named: named, Body: s.openType(inner, sch.Body, pos, openAt)}
}

// openRow replaces a closed row by the same row ending in a fresh row-kinded
// unification variable. Open rows are returned unchanged.
func (s *Session) openRow(scope Scope, row Type) Type {
	vars, end := rowParts(row)
	if end != nil {
		return row
	}
	u := s.FreshUVar(scope, EffrowKind)
	return tEffrow{vars: vars, end: tUVar{u: u}}
}
