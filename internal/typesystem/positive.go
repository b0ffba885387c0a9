package typesystem

// StrictlyPositive reports whether the constructor may be deconstructed in a
// pure context: every rigid variable in non-strictly-positive position of
// any parameter scheme, and the scope of every unification variable, must
// lie within nonrec, the scope that excludes the recursive occurrences.
//
// The test is monotone in nonrec: enlarging the scope never turns a
// positive constructor negative.
func StrictlyPositive(nonrec Scope, c CtorDecl) bool {
	inner := nonrec
	for _, ta := range c.TArgs {
		inner = inner.Add(ta.Var)
	}
	for _, ns := range c.Named {
		if !positiveScheme(inner, ns.Scheme, false) {
			return false
		}
	}
	for _, a := range c.ArgSchemes {
		if !positiveScheme(inner, a, true) {
			return false
		}
	}
	return true
}

// positiveScheme checks a scheme at the given polarity. The scheme's own
// binders extend the scope: they are not recursive occurrences. Named
// parameters are inputs, so their schemes flip.
func positiveScheme(scope Scope, sch Scheme, pos bool) bool {
	inner := scope
	for _, ta := range sch.TArgs {
		inner = inner.Add(ta.Var)
	}
	for _, ns := range sch.Named {
		if !positiveScheme(inner, ns.Scheme, !pos) {
			return false
		}
	}
	return positiveType(inner, sch.Body, pos)
}

func positiveType(scope Scope, t Type, pos bool) bool {
	switch v := View(t).(type) {
	case VVar:
		return pos || scope.Mem(v.V)
	case VUVar:
		return uvarScopeWithin(scope, v)
	case VEffect:
		return positiveVars(scope, v.Vars, pos)
	case VEffrow:
		if !positiveVars(scope, v.Vars, pos) {
			return false
		}
		return v.End == nil || positiveType(scope, v.End, pos)
	case VPureArrow:
		return positiveScheme(scope, v.Arg, !pos) && positiveType(scope, v.Ret, pos)
	case VArrow:
		return positiveScheme(scope, v.Arg, !pos) &&
			positiveType(scope, v.Ret, pos) &&
			positiveType(scope, v.Eff, pos)
	case VHandler:
		// Handlers are invariant in every component.
		inner := scope.Add(v.Var)
		for _, t := range []Type{v.Cap, v.In, v.InEff, v.Out, v.OutEff} {
			if !invariantType(inner, t) {
				return false
			}
		}
		return true
	case VLabel:
		for _, t := range []Type{v.Eff, v.Delim, v.DelimEff} {
			if !invariantType(scope, t) {
				return false
			}
		}
		return true
	case VApp:
		// The variance of a neutral head is unknown, so arguments are
		// treated as invariant.
		return positiveType(scope, v.Fn, pos) && invariantType(scope, v.Arg)
	default:
		panic("typesystem: unknown type view")
	}
}

func invariantType(scope Scope, t Type) bool {
	return positiveType(scope, t, true) && positiveType(scope, t, false)
}

func positiveVars(scope Scope, vs []*TVar, pos bool) bool {
	if pos {
		return true
	}
	for _, v := range vs {
		if !scope.Mem(v) {
			return false
		}
	}
	return true
}

// uvarScopeWithin checks that the unification variable's scope, seen through
// the mention's permutation, lies within scope.
func uvarScopeWithin(scope Scope, v VUVar) bool {
	for _, w := range v.U.Scope().Members() {
		if !scope.Mem(v.Perm.Apply(w)) {
			return false
		}
	}
	return true
}
