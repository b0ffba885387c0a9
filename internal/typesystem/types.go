package typesystem

import (
	"sort"

	"github.com/hashicorp/go-set/v3"
)

// Type is the algebraic representation of Tova types and effect rows.
//
// The concrete representation is private to this package: callers construct
// types through the kind-checked constructors below and inspect them through
// View, Whnf, and ViewRow. No caller can produce an ill-kinded type.
type Type interface {
	String() string
	typeTerm()
}

// Term representation. A mention of a unification variable always carries a
// delayed permutation; rows keep their simple effect variables as a set
// keyed by variable identity, because variable order inside a row is not
// semantically significant.
type (
	tUVar struct {
		perm Perm
		u    *UVar
	}
	tVar struct {
		v *TVar
	}
	tEffect struct {
		vars *set.Set[*TVar]
	}
	tEffrow struct {
		vars *set.Set[*TVar]
		end  Type // nil for a closed row; else uvar, rigid row var, or application
	}
	tPureArrow struct {
		arg Scheme
		ret Type
	}
	tArrow struct {
		arg Scheme
		ret Type
		eff Type
	}
	tHandler struct {
		v      *TVar
		cap    Type
		in     Type
		inEff  Type
		out    Type
		outEff Type
	}
	tLabel struct {
		eff      Type
		delim    Type
		delimEff Type
	}
	tApp struct {
		fn  Type
		arg Type
	}
)

func (tUVar) typeTerm() {}
func (tVar) typeTerm() {}
func (tEffect) typeTerm() {}
func (tEffrow) typeTerm() {}
func (tPureArrow) typeTerm() {}
func (tArrow) typeTerm() {}
func (tHandler) typeTerm() {}
func (tLabel) typeTerm() {}
func (tApp) typeTerm() {}

// UVarType builds a mention of the unification variable u seen through the
// delayed permutation p.
func UVarType(p Perm, u *UVar) Type {
	return tUVar{perm: p, u: u}
}

// VarType builds a rigid variable mention.
func VarType(v *TVar) Type {
	return tVar{v: v}
}

// EffectType builds a ground effect: a finite set of effect variables.
// Every argument must have effect kind.
func EffectType(vs ...*TVar) Type {
	return tEffect{vars: effectVarSet(vs)}
}

// EffrowType builds an effect row from simple effect variables and an end.
// A nil end closes the row; otherwise the end must have row kind. An end
// that is itself a row is spliced in.
func EffrowType(vs []*TVar, end Type) Type {
	vars := effectVarSet(vs)
	for end != nil {
		row, ok := end.(tEffrow)
		if !ok {
			break
		}
		vars.InsertSlice(row.vars.Slice())
		end = row.end
	}
	if end != nil {
		if !KindEqual(KindOf(end), EffrowKind) {
			panic("typesystem: effect row end has kind " + KindOf(end).String())
		}
		switch end.(type) {
		case tUVar, tVar, tApp:
		default:
			panic("typesystem: invalid effect row end")
		}
	}
	return tEffrow{vars: vars, end: end}
}

// ClosedEffrow builds a closed row of the given simple effect variables.
func ClosedEffrow(vs ...*TVar) Type {
	return EffrowType(vs, nil)
}

// PureArrowType builds the pure arrow sigma -> t: total and effect-free.
func PureArrowType(arg Scheme, ret Type) Type {
	mustHaveKind(arg.Body, TypeKind, "pure arrow argument")
	mustHaveKind(ret, TypeKind, "pure arrow result")
	return tPureArrow{arg: arg, ret: ret}
}

// ArrowType builds the impure arrow sigma ->[row] t.
func ArrowType(arg Scheme, ret Type, eff Type) Type {
	mustHaveKind(arg.Body, TypeKind, "arrow argument")
	mustHaveKind(ret, TypeKind, "arrow result")
	mustHaveKind(eff, EffrowKind, "arrow effect")
	return tArrow{arg: arg, ret: ret, eff: eff}
}

// HandlerType builds a first-class handler type: handling the effect bound
// to v with capability cap, turning computations of type in / effects inEff
// into type out / effects outEff.
func HandlerType(v *TVar, cap, in, inEff, out, outEff Type) Type {
	if !KindEqual(v.kind, EffectKind) {
		panic("typesystem: handler binds non-effect variable")
	}
	mustHaveKind(cap, TypeKind, "handler capability")
	mustHaveKind(in, TypeKind, "handler input")
	mustHaveKind(inEff, EffrowKind, "handler input effect")
	mustHaveKind(out, TypeKind, "handler output")
	mustHaveKind(outEff, EffrowKind, "handler output effect")
	return tHandler{v: v, cap: cap, in: in, inEff: inEff, out: out, outEff: outEff}
}

// LabelType builds a first-class delimiter label for effect eff with
// delimiter type delim and delimiter effects delimEff.
func LabelType(eff, delim, delimEff Type) Type {
	mustHaveKind(eff, EffectKind, "label effect")
	mustHaveKind(delim, TypeKind, "label delimiter type")
	mustHaveKind(delimEff, EffrowKind, "label delimiter effect")
	return tLabel{eff: eff, delim: delim, delimEff: delimEff}
}

// AppType builds the neutral application fn arg, checking the argument kind
// against the head's arrow kind. A head whose kind is an unresolved kind
// variable is accepted unchecked; kind inference resolves it later.
func AppType(fn, arg Type) Type {
	switch k := KindView(KindOf(fn)).(type) {
	case KArrow:
		if !KindEqual(k.Left, KindOf(arg)) {
			panic("typesystem: application argument has kind " + KindOf(arg).String() +
				", want " + k.Left.String())
		}
	case *KVar:
		// Unresolved head kind: relaxed, the kind checker fills it in.
	default:
		panic("typesystem: cannot apply a type of kind " + k.String())
	}
	return tApp{fn: fn, arg: arg}
}

// AppsType builds the iterated application fn arg1 ... argN.
func AppsType(fn Type, args ...Type) Type {
	t := fn
	for _, a := range args {
		t = AppType(t, a)
	}
	return t
}

// KindOf computes the kind of a type on demand.
func KindOf(t Type) Kind {
	switch t := t.(type) {
	case tUVar:
		return t.u.kind
	case tVar:
		return t.v.kind
	case tEffect:
		return EffectKind
	case tEffrow:
		return EffrowKind
	case tPureArrow, tArrow, tHandler, tLabel:
		return TypeKind
	case tApp:
		switch k := KindView(KindOf(t.fn)).(type) {
		case KArrow:
			return k.Right
		default:
			panic("typesystem: application head has kind " + k.String())
		}
	default:
		panic("typesystem: unknown type term")
	}
}

func mustHaveKind(t Type, k Kind, what string) {
	if !KindEqual(KindOf(t), k) {
		panic("typesystem: " + what + " has kind " + KindOf(t).String() + ", want " + k.String())
	}
}

// effectVarSet builds an identity-keyed set of effect variables, rejecting
// non-effect kinds.
func effectVarSet(vs []*TVar) *set.Set[*TVar] {
	s := set.New[*TVar](len(vs))
	for _, v := range vs {
		if !KindEqual(v.kind, EffectKind) {
			panic("typesystem: effect set member has kind " + v.kind.String())
		}
		s.Insert(v)
	}
	return s
}

// sortedVars returns the set's variables in ascending identifier order.
func sortedVars(s *set.Set[*TVar]) []*TVar {
	out := s.Slice()
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// applyPermToType rewrites every rigid mention in t through p. Mentions of
// unification variables compose p into their delayed permutation instead of
// rewriting eagerly.
func applyPermToType(p Perm, t Type) Type {
	if p.IsIdentity() {
		return t
	}
	switch t := t.(type) {
	case tUVar:
		return tUVar{perm: t.perm.Compose(p), u: t.u}
	case tVar:
		return tVar{v: p.Apply(t.v)}
	case tEffect:
		return tEffect{vars: applyPermToVarSet(p, t.vars)}
	case tEffrow:
		end := t.end
		if end != nil {
			end = applyPermToType(p, end)
		}
		return tEffrow{vars: applyPermToVarSet(p, t.vars), end: end}
	case tPureArrow:
		return tPureArrow{arg: applyPermToScheme(p, t.arg), ret: applyPermToType(p, t.ret)}
	case tArrow:
		return tArrow{
			arg: applyPermToScheme(p, t.arg),
			ret: applyPermToType(p, t.ret),
			eff: applyPermToType(p, t.eff),
		}
	case tHandler:
		return tHandler{
			v:      p.Apply(t.v),
			cap:    applyPermToType(p, t.cap),
			in:     applyPermToType(p, t.in),
			inEff:  applyPermToType(p, t.inEff),
			out:    applyPermToType(p, t.out),
			outEff: applyPermToType(p, t.outEff),
		}
	case tLabel:
		return tLabel{
			eff:      applyPermToType(p, t.eff),
			delim:    applyPermToType(p, t.delim),
			delimEff: applyPermToType(p, t.delimEff),
		}
	case tApp:
		return tApp{fn: applyPermToType(p, t.fn), arg: applyPermToType(p, t.arg)}
	default:
		return t
	}
}

func applyPermToVarSet(p Perm, s *set.Set[*TVar]) *set.Set[*TVar] {
	out := set.New[*TVar](s.Size())
	for _, v := range s.Slice() {
		out.Insert(p.Apply(v))
	}
	return out
}

func applyPermToScheme(p Perm, sch Scheme) Scheme {
	targs := make([]NamedTVar, len(sch.TArgs))
	for i, ta := range sch.TArgs {
		targs[i] = NamedTVar{Name: ta.Name, Var: p.Apply(ta.Var)}
	}
	named := make([]NamedScheme, len(sch.Named))
	for i, ns := range sch.Named {
		named[i] = NamedScheme{Name: ns.Name, Scheme: applyPermToScheme(p, ns.Scheme)}
	}
	return Scheme{TArgs: targs, Named: named, Body: applyPermToType(p, sch.Body)}
}
