package typesystem

// TypeView is the one-constructor window on a type. Viewing peels exactly one
// constructor; a mention of a set unification variable is read through its
// composed permutation first, so a view is never a set cell.
type TypeView interface {
	typeView()
}

type (
	// VUVar is an unset unification variable under a delayed permutation.
	VUVar struct {
		Perm Perm
		U    *UVar
	}
	// VVar is a rigid variable.
	VVar struct {
		V *TVar
	}
	// VEffect is a ground effect: its variables in ascending id order.
	VEffect struct {
		Vars []*TVar
	}
	// VEffrow is an effect row: simple variables in ascending id order and
	// an end, nil when the row is closed.
	VEffrow struct {
		Vars []*TVar
		End  Type
	}
	// VPureArrow is the pure arrow.
	VPureArrow struct {
		Arg Scheme
		Ret Type
	}
	// VArrow is the impure arrow.
	VArrow struct {
		Arg Scheme
		Ret Type
		Eff Type
	}
	// VHandler is a first-class handler.
	VHandler struct {
		Var    *TVar
		Cap    Type
		In     Type
		InEff  Type
		Out    Type
		OutEff Type
	}
	// VLabel is a first-class delimiter label.
	VLabel struct {
		Eff      Type
		Delim    Type
		DelimEff Type
	}
	// VApp is a neutral application.
	VApp struct {
		Fn  Type
		Arg Type
	}
)

func (VUVar) typeView() {}
func (VVar) typeView() {}
func (VEffect) typeView() {}
func (VEffrow) typeView() {}
func (VPureArrow) typeView() {}
func (VArrow) typeView() {}
func (VHandler) typeView() {}
func (VLabel) typeView() {}
func (VApp) typeView() {}

// followUVars reads t through set unification variables, applying composed
// permutations, until the head is not a set cell.
func followUVars(t Type) Type {
	for {
		m, ok := t.(tUVar)
		if !ok || m.u.link == nil {
			return t
		}
		content, p := m.u.contents(m.perm)
		t = applyPermToType(p, content)
	}
}

// View peels one constructor off t. It never returns a set unification
// variable.
func View(t Type) TypeView {
	switch t := followUVars(t).(type) {
	case tUVar:
		return VUVar{Perm: t.perm, U: t.u}
	case tVar:
		return VVar{V: t.v}
	case tEffect:
		return VEffect{Vars: sortedVars(t.vars)}
	case tEffrow:
		return VEffrow{Vars: sortedVars(t.vars), End: t.end}
	case tPureArrow:
		return VPureArrow{Arg: t.arg, Ret: t.ret}
	case tArrow:
		return VArrow{Arg: t.arg, Ret: t.ret, Eff: t.eff}
	case tHandler:
		return VHandler{Var: t.v, Cap: t.cap, In: t.in, InEff: t.inEff, Out: t.out, OutEff: t.outEff}
	case tLabel:
		return VLabel{Eff: t.eff, Delim: t.delim, DelimEff: t.delimEff}
	case tApp:
		return VApp{Fn: t.fn, Arg: t.arg}
	default:
		panic("typesystem: unknown type term")
	}
}

// WhnfForm is the weak-head normal form of a type: the outermost constructor
// after unfolding set unification variables and application heads.
type WhnfForm interface {
	whnfForm()
}

// NeutralHead is the head of a neutral application: an unset unification
// variable or a rigid variable.
type NeutralHead interface {
	neutralHead()
}

type (
	// NHUVar is an unset unification variable head.
	NHUVar struct {
		Perm Perm
		U    *UVar
	}
	// NHVar is a rigid variable head.
	NHVar struct {
		V *TVar
	}
)

func (NHUVar) neutralHead() {}
func (NHVar) neutralHead() {}

type (
	// WNeutral is a neutral application. RevArgs holds the arguments in
	// reverse application order: RevArgs[0] is the last argument applied,
	// which lets spine matching proceed tail-to-head without allocation.
	WNeutral struct {
		Head    NeutralHead
		RevArgs []Type
	}
	// WEffect is a ground effect in weak head normal form.
	WEffect struct {
		Vars []*TVar
	}
	// WEffrow is an effect row in weak head normal form.
	WEffrow struct {
		Vars []*TVar
		End  Type
	}
	// WPureArrow is a pure arrow in weak head normal form.
	WPureArrow struct {
		Arg Scheme
		Ret Type
	}
	// WArrow is an impure arrow in weak head normal form.
	WArrow struct {
		Arg Scheme
		Ret Type
		Eff Type
	}
	// WHandler is a handler in weak head normal form.
	WHandler struct {
		Var    *TVar
		Cap    Type
		In     Type
		InEff  Type
		Out    Type
		OutEff Type
	}
	// WLabel is a label in weak head normal form.
	WLabel struct {
		Eff      Type
		Delim    Type
		DelimEff Type
	}
)

func (WNeutral) whnfForm() {}
func (WEffect) whnfForm() {}
func (WEffrow) whnfForm() {}
func (WPureArrow) whnfForm() {}
func (WArrow) whnfForm() {}
func (WHandler) whnfForm() {}
func (WLabel) whnfForm() {}

// Whnf reduces t to weak-head normal form by repeatedly unfolding set
// unification variables and application heads.
func Whnf(t Type) WhnfForm {
	var revArgs []Type
	for {
		switch tt := followUVars(t).(type) {
		case tApp:
			revArgs = append(revArgs, tt.arg)
			t = tt.fn
		case tUVar:
			return WNeutral{Head: NHUVar{Perm: tt.perm, U: tt.u}, RevArgs: revArgs}
		case tVar:
			return WNeutral{Head: NHVar{V: tt.v}, RevArgs: revArgs}
		case tEffect:
			mustBeUnapplied(revArgs, "effect")
			return WEffect{Vars: sortedVars(tt.vars)}
		case tEffrow:
			mustBeUnapplied(revArgs, "effect row")
			return WEffrow{Vars: sortedVars(tt.vars), End: tt.end}
		case tPureArrow:
			mustBeUnapplied(revArgs, "pure arrow")
			return WPureArrow{Arg: tt.arg, Ret: tt.ret}
		case tArrow:
			mustBeUnapplied(revArgs, "arrow")
			return WArrow{Arg: tt.arg, Ret: tt.ret, Eff: tt.eff}
		case tHandler:
			mustBeUnapplied(revArgs, "handler")
			return WHandler{Var: tt.v, Cap: tt.cap, In: tt.in, InEff: tt.inEff, Out: tt.out, OutEff: tt.outEff}
		case tLabel:
			mustBeUnapplied(revArgs, "label")
			return WLabel{Eff: tt.eff, Delim: tt.delim, DelimEff: tt.delimEff}
		default:
			panic("typesystem: unknown type term")
		}
	}
}

func mustBeUnapplied(revArgs []Type, what string) {
	if len(revArgs) != 0 {
		panic("typesystem: " + what + " used as an application head")
	}
}
