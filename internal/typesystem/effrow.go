package typesystem

import (
	"github.com/hashicorp/go-set/v3"
)

// RowView exposes an effect row one step at a time. The simple-variable
// portion of a row is a set: two rows differing only in variable order are
// the same row, and the cons view exposes variables in ascending id order.
type RowView interface {
	rowView()
}

type (
	// RPure is the closed empty row.
	RPure struct{}
	// RUVar is a row ending in an unset unification variable.
	RUVar struct {
		Perm Perm
		U    *UVar
	}
	// RVar is a row ending in a rigid row variable.
	RVar struct {
		V *TVar
	}
	// RApp is a row ending in a neutral type application.
	RApp struct {
		Fn  Type
		Arg Type
	}
	// RCons exposes the first simple effect variable and the rest of the
	// row.
	RCons struct {
		Var  *TVar
		Tail Type
	}
)

func (RPure) rowView() {}
func (RUVar) rowView() {}
func (RVar) rowView() {}
func (RApp) rowView() {}
func (RCons) rowView() {}

// rowParts normalizes a row term: it merges the simple variables of nested
// rows reachable through set unification variables at the end position and
// returns them with the final end term (nil when the row is closed).
func rowParts(t Type) (*set.Set[*TVar], Type) {
	vars := set.New[*TVar](0)
	cur := followUVars(t)
	for {
		row, ok := cur.(tEffrow)
		if !ok {
			break
		}
		vars.InsertSlice(row.vars.Slice())
		if row.end == nil {
			cur = nil
			break
		}
		cur = followUVars(row.end)
	}
	return vars, cur
}

// ViewRow inspects an effect row one step.
func ViewRow(t Type) RowView {
	vars, cur := rowParts(t)

	if !vars.Empty() {
		sorted := sortedVars(vars)
		tail := set.New[*TVar](len(sorted) - 1)
		tail.InsertSlice(sorted[1:])
		return RCons{Var: sorted[0], Tail: tEffrow{vars: tail, end: cur}}
	}

	switch end := cur.(type) {
	case nil:
		return RPure{}
	case tUVar:
		return RUVar{Perm: end.perm, U: end.u}
	case tVar:
		return RVar{V: end.v}
	case tApp:
		return RApp{Fn: end.fn, Arg: end.arg}
	default:
		panic("typesystem: invalid effect row end")
	}
}

// IsPure reports whether the row is the closed empty row.
func IsPure(t Type) bool {
	_, ok := ViewRow(t).(RPure)
	return ok
}

// PureEffrow returns the closed empty row.
func PureEffrow() Type {
	return tEffrow{vars: set.New[*TVar](0)}
}

// IOEffrow returns the closed row containing exactly the IO effect.
func IOEffrow() Type {
	return ClosedEffrow(IOEffect)
}

// ConsEffVar adds a simple effect variable to a row's variable set. Consing
// an already-present variable returns the row unchanged.
func ConsEffVar(v *TVar, row Type) Type {
	if !KindEqual(v.kind, EffectKind) {
		panic("typesystem: consing a variable of kind " + v.kind.String() + " onto a row")
	}
	if r, ok := row.(tEffrow); ok {
		if r.vars.Contains(v) {
			return row
		}
		vars := r.vars.Copy()
		vars.Insert(v)
		return tEffrow{vars: vars, end: r.end}
	}
	return EffrowType([]*TVar{v}, row)
}

// ConsEff splatters a ground effect into the row: every simple variable of
// the effect is consed on.
func ConsEff(e Type, row Type) Type {
	ve, ok := View(e).(VEffect)
	if !ok {
		panic("typesystem: ConsEff with a non-ground effect")
	}
	for _, v := range ve.Vars {
		row = ConsEffVar(v, row)
	}
	return row
}
