package typesystem

import (
	"github.com/funvibe/tova/internal/ident"
	"go.uber.org/zap"
)

// UVar is a unification variable: a mutable one-shot cell standing for an
// unknown type. Each cell carries the scope its eventual contents must fit
// into; the scope may only shrink over the cell's lifetime.
//
// A mention of a UVar inside a type is always paired with a delayed
// permutation (see Perm); the cell itself stores the inverse permutation of
// the mention it was set through, so that every other mention reads the
// contents through its own composed permutation.
type UVar struct {
	id       ident.ID
	kind     Kind
	scope    Scope
	link     Type
	linkPerm Perm
	sess     *Session
}

// FreshUVar allocates an unset unification variable of the given kind in the
// given scope.
func (s *Session) FreshUVar(scope Scope, kind Kind) *UVar {
	return &UVar{id: s.ids.Fresh(), kind: kind, scope: scope, sess: s}
}

// ID returns the unique identifier of the cell.
func (u *UVar) ID() ident.ID { return u.id }

// Kind returns the kind of the cell.
func (u *UVar) Kind() Kind { return u.kind }

// Scope returns the current scope of the cell.
func (u *UVar) Scope() Scope { return u.scope }

// Level returns the level of the cell's scope.
func (u *UVar) Level() int { return u.scope.Level() }

// IsSet reports whether the cell has been written.
func (u *UVar) IsSet() bool { return u.link != nil }

// contents returns the linked type and the permutation through which a
// mention with permutation p reads it. Only meaningful on a set cell.
func (u *UVar) contents(p Perm) (Type, Perm) {
	return u.link, u.linkPerm.Compose(p)
}

// RawSet writes the cell through a mention carrying permutation p: the
// mention π(u) is being set to t, so the cell records t together with π's
// inverse. It returns the scope the incoming t must fit into (the cell's
// scope seen through the mention), which the caller uses for a subsequent
// shrink. Writing a set cell or mismatching kinds is an internal invariant
// violation. So is writing contents that mention the cell itself; the caller
// checks occurrences (ContainsUVar) beforehand.
func (u *UVar) RawSet(p Perm, t Type) Scope {
	if u.link != nil {
		panic("typesystem: unification variable set twice")
	}
	if !KindEqual(u.kind, KindOf(t)) {
		panic("typesystem: unification variable set with mismatched kind")
	}
	if ContainsUVar(u, t) {
		panic("typesystem: occurs check failed on unification variable")
	}
	u.link = t
	u.linkPerm = p.Inverse()
	if u.sess != nil {
		u.sess.log.Debug("uvar set", zap.Int64("uvar", int64(u.id)))
		if u.sess.cfg.DebugChecks {
			verifyAcyclic(t, map[*UVar]bool{u: true})
		}
	}
	return u.scope.ApplyPerm(p)
}

// ApplyPerm applies a permutation to the cell, rewriting its scope and
// composing with the permutation every mention reads through.
func (u *UVar) ApplyPerm(p Perm) {
	if p.IsIdentity() {
		return
	}
	u.scope = u.scope.ApplyPerm(p)
	u.linkPerm = u.linkPerm.Compose(p)
}

// FilterScope shrinks the cell's scope to those rigid variables bound at or
// below targetLevel or accepted by pred. The caller guarantees that no
// eliminated variable occurs in the cell's contents; violating that is a
// scope escape the caller must have detected already.
func (u *UVar) FilterScope(targetLevel int, pred func(*TVar) bool) Scope {
	before := u.scope.Size()
	u.scope = u.scope.filter(func(v *TVar) bool {
		return v.level <= targetLevel || pred(v)
	})
	if u.sess != nil && u.scope.Size() != before {
		u.sess.log.Debug("uvar scope narrowed",
			zap.Int64("uvar", int64(u.id)),
			zap.Int("dropped", before-u.scope.Size()))
	}
	return u.scope
}

// Fix promotes an unset cell to a fresh rigid variable of the same kind,
// bound at the cell's level. After Fix, reading the cell yields the rigid.
// Promotion happens at generalization boundaries.
func (s *Session) Fix(u *UVar) *TVar {
	if u.link != nil {
		panic("typesystem: cannot fix a set unification variable")
	}
	v := s.FreshTVar("", u.kind, u.scope.Level())
	u.link = VarType(v)
	s.log.Debug("uvar fixed",
		zap.Int64("uvar", int64(u.id)),
		zap.Int64("tvar", int64(v.id)))
	return v
}

// ContainsUVar reports whether t mentions the cell u, looking through set
// cells. This is the type-level occurs check.
func ContainsUVar(u *UVar, t Type) bool {
	switch t := t.(type) {
	case tUVar:
		if t.u == u {
			return true
		}
		if t.u.link != nil {
			return ContainsUVar(u, t.u.link)
		}
		return false
	case tVar, tEffect:
		return false
	case tEffrow:
		return t.end != nil && ContainsUVar(u, t.end)
	case tPureArrow:
		return containsUVarScheme(u, t.arg) || ContainsUVar(u, t.ret)
	case tArrow:
		return containsUVarScheme(u, t.arg) || ContainsUVar(u, t.ret) || ContainsUVar(u, t.eff)
	case tHandler:
		return ContainsUVar(u, t.cap) ||
			ContainsUVar(u, t.in) || ContainsUVar(u, t.inEff) ||
			ContainsUVar(u, t.out) || ContainsUVar(u, t.outEff)
	case tLabel:
		return ContainsUVar(u, t.eff) || ContainsUVar(u, t.delim) || ContainsUVar(u, t.delimEff)
	case tApp:
		return ContainsUVar(u, t.fn) || ContainsUVar(u, t.arg)
	default:
		return false
	}
}

func containsUVarScheme(u *UVar, sch Scheme) bool {
	for _, ns := range sch.Named {
		if containsUVarScheme(u, ns.Scheme) {
			return true
		}
	}
	return ContainsUVar(u, sch.Body)
}

// verifyAcyclic walks t and panics if a set cell is reachable from its own
// contents. Enabled by config.DebugChecks only; well-formed states never
// contain cycles because RawSet checks occurrences first.
func verifyAcyclic(t Type, on map[*UVar]bool) {
	switch t := t.(type) {
	case tUVar:
		if t.u.link == nil {
			return
		}
		if on[t.u] {
			panic("typesystem: cyclic unification variable detected")
		}
		on[t.u] = true
		verifyAcyclic(t.u.link, on)
		delete(on, t.u)
	case tEffrow:
		if t.end != nil {
			verifyAcyclic(t.end, on)
		}
	case tPureArrow:
		verifyAcyclicScheme(t.arg, on)
		verifyAcyclic(t.ret, on)
	case tArrow:
		verifyAcyclicScheme(t.arg, on)
		verifyAcyclic(t.ret, on)
		verifyAcyclic(t.eff, on)
	case tHandler:
		verifyAcyclic(t.cap, on)
		verifyAcyclic(t.in, on)
		verifyAcyclic(t.inEff, on)
		verifyAcyclic(t.out, on)
		verifyAcyclic(t.outEff, on)
	case tLabel:
		verifyAcyclic(t.eff, on)
		verifyAcyclic(t.delim, on)
		verifyAcyclic(t.delimEff, on)
	case tApp:
		verifyAcyclic(t.fn, on)
		verifyAcyclic(t.arg, on)
	}
}

func verifyAcyclicScheme(sch Scheme, on map[*UVar]bool) {
	for _, ns := range sch.Named {
		verifyAcyclicScheme(ns.Scheme, on)
	}
	verifyAcyclic(sch.Body, on)
}
