package typesystem

import (
	"github.com/benbjohnson/immutable"
	"github.com/funvibe/tova/internal/ident"
)

// idComparer orders scope members by identifier.
type idComparer struct{}

func (idComparer) Compare(a, b interface{}) int {
	x, y := a.(ident.ID), b.(ident.ID)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

var emptyScopeMap = immutable.NewSortedMap(idComparer{})

// Scope is the set of rigid variables legally mentionable in a type,
// together with a monotone level. Scopes extend append-only; extension
// shares structure with the parent, so the many unification variables
// holding a scope cost nothing extra.
//
// The zero value is the empty scope at level 0.
type Scope struct {
	vars  *immutable.SortedMap
	level int
}

// InitialScope returns the scope containing exactly the built-in variables,
// at level 0.
func InitialScope() Scope {
	m := emptyScopeMap
	for _, b := range Builtins {
		m = m.Set(b.Var.id, b.Var)
	}
	m = m.Set(IOEffect.id, IOEffect)
	return Scope{vars: m}
}

func (s Scope) members() *immutable.SortedMap {
	if s.vars == nil {
		return emptyScopeMap
	}
	return s.vars
}

// Add extends the scope with v. Adding a variable already present returns
// the scope unchanged.
func (s Scope) Add(v *TVar) Scope {
	m := s.members()
	if _, ok := m.Get(v.id); ok {
		return s
	}
	return Scope{vars: m.Set(v.id, v), level: s.level}
}

// Mem reports whether v was added along the scope chain.
func (s Scope) Mem(v *TVar) bool {
	_, ok := s.members().Get(v.id)
	return ok
}

// Level returns the number of level increments performed along the chain.
func (s Scope) Level() int { return s.level }

// IncrLevel returns a scope that differs from s only in the level. It opens
// a fresh region during generalization and let-binding.
func (s Scope) IncrLevel() Scope {
	return Scope{vars: s.members(), level: s.level + 1}
}

// ApplyPerm rewrites every member of the scope through the permutation.
func (s Scope) ApplyPerm(p Perm) Scope {
	if p.IsIdentity() {
		return s
	}
	m := emptyScopeMap
	it := s.members().Iterator()
	for !it.Done() {
		_, v := it.Next()
		w := p.Apply(v.(*TVar))
		m = m.Set(w.id, w)
	}
	return Scope{vars: m, level: s.level}
}

// Members returns the scope's variables in ascending identifier order.
func (s Scope) Members() []*TVar {
	out := make([]*TVar, 0, s.members().Len())
	it := s.members().Iterator()
	for !it.Done() {
		_, v := it.Next()
		out = append(out, v.(*TVar))
	}
	return out
}

// Size returns the number of variables in the scope.
func (s Scope) Size() int { return s.members().Len() }

// SubsetOf reports whether every member of s is a member of o.
func (s Scope) SubsetOf(o Scope) bool {
	it := s.members().Iterator()
	for !it.Done() {
		_, v := it.Next()
		if !o.Mem(v.(*TVar)) {
			return false
		}
	}
	return true
}

// filter returns the scope restricted to members satisfying keep.
func (s Scope) filter(keep func(*TVar) bool) Scope {
	m := s.members()
	it := m.Iterator()
	for !it.Done() {
		_, raw := it.Next()
		v := raw.(*TVar)
		if !keep(v) {
			m = m.Delete(v.id)
		}
	}
	return Scope{vars: m, level: s.level}
}

// AddNamed binds a fresh named rigid variable at the scope's level and
// returns the extended scope together with the variable.
func (sess *Session) AddNamed(s Scope, name string, kind Kind) (Scope, *TVar) {
	v := sess.FreshTVar(name, kind, s.level)
	return s.Add(v), v
}
