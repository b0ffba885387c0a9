package typesystem

import (
	"github.com/funvibe/tova/internal/ident"
)

// TVar is a rigid (skolem) type variable. Rigid variables are introduced by
// binders, compared by identity, and never mutated. The level records where
// along the scope chain the variable was bound; it is used by scope
// narrowing to decide which variables may stay.
type TVar struct {
	id    ident.ID
	name  string
	kind  Kind
	level int
}

// ID returns the unique identifier of the variable.
func (v *TVar) ID() ident.ID { return v.id }

// Name returns the printable name hint of the variable.
func (v *TVar) Name() string { return v.name }

// Kind returns the kind of the variable.
func (v *TVar) Kind() Kind { return v.kind }

// Level returns the scope level at which the variable was bound.
func (v *TVar) Level() int { return v.level }

// FreshTVar allocates a rigid variable bound at the given level.
func (s *Session) FreshTVar(name string, kind Kind, level int) *TVar {
	return &TVar{id: s.ids.Fresh(), name: name, kind: kind, level: level}
}

// CloneTVar allocates a fresh rigid variable with the same name hint, kind,
// and level as v. Used by scheme refreshing.
func (s *Session) CloneTVar(v *TVar) *TVar {
	return &TVar{id: s.ids.Fresh(), name: v.name, kind: v.kind, level: v.level}
}
