package typesystem

import (
	"fmt"

	"github.com/funvibe/tova/internal/ident"
	"go.uber.org/zap"
)

// Kind represents the "type of a type".
// * is the kind of value types, effect is the kind of closed ground effects,
// effrow is the kind of effect rows, and arrows classify type constructors.
type Kind interface {
	String() string
	kindNode()
}

// KType is the kind of value types (*).
type KType struct{}

// KEffect is the kind of closed ground effects.
type KEffect struct{}

// KEffrow is the kind of effect rows.
type KEffrow struct{}

// KArrow is the kind of type constructors (k1 -> k2).
// The codomain of an arrow is always non-effect.
type KArrow struct {
	Left  Kind
	Right Kind
}

// KVar is a kind unification variable: a one-shot mutable cell with an
// optional non-effect constraint. Setting a constrained cell to an effect
// kind is refused.
type KVar struct {
	id        ident.ID
	nonEffect bool
	link      Kind
	sess      *Session
}

func (KType) kindNode() {}
func (KEffect) kindNode() {}
func (KEffrow) kindNode() {}
func (KArrow) kindNode() {}
func (*KVar) kindNode() {}

func (KType) String() string { return "*" }
func (KEffect) String() string { return "effect" }
func (KEffrow) String() string { return "effrow" }

func (k KArrow) String() string {
	return fmt.Sprintf("(%s -> %s)", k.Left, k.Right)
}

// Kind singletons.
var (
	TypeKind   Kind = KType{}
	EffectKind Kind = KEffect{}
	EffrowKind Kind = KEffrow{}
)

// FreshKindVar allocates an unset kind variable, optionally carrying the
// non-effect constraint.
func (s *Session) FreshKindVar(nonEffect bool) *KVar {
	return &KVar{id: s.ids.Fresh(), nonEffect: nonEffect, sess: s}
}

// ID returns the unique identifier of the kind variable.
func (u *KVar) ID() ident.ID { return u.id }

// NonEffect reports whether the non-effect constraint is set on the cell.
func (u *KVar) NonEffect() bool { return u.nonEffect }

// IsSet reports whether the kind variable has been linked to a kind.
func (u *KVar) IsSet() bool { return u.link != nil }

// KindView follows links through set kind variables and returns the head.
// An unset kind variable is returned as-is.
func KindView(k Kind) Kind {
	for {
		u, ok := k.(*KVar)
		if !ok || u.link == nil {
			return k
		}
		k = u.link
	}
}

// ContainsKindVar reports whether k transitively contains the kind variable u.
func ContainsKindVar(u *KVar, k Kind) bool {
	switch k := KindView(k).(type) {
	case *KVar:
		return k == u
	case KArrow:
		return ContainsKindVar(u, k.Left) || ContainsKindVar(u, k.Right)
	default:
		return false
	}
}

// Set links the kind variable to k. It returns false when the cell carries
// the non-effect constraint and k is an effect kind; that is the only
// recoverable failure. Setting an already-set cell or creating a cycle is an
// internal invariant violation and panics.
func (u *KVar) Set(k Kind) bool {
	if u.link != nil {
		panic("typesystem: kind variable set twice")
	}
	if ContainsKindVar(u, k) {
		panic("typesystem: occurs check failed on kind variable")
	}
	if u.nonEffect && !SetNonEffect(k) {
		return false
	}
	u.link = k
	if u.sess != nil {
		u.sess.log.Debug("kvar set", zap.Int64("kvar", int64(u.id)), zap.String("kind", k.String()))
	}
	return true
}

// SetSafe links the kind variable to k, which the caller guarantees to be
// non-effect. The guarantee is re-checked and a violation panics.
func (u *KVar) SetSafe(k Kind) {
	if !SetNonEffect(k) {
		panic("typesystem: SetSafe with effect kind " + k.String())
	}
	u.Set(k)
}

// IsNonEffect reports whether k is known to be a non-effect kind.
// For an unset kind variable this is the state of its constraint flag.
func IsNonEffect(k Kind) bool {
	switch k := KindView(k).(type) {
	case KType, KArrow:
		return true
	case *KVar:
		return k.nonEffect
	default:
		return false
	}
}

// IsEffectKind reports whether k is effect or effrow.
func IsEffectKind(k Kind) bool {
	switch KindView(k).(type) {
	case KEffect, KEffrow:
		return true
	default:
		return false
	}
}

// SetNonEffect walks k to its head and imposes the non-effect constraint:
// a concrete non-effect head yields true, an effect head yields false, and an
// unset kind variable gets its constraint flag turned on. Idempotent.
func SetNonEffect(k Kind) bool {
	switch k := KindView(k).(type) {
	case KType, KArrow:
		return true
	case *KVar:
		k.nonEffect = true
		return true
	default:
		return false
	}
}

// NewKArrow builds the kind k1 -> k2, imposing the non-effect constraint on
// the codomain. An effect codomain is an internal invariant violation.
func NewKArrow(k1, k2 Kind) Kind {
	if !SetNonEffect(k2) {
		panic("typesystem: arrow kind with effect codomain " + k2.String())
	}
	return KArrow{Left: k1, Right: k2}
}

// NewKArrows builds the kind k1 -> ... -> kn -> ret.
func NewKArrows(args []Kind, ret Kind) Kind {
	k := ret
	for i := len(args) - 1; i >= 0; i-- {
		k = NewKArrow(args[i], k)
	}
	return k
}

// KindEqual reports structural equality of two kinds after following links.
// Unset kind variables are equal only to themselves.
func KindEqual(k1, k2 Kind) bool {
	k1, k2 = KindView(k1), KindView(k2)
	switch k1 := k1.(type) {
	case KType:
		_, ok := k2.(KType)
		return ok
	case KEffect:
		_, ok := k2.(KEffect)
		return ok
	case KEffrow:
		_, ok := k2.(KEffrow)
		return ok
	case KArrow:
		a2, ok := k2.(KArrow)
		return ok && KindEqual(k1.Left, a2.Left) && KindEqual(k1.Right, a2.Right)
	case *KVar:
		return k1 == k2
	default:
		return false
	}
}
