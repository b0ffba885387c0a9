package typesystem

import (
	"testing"
)

func TestSwapPerm(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	b := s.FreshTVar("b", TypeKind, 0)
	c := s.FreshTVar("c", TypeKind, 0)

	p := SwapPerm(a, b)
	if p.Apply(a) != b || p.Apply(b) != a {
		t.Error("swap must exchange a and b")
	}
	if p.Apply(c) != c {
		t.Error("variables outside the domain pass through")
	}
	if p.IsIdentity() {
		t.Error("a swap is not the identity")
	}
	if SwapPerm(a, a).IsIdentity() != true {
		t.Error("swapping a variable with itself is the identity")
	}
}

func TestPermInverse(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	b := s.FreshTVar("b", TypeKind, 0)

	p := SwapPerm(a, b)
	inv := p.Inverse()
	if inv.Apply(p.Apply(a)) != a || inv.Apply(p.Apply(b)) != b {
		t.Error("p.Inverse undoes p")
	}
	if p.Preimage(b) != a {
		t.Error("Preimage(b) = a for a swap")
	}
}

func TestComposeLeftToRight(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	b := s.FreshTVar("b", TypeKind, 0)
	c := s.FreshTVar("c", TypeKind, 0)

	p := SwapPerm(a, b)
	q := SwapPerm(b, c)
	pq := p.Compose(q)

	// p;q applies p first: a -> b -> c.
	if got := pq.Apply(a); got != c {
		t.Errorf("(p;q)(a) = %s, want c", got.Name())
	}
	if got := pq.Apply(b); got != a {
		t.Errorf("(p;q)(b) = %s, want a", got.Name())
	}
	if got := pq.Apply(c); got != b {
		t.Errorf("(p;q)(c) = %s, want b", got.Name())
	}

	// Composition is not commutative.
	qp := q.Compose(p)
	if qp.Apply(a) == pq.Apply(a) && qp.Apply(c) == pq.Apply(c) {
		t.Error("q;p must differ from p;q on these swaps")
	}
}

func TestComposeCancellation(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	b := s.FreshTVar("b", TypeKind, 0)

	p := SwapPerm(a, b)
	if !p.Compose(p).IsIdentity() {
		t.Error("a swap composed with itself is the identity")
	}
	if !p.Compose(p.Inverse()).IsIdentity() {
		t.Error("p;p^-1 is the identity")
	}
}

func TestComposeWithIdentity(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	b := s.FreshTVar("b", TypeKind, 0)

	p := SwapPerm(a, b)
	if got := IdPerm().Compose(p); got.Apply(a) != b {
		t.Error("id;p = p")
	}
	if got := p.Compose(IdPerm()); got.Apply(a) != b {
		t.Error("p;id = p")
	}
}

func TestRestrict(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	b := s.FreshTVar("b", TypeKind, 0)
	c := s.FreshTVar("c", TypeKind, 0)
	d := s.FreshTVar("d", TypeKind, 0)

	p := SwapPerm(a, b).Compose(SwapPerm(c, d))
	sc := InitialScope().Add(a).Add(b)

	r := p.Restrict(sc)
	if r.Apply(a) != b || r.Apply(b) != a {
		t.Error("entries inside the scope survive restriction")
	}
	if r.Apply(c) != c || r.Apply(d) != d {
		t.Error("entries outside the scope are dropped")
	}
	if !p.Restrict(InitialScope()).IsIdentity() {
		t.Error("restricting away every entry yields the identity")
	}
}

func TestComposeInverseConsistency(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	b := s.FreshTVar("b", TypeKind, 0)
	c := s.FreshTVar("c", TypeKind, 0)
	d := s.FreshTVar("d", TypeKind, 0)

	p := SwapPerm(a, b)
	q := SwapPerm(c, d)
	pq := p.Compose(q)
	for _, v := range []*TVar{a, b, c, d} {
		if pq.Inverse().Apply(pq.Apply(v)) != v {
			t.Fatalf("inverse of a composition must undo it on %s", v.Name())
		}
	}
}
