package typesystem

// Perm is a finite partial permutation over rigid type variables: a bijection
// between two finite sets of variables, undefined everywhere else. Applying a
// permutation to a variable outside its domain leaves the variable unchanged.
//
// Permutations are attached, delayed, to every unification-variable mention;
// the forward and inverse maps are kept together so composition and
// inversion stay O(1) per entry.
//
// The zero value is the identity permutation.
type Perm struct {
	fwd map[*TVar]*TVar
	inv map[*TVar]*TVar
}

// IdPerm returns the identity permutation.
func IdPerm() Perm { return Perm{} }

// SwapPerm returns the permutation exchanging a and b.
func SwapPerm(a, b *TVar) Perm {
	if a == b {
		return Perm{}
	}
	return Perm{
		fwd: map[*TVar]*TVar{a: b, b: a},
		inv: map[*TVar]*TVar{b: a, a: b},
	}
}

// IsIdentity reports whether the permutation maps every variable to itself.
// Fixpoints are never stored, so this is an emptiness test.
func (p Perm) IsIdentity() bool { return len(p.fwd) == 0 }

// Apply maps v through the permutation. Variables outside the domain are
// returned unchanged.
func (p Perm) Apply(v *TVar) *TVar {
	if w, ok := p.fwd[v]; ok {
		return w
	}
	return v
}

// Preimage maps v through the inverse permutation.
func (p Perm) Preimage(v *TVar) *TVar {
	if w, ok := p.inv[v]; ok {
		return w
	}
	return v
}

// Inverse returns the inverse permutation.
func (p Perm) Inverse() Perm {
	return Perm{fwd: p.inv, inv: p.fwd}
}

// Restrict returns the permutation limited to the variables of the scope.
// Entries whose source lies outside the scope are dropped; a mention outside
// a unification variable's current scope may legally be absent from the
// permutation attached to it.
func (p Perm) Restrict(sc Scope) Perm {
	fwd := make(map[*TVar]*TVar, len(p.fwd))
	inv := make(map[*TVar]*TVar, len(p.fwd))
	for v, w := range p.fwd {
		if sc.Mem(v) {
			fwd[v] = w
			inv[w] = v
		}
	}
	if len(fwd) == 0 {
		return Perm{}
	}
	return Perm{fwd: fwd, inv: inv}
}

// Compose returns the left-to-right composition p;q, the permutation that
// first applies p and then q.
func (p Perm) Compose(q Perm) Perm {
	if len(p.fwd) == 0 {
		return q
	}
	if len(q.fwd) == 0 {
		return p
	}
	fwd := make(map[*TVar]*TVar, len(p.fwd)+len(q.fwd))
	for v, w := range p.fwd {
		fwd[v] = q.Apply(w)
	}
	for v, w := range q.fwd {
		if _, ok := p.fwd[v]; !ok {
			fwd[v] = w
		}
	}
	inv := make(map[*TVar]*TVar, len(fwd))
	for v, w := range fwd {
		if v == w {
			delete(fwd, v)
			continue
		}
		inv[w] = v
	}
	if len(fwd) == 0 {
		return Perm{}
	}
	return Perm{fwd: fwd, inv: inv}
}
