package typesystem

import (
	"testing"
)

// List a = Nil | Cons a (List a): positive occurrences only, so Cons passes
// against a scope that excludes List.
func TestStrictlyPositiveList(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	list := s.FreshTVar("List", NewKArrow(TypeKind, TypeKind), 0)
	nonrec := InitialScope().Add(a) // List deliberately absent

	cons := CtorDecl{
		Name: "Cons",
		ArgSchemes: []Scheme{
			SchemeOfType(VarType(a)),
			SchemeOfType(AppType(VarType(list), VarType(a))),
		},
	}
	if !StrictlyPositive(nonrec, cons) {
		t.Error("Cons is strictly positive")
	}

	nil_ := CtorDecl{Name: "Nil"}
	if !StrictlyPositive(nonrec, nil_) {
		t.Error("Nil is trivially positive")
	}
}

// Bad a = Bad ((a -> Int) -> Int): a sits in doubly-negative, hence
// positive, position, so the test passes even when a is recursive.
func TestStrictlyPositiveDoubleNegation(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	nonrec := InitialScope() // a treated as the recursive variable

	inner := PureArrowType(SchemeOfType(VarType(a)), IntType())
	bad := CtorDecl{
		Name:       "Bad",
		ArgSchemes: []Scheme{SchemeOfType(PureArrowType(SchemeOfType(inner), IntType()))},
	}
	if !StrictlyPositive(nonrec, bad) {
		t.Error("doubly-negative occurrence is positive")
	}
}

// BadN a = BadN (a -> Int): a in negative position fails when a is the
// recursive variable.
func TestStrictlyPositiveNegativeOccurrence(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	nonrec := InitialScope()

	badN := CtorDecl{
		Name:       "BadN",
		ArgSchemes: []Scheme{SchemeOfType(PureArrowType(SchemeOfType(VarType(a)), IntType()))},
	}
	if StrictlyPositive(nonrec, badN) {
		t.Error("a negative recursive occurrence is not strictly positive")
	}
	// The same constructor passes once a is in the non-recursive scope.
	if !StrictlyPositive(nonrec.Add(a), badN) {
		t.Error("a scoped variable may occur negatively")
	}
}

// Positivity is monotone in the scope: enlarging it preserves the result.
func TestStrictlyPositiveMonotone(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	b := s.FreshTVar("b", TypeKind, 0)
	list := s.FreshTVar("List", NewKArrow(TypeKind, TypeKind), 0)
	nonrec := InitialScope().Add(a)

	ctors := []CtorDecl{
		{Name: "Cons", ArgSchemes: []Scheme{
			SchemeOfType(VarType(a)),
			SchemeOfType(AppType(VarType(list), VarType(a))),
		}},
		{Name: "Wrap", ArgSchemes: []Scheme{
			SchemeOfType(PureArrowType(SchemeOfType(VarType(a)), VarType(a))),
		}},
	}
	for _, c := range ctors {
		if !StrictlyPositive(nonrec, c) {
			t.Fatalf("%s must be positive in the base scope", c.Name)
		}
		bigger := nonrec.Add(b).Add(list)
		if !StrictlyPositive(bigger, c) {
			t.Errorf("%s flipped negative in a larger scope", c.Name)
		}
	}
}

// Neutral application arguments are invariant: a recursive occurrence inside
// one fails regardless of polarity.
func TestStrictlyPositiveAppArgsInvariant(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	f := s.FreshTVar("F", NewKArrow(TypeKind, TypeKind), 0)
	nonrec := InitialScope().Add(f)

	wrap := CtorDecl{
		Name:       "Wrap",
		ArgSchemes: []Scheme{SchemeOfType(AppType(VarType(f), VarType(a)))},
	}
	if StrictlyPositive(nonrec, wrap) {
		t.Error("a recursive variable under an unknown constructor is rejected")
	}
	if !StrictlyPositive(nonrec.Add(a), wrap) {
		t.Error("a scoped variable under a constructor is accepted")
	}
}

// Every unification-variable scope must lie within the non-recursive scope.
func TestStrictlyPositiveUVarScopes(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	nonrec := InitialScope()

	inScope := s.FreshUVar(InitialScope(), TypeKind)
	okCtor := CtorDecl{
		Name:       "Hold",
		ArgSchemes: []Scheme{SchemeOfType(UVarType(IdPerm(), inScope))},
	}
	if !StrictlyPositive(nonrec, okCtor) {
		t.Error("a cell scoped within nonrec is fine")
	}

	outOfScope := s.FreshUVar(InitialScope().Add(a), TypeKind)
	badCtor := CtorDecl{
		Name:       "Hold",
		ArgSchemes: []Scheme{SchemeOfType(UVarType(IdPerm(), outOfScope))},
	}
	if StrictlyPositive(nonrec, badCtor) {
		t.Error("a cell whose scope leaks outside nonrec fails")
	}
	if !StrictlyPositive(nonrec.Add(a), badCtor) {
		t.Error("enlarging nonrec to cover the cell's scope fixes it")
	}
}

// Existential type arguments of the constructor extend the scope.
func TestStrictlyPositiveExistentials(t *testing.T) {
	s := NewSession()
	x := s.FreshTVar("x", TypeKind, 0)
	nonrec := InitialScope()

	pack := CtorDecl{
		Name:       "Pack",
		TArgs:      []NamedTVar{{Name: TNVar{"x"}, Var: x}},
		ArgSchemes: []Scheme{SchemeOfType(PureArrowType(SchemeOfType(VarType(x)), VarType(x)))},
	}
	if !StrictlyPositive(nonrec, pack) {
		t.Error("existential binders are not recursive occurrences")
	}
}

// Named parameters are inputs: their schemes are checked flipped.
func TestStrictlyPositiveNamedParams(t *testing.T) {
	s := NewSession()
	a := s.FreshTVar("a", TypeKind, 0)
	nonrec := InitialScope()

	viaNamed := CtorDecl{
		Name:  "WithDict",
		Named: []NamedScheme{{Name: NImplicit{"dict"}, Scheme: SchemeOfType(VarType(a))}},
	}
	if StrictlyPositive(nonrec, viaNamed) {
		t.Error("a recursive occurrence in a named parameter is negative")
	}
	if !StrictlyPositive(nonrec.Add(a), viaNamed) {
		t.Error("a scoped named-parameter occurrence is fine")
	}
}
