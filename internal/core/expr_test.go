package core

import (
	"testing"

	"github.com/funvibe/tova/internal/ident"
	"github.com/funvibe/tova/internal/typesystem"
)

// Build a small typed program the way inference would: data, a recursive
// function over it, and a pure match. The tree is data-only; this exercises
// the node shapes the elaborator relies on.
func TestTypedTreeShapes(t *testing.T) {
	s := typesystem.NewSession()
	ids := ident.NewSupply()

	a := s.FreshTVar("a", typesystem.TypeKind, 0)
	list := s.FreshTVar("List", typesystem.NewKArrow(typesystem.TypeKind, typesystem.TypeKind), 0)
	listA := typesystem.AppType(typesystem.VarType(list), typesystem.VarType(a))

	ctors := []typesystem.CtorDecl{
		{Name: "Nil"},
		{Name: "Cons", ArgSchemes: []typesystem.Scheme{
			typesystem.SchemeOfType(typesystem.VarType(a)),
			typesystem.SchemeOfType(listA),
		}},
	}
	def := typesystem.DataADT{
		Proof:            ids.Fresh(),
		Args:             []typesystem.NamedTVar{{Name: typesystem.TNVar{Name: "a"}, Var: a}},
		Ctors:            ctors,
		StrictlyPositive: true,
	}

	xs := Var{ID: ids.Fresh(), Name: "xs"}
	head := Var{ID: ids.Fresh(), Name: "h"}

	idx, ok := typesystem.FindCtor(ctors, "Cons")
	if !ok || idx != 1 {
		t.Fatalf("FindCtor(Cons) = (%d, %v), want (1, true)", idx, ok)
	}

	// match xs with Nil -> 0 | Cons h _ -> 1, a pure match on a positive ADT.
	match := EMatch{
		Subject: EVar{Var: xs},
		Clauses: []MatchClause{
			{Pattern: PCtor{Name: "Nil", Index: 0}, Body: ENum{Value: 0}},
			{Pattern: PCtor{Name: "Cons", Index: idx,
				Args: []Pattern{PVar{Var: head}, PWildcard{}}},
				Body: ENum{Value: 1}},
		},
		Type:   typesystem.IntType(),
		Effect: nil, // pure deconstruction
	}

	var program Program = EData{
		Defs: []typesystem.DataDef{def},
		Body: ELet{
			Name:   Var{ID: ids.Fresh(), Name: "n"},
			Scheme: typesystem.SchemeOfType(typesystem.IntType()),
			Value:  match,
			Body:   EVar{Var: xs},
		},
	}

	data, ok := program.(EData)
	if !ok {
		t.Fatalf("program = %T, want EData", program)
	}
	adt, ok := data.Defs[0].(typesystem.DataADT)
	if !ok || !adt.StrictlyPositive {
		t.Error("the ADT definition must carry its positivity flag")
	}
	let := data.Body.(ELet)
	if let.Value.(EMatch).Effect != nil {
		t.Error("a pure match has no effect")
	}
}

func TestHandlerNodes(t *testing.T) {
	s := typesystem.NewSession()
	ids := ident.NewSupply()

	e := s.FreshTVar("e", typesystem.EffectKind, 0)
	capVar := Var{ID: ids.Fresh(), Name: "emit"}
	k := Var{ID: ids.Fresh(), Name: "k"}

	handler := EHandler{
		EffectVar: e,
		CapVar:    capVar,
		Body:      EUnitPrf{},
		Type: typesystem.HandlerType(e,
			typesystem.UnitType(),
			typesystem.IntType(), typesystem.PureEffrow(),
			typesystem.IntType(), typesystem.IOEffrow()),
	}

	op := EEffect{
		Label: EVar{Var: Var{ID: ids.Fresh(), Name: "l"}},
		Cont:  k,
		Body:  EUnitPrf{},
		Type:  typesystem.UnitType(),
	}

	if _, ok := any(handler).(Expr); !ok {
		t.Error("EHandler must be an expression")
	}
	if op.Cont != k {
		t.Error("the effect operation must capture its continuation variable")
	}
}

func TestReplNodes(t *testing.T) {
	next := ERepl{
		Next:   func() Expr { return EUnitPrf{} },
		Type:   typesystem.UnitType(),
		Effect: typesystem.IOEffrow(),
	}
	if got := next.Next(); got != (EUnitPrf{}) {
		t.Error("the prompt thunk must produce the entered expression")
	}

	pep := EReplExpr{Expr: EStr{Value: "hello"}, Type: typesystem.StringType(), Next: next}
	if _, ok := pep.Next.(ERepl); !ok {
		t.Error("print-eval-print must continue with the session")
	}
}
