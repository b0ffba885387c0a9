// Package core defines the typed tree inference produces and the elaborator
// consumes. Nodes carry the types and effect rows assigned during inference;
// the package itself is data-only and performs no evaluation.
package core

import (
	"github.com/funvibe/tova/internal/ident"
	"github.com/funvibe/tova/internal/typesystem"
)

// Var is a term-level variable.
type Var struct {
	ID   ident.ID
	Name string
}

// Program is the root of a typed compilation unit.
type Program = Expr

// Expr is the base interface of all typed expressions.
type Expr interface {
	exprNode()
}

// EUnitPrf is the computationally irrelevant proof term admitted by the
// built-in Unit type.
type EUnitPrf struct{}

// ENum is an integer literal.
type ENum struct {
	Value int64
}

// ENum64 is a 64-bit integer literal.
type ENum64 struct {
	Value int64
}

// EStr is a string literal.
type EStr struct {
	Value string
}

// EChr is a character literal.
type EChr struct {
	Value rune
}

// EVar is a variable occurrence.
type EVar struct {
	Var Var
}

// EPureFn is a function whose body is total and effect-free.
type EPureFn struct {
	Param  Var
	Scheme typesystem.Scheme
	Body   Expr
}

// EFn is a function whose body may perform effects.
type EFn struct {
	Param  Var
	Scheme typesystem.Scheme
	Body   Expr
}

// ETFun is a type function: a binder for a rigid type variable.
type ETFun struct {
	Param *typesystem.TVar
	Body  Expr
}

// EApp is a function application.
type EApp struct {
	Fn  Expr
	Arg Expr
}

// ETApp is a type application.
type ETApp struct {
	Fn  Expr
	Arg typesystem.Type
}

// ELet binds a value in a body.
type ELet struct {
	Name   Var
	Scheme typesystem.Scheme
	Value  Expr
	Body   Expr
}

// ERecDef is one definition of a recursive let group.
type ERecDef struct {
	Name   Var
	Scheme typesystem.Scheme
	Value  Expr
}

// ELetRec binds a group of mutually recursive values in a body.
type ELetRec struct {
	Defs []ERecDef
	Body Expr
}

// EData introduces data definitions in a body.
type EData struct {
	Defs []typesystem.DataDef
	Body Expr
}

// MatchClause is one branch of a pattern match.
type MatchClause struct {
	Pattern Pattern
	Body    Expr
}

// EMatch is a pattern match. A nil Effect denotes a pure match: the subject
// type passed the positivity test and deconstruction needs no effect.
type EMatch struct {
	Subject Expr
	Clauses []MatchClause
	Type    typesystem.Type
	Effect  typesystem.Type
}

// EHandle introduces a handler over a delimited body: it binds the effect
// variable and the capability for Body, runs it at the label's delimiter,
// and returns the handler's output.
type EHandle struct {
	EffectVar *typesystem.TVar
	CapVar    Var
	Label     Expr
	Handler   Expr
	Body      Expr
	Type      typesystem.Type
	Effect    typesystem.Type
}

// EHandler is a first-class handler value.
type EHandler struct {
	EffectVar *typesystem.TVar
	CapVar    Var
	Body      Expr
	Type      typesystem.Type
}

// EEffect performs an effect operation, capturing the delimited continuation
// in Cont while Body computes the operation's result.
type EEffect struct {
	Label Expr
	Cont  Var
	Body  Expr
	Type  typesystem.Type
}

// EExtern is a reference to a runtime-provided value.
type EExtern struct {
	Name string
	Type typesystem.Type
}

// ERepl is the REPL prompt node: Next computes the expression entered at the
// prompt when the runtime asks for it.
type ERepl struct {
	Next   func() Expr
	Type   typesystem.Type
	Effect typesystem.Type
}

// EReplExpr prints the value and type of an evaluated REPL expression and
// continues with the rest of the session.
type EReplExpr struct {
	Expr Expr
	Type typesystem.Type
	Next Expr
}

func (EUnitPrf) exprNode() {}
func (ENum) exprNode() {}
func (ENum64) exprNode() {}
func (EStr) exprNode() {}
func (EChr) exprNode() {}
func (EVar) exprNode() {}
func (EPureFn) exprNode() {}
func (EFn) exprNode() {}
func (ETFun) exprNode() {}
func (EApp) exprNode() {}
func (ETApp) exprNode() {}
func (ELet) exprNode() {}
func (ELetRec) exprNode() {}
func (EData) exprNode() {}
func (EMatch) exprNode() {}
func (EHandle) exprNode() {}
func (EHandler) exprNode() {}
func (EEffect) exprNode() {}
func (EExtern) exprNode() {}
func (ERepl) exprNode() {}
func (EReplExpr) exprNode() {}

// Pattern is the base interface of match patterns.
type Pattern interface {
	patternNode()
}

// PWildcard matches anything.
type PWildcard struct{}

// PVar binds the matched value.
type PVar struct {
	Var Var
}

// PCtor matches a constructor: the 0-based index identifies the constructor
// within its data definition, TVars bind the existential type arguments,
// Named bind the named parameters, and Args match the regular parameters.
type PCtor struct {
	Name  string
	Index int
	TVars []*typesystem.TVar
	Named []Var
	Args  []Pattern
}

func (PWildcard) patternNode() {}
func (PVar) patternNode() {}
func (PCtor) patternNode() {}
