package typesystem

import (
	"github.com/funvibe/tova/internal/ident"
	"github.com/hashicorp/go-set/v3"
)

// NamedTVar is a universally quantified type argument: a binder name paired
// with the rigid variable it binds.
type NamedTVar struct {
	Name TName
	Var  *TVar
}

// NamedScheme is a named value parameter carrying its own scheme. Named
// parameters are what make implicit and method parameters polymorphic at
// higher rank.
type NamedScheme struct {
	Name   Name
	Scheme Scheme
}

// Scheme is a polymorphic type scheme: quantified type arguments, named
// value parameters, and a monomorphic body.
type Scheme struct {
	TArgs []NamedTVar
	Named []NamedScheme
	Body  Type
}

// SchemeOfType wraps a type in a scheme with no quantification.
func SchemeOfType(t Type) Scheme {
	return Scheme{Body: t}
}

// IsMonomorphic reports whether the scheme quantifies nothing.
func (sch Scheme) IsMonomorphic() bool {
	return len(sch.TArgs) == 0 && len(sch.Named) == 0
}

// Refresh alpha-renames every bound type argument of the scheme to a fresh
// rigid variable and substitutes accordingly. It is the only way to
// instantiate a scheme safely: the returned binders are distinct from those
// of every scheme observed before.
func (s *Session) Refresh(sch Scheme) Scheme {
	if len(sch.TArgs) == 0 {
		return sch
	}
	sub := NewSubst()
	targs := make([]NamedTVar, len(sch.TArgs))
	for i, ta := range sch.TArgs {
		fresh := s.CloneTVar(ta.Var)
		sub = sub.RenameToFresh(ta.Var, fresh)
		targs[i] = NamedTVar{Name: ta.Name, Var: fresh}
	}
	named := make([]NamedScheme, len(sch.Named))
	for i, ns := range sch.Named {
		named[i] = sub.ApplyToNamedScheme(ns)
	}
	return Scheme{TArgs: targs, Named: named, Body: sub.ApplyToType(sch.Body)}
}

// RefreshCtorDecl alpha-renames the existential type arguments of a
// constructor declaration.
func (s *Session) RefreshCtorDecl(c CtorDecl) CtorDecl {
	if len(c.TArgs) == 0 {
		return c
	}
	sub := NewSubst()
	targs := make([]NamedTVar, len(c.TArgs))
	for i, ta := range c.TArgs {
		fresh := s.CloneTVar(ta.Var)
		sub = sub.RenameToFresh(ta.Var, fresh)
		targs[i] = NamedTVar{Name: ta.Name, Var: fresh}
	}
	named := make([]NamedScheme, len(c.Named))
	for i, ns := range c.Named {
		named[i] = sub.ApplyToNamedScheme(ns)
	}
	args := make([]Scheme, len(c.ArgSchemes))
	for i, a := range c.ArgSchemes {
		args[i] = sub.ApplyToScheme(a)
	}
	return CtorDecl{Name: c.Name, TArgs: targs, Named: named, ArgSchemes: args}
}

// CollectUVars adds every unification variable free in t to acc, looking
// through set cells.
func CollectUVars(t Type, acc *set.Set[*UVar]) {
	switch t := t.(type) {
	case tUVar:
		if t.u.link != nil {
			CollectUVars(t.u.link, acc)
			return
		}
		acc.Insert(t.u)
	case tVar, tEffect:
	case tEffrow:
		if t.end != nil {
			CollectUVars(t.end, acc)
		}
	case tPureArrow:
		CollectSchemeUVars(t.arg, acc)
		CollectUVars(t.ret, acc)
	case tArrow:
		CollectSchemeUVars(t.arg, acc)
		CollectUVars(t.ret, acc)
		CollectUVars(t.eff, acc)
	case tHandler:
		CollectUVars(t.cap, acc)
		CollectUVars(t.in, acc)
		CollectUVars(t.inEff, acc)
		CollectUVars(t.out, acc)
		CollectUVars(t.outEff, acc)
	case tLabel:
		CollectUVars(t.eff, acc)
		CollectUVars(t.delim, acc)
		CollectUVars(t.delimEff, acc)
	case tApp:
		CollectUVars(t.fn, acc)
		CollectUVars(t.arg, acc)
	}
}

// CollectSchemeUVars adds every unification variable free in the scheme to
// acc.
func CollectSchemeUVars(sch Scheme, acc *set.Set[*UVar]) {
	for _, ns := range sch.Named {
		CollectSchemeUVars(ns.Scheme, acc)
	}
	CollectUVars(sch.Body, acc)
}

// UVars returns the unification variables free in the scheme.
func (sch Scheme) UVars() []*UVar {
	acc := set.New[*UVar](0)
	CollectSchemeUVars(sch, acc)
	return acc.Slice()
}

// CtorDecl is a data-constructor declaration: existential type arguments,
// named parameters, and the schemes of the regular parameters.
type CtorDecl struct {
	Name       string
	TArgs      []NamedTVar
	Named      []NamedScheme
	ArgSchemes []Scheme
}

// FindCtor returns the index of the first constructor with the given name.
func FindCtor(ctors []CtorDecl, name string) (int, bool) {
	for i, c := range ctors {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// DataDef is a data definition: an algebraic data type or a label.
type DataDef interface {
	dataDef()
}

// DataADT is an algebraic data type definition. Proof identifies the
// computationally irrelevant shape-proof variable the elaborator threads
// through pattern matches. StrictlyPositive records the positivity analysis
// result: such types may be deconstructed in pure contexts.
type DataADT struct {
	Proof            ident.ID
	Args             []NamedTVar
	Ctors            []CtorDecl
	StrictlyPositive bool
}

// DataLabel is a label definition: the effect variable the label delimits,
// the run-time label variable, and the delimiter type and effects.
type DataLabel struct {
	TVar     *TVar
	Var      ident.ID
	DelimTp  Type
	DelimEff Type
}

func (DataADT) dataDef() {}
func (DataLabel) dataDef() {}
