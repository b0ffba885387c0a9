package typesystem

import (
	"github.com/funvibe/tova/internal/config"
	"github.com/funvibe/tova/internal/ident"
)

// Built-in rigid variables. They are allocated once, carry reserved
// identifiers, and live for the whole process; every session's initial
// scope contains them.
var (
	BuiltinInt    = &TVar{id: ident.Reserved(1), name: config.IntTypeName, kind: TypeKind}
	BuiltinInt64  = &TVar{id: ident.Reserved(2), name: config.Int64TypeName, kind: TypeKind}
	BuiltinString = &TVar{id: ident.Reserved(3), name: config.StringTypeName, kind: TypeKind}
	BuiltinChar   = &TVar{id: ident.Reserved(4), name: config.CharTypeName, kind: TypeKind}
	BuiltinUnit   = &TVar{id: ident.Reserved(5), name: config.UnitTypeName, kind: TypeKind}

	// IOEffect is the built-in IO effect; the io row is {IO} closed.
	IOEffect = &TVar{id: ident.Reserved(6), name: config.IOEffectName, kind: EffectKind}
)

// Builtin pairs a built-in type's surface name with its rigid variable.
type Builtin struct {
	Name string
	Var  *TVar
}

// Builtins lists the built-in value types in declaration order.
// The Unit type additionally admits the computationally irrelevant proof
// term (core.EUnitPrf).
var Builtins = []Builtin{
	{config.IntTypeName, BuiltinInt},
	{config.Int64TypeName, BuiltinInt64},
	{config.StringTypeName, BuiltinString},
	{config.CharTypeName, BuiltinChar},
	{config.UnitTypeName, BuiltinUnit},
}

// LookupBuiltin resolves a built-in value type by name.
func LookupBuiltin(name string) (*TVar, bool) {
	for _, b := range Builtins {
		if b.Name == name {
			return b.Var, true
		}
	}
	return nil, false
}

// Convenience constructors for built-in types.
func IntType() Type { return VarType(BuiltinInt) }
func Int64Type() Type { return VarType(BuiltinInt64) }
func StringType() Type { return VarType(BuiltinString) }
func CharType() Type { return VarType(BuiltinChar) }
func UnitType() Type { return VarType(BuiltinUnit) }
