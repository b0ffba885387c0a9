package config

// IsTestMode indicates if the program is running in test mode.
// Printers normalize fresh variable ids (t?, k?, u?) when set, so that
// golden output does not depend on allocation order.
var IsTestMode = false

// Built-in type names
const (
	IntTypeName    = "Int"
	Int64TypeName  = "Int64"
	StringTypeName = "String"
	CharTypeName   = "Char"
	UnitTypeName   = "Unit"
)

// Built-in effect names
const (
	IOEffectName = "IO"
)
