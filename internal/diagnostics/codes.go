package diagnostics

// ErrorCode identifies a class of diagnostic. Codes are stable and appear in
// user-facing output; messages may change freely.
type ErrorCode string

// Type-checker error codes.
const (
	// ErrT001: attempt to equate kinds that cannot be made equal, or to
	// build a type whose argument kinds mismatch.
	ErrT001 ErrorCode = "T001" // kind conflict

	// ErrT002: a rigid type variable appears outside its binding scope.
	ErrT002 ErrorCode = "T002" // scope escape

	// ErrT003: an effect kind used where a value kind is required.
	ErrT003 ErrorCode = "T003" // non-effect constraint violation

	// ErrT004: a unification variable would be set to a type containing
	// itself.
	ErrT004 ErrorCode = "T004" // occurs check

	// ErrT005: a recursive data type deconstructed in a pure context fails
	// the positivity test.
	ErrT005 ErrorCode = "T005" // strict positivity failure
)

// Internal error codes.
const (
	// ErrI001: corrupted session state or other unrecoverable condition.
	ErrI001 ErrorCode = "I001"
)
