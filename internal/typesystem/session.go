// Package typesystem implements the type representation of the Tova checker:
// kinds, rigid type variables, scopes, permutations, unification variables,
// type terms with their views, substitution, schemes, and effect rows.
//
// The package is the foundation the inference engine is built on. Types are
// inspected only through View, Whnf and ViewRow; the concrete term
// representation is private so that no caller can produce an ill-kinded type.
package typesystem

import (
	"github.com/funvibe/tova/internal/config"
	"github.com/funvibe/tova/internal/diagnostics"
	"github.com/funvibe/tova/internal/ident"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session owns the mutable state of one inference run: the identifier supply,
// the diagnostics reporter, and every variable cell allocated through it.
//
// Sessions are single-threaded. Running two sessions concurrently is fine as
// long as they share no cells; everything a session allocates stays inside it.
type Session struct {
	id    uuid.UUID
	ids   *ident.Supply
	cfg   *config.Config
	log   *zap.Logger
	diags *diagnostics.Reporter
}

// NewSession creates a session with default configuration and a no-op logger.
func NewSession() *Session {
	id := uuid.New()
	cfg := config.Default()
	return &Session{
		id:    id,
		ids:   ident.NewSupply(),
		cfg:   cfg,
		log:   zap.NewNop(),
		diags: diagnostics.NewReporter(id, cfg.MaxErrors),
	}
}

// SetConfig replaces the session configuration. Call before inference starts;
// the diagnostics cap is re-read from the new config.
func (s *Session) SetConfig(cfg *config.Config) {
	s.cfg = cfg
	s.diags = diagnostics.NewReporter(s.id, cfg.MaxErrors)
}

// SetLogger installs a logger for debug events (uvar writes, scope
// narrowing, kind-variable writes).
func (s *Session) SetLogger(l *zap.Logger) {
	s.log = l.With(zap.String("session", s.id.String()))
}

// ID returns the session identity.
func (s *Session) ID() uuid.UUID { return s.id }

// Diags returns the session's diagnostics reporter.
func (s *Session) Diags() *diagnostics.Reporter { return s.diags }

// ReportEscape records a scope-escape error for the rigid variable v, as
// returned by TryShrinkScope.
func (s *Session) ReportEscape(pos *diagnostics.Position, v *TVar) {
	s.diags.Reportf(diagnostics.Error, pos, diagnostics.ErrT002,
		"type variable '%s' escapes its scope", tvarString(v))
}

// ReportKindConflict records a kind mismatch between what was expected and
// what user code supplied.
func (s *Session) ReportKindConflict(pos *diagnostics.Position, want, got Kind) {
	s.diags.Reportf(diagnostics.Error, pos, diagnostics.ErrT001,
		"kind mismatch: expected %s, got %s", want, got)
}

// ReportNonEffect records a use of an effect kind where a value kind is
// required, as refused by KVar.Set.
func (s *Session) ReportNonEffect(pos *diagnostics.Position, got Kind) {
	s.diags.Reportf(diagnostics.Error, pos, diagnostics.ErrT003,
		"effect kind %s used where a value kind is required", got)
}

// ReportOccurs records an occurs-check failure for the cell u, as detected
// by ContainsUVar before a set.
func (s *Session) ReportOccurs(pos *diagnostics.Position, u *UVar) {
	s.diags.Reportf(diagnostics.Error, pos, diagnostics.ErrT004,
		"cannot construct the infinite type %s", uvarString(u))
}

// ReportNonPositive records a strict-positivity failure when a recursive
// data type is deconstructed in a pure context.
func (s *Session) ReportNonPositive(pos *diagnostics.Position, name string) {
	s.diags.Reportf(diagnostics.Error, pos, diagnostics.ErrT005,
		"recursive type %s is not strictly positive and cannot be matched purely", name)
}
