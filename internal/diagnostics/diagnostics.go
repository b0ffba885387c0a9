// Package diagnostics is the error channel of the checker.
//
// Diagnostics are recorded in FIFO order under one of four severities. Fatal
// diagnostics abort the session immediately by raising a distinguished panic
// value (*Abort); Error diagnostics fail the compilation at the end of the
// surrounding phase, when the phase calls AssertNoError. Warnings and notes
// never fail anything.
package diagnostics

import (
	"fmt"

	"github.com/google/uuid"
)

// Severity of a diagnostic.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Position is a source location. Nil positions are allowed; some diagnostics
// (internal invariants, session-level failures) have no source anchor.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p *Position) String() string {
	if p == nil {
		return "<no position>"
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Diagnostic is a single recorded report.
type Diagnostic struct {
	Code     ErrorCode
	Severity Severity
	Pos      *Position
	Message  string
	Session  uuid.UUID
}

func (d *Diagnostic) Error() string {
	if d.Pos == nil {
		return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", d.Pos, d.Severity, d.Code, d.Message)
}

// Abort is the distinguished value raised (via panic) by Fatal reports and by
// AssertNoError when a phase recorded errors. Session drivers recover it at
// the session boundary and tear the session down.
type Abort struct {
	Diag *Diagnostic
}

func (a *Abort) Error() string {
	if a.Diag == nil {
		return "compilation aborted"
	}
	return "compilation aborted: " + a.Diag.Error()
}

// Reporter collects diagnostics for one session.
//
// Report order is preserved. Duplicate reports (same position, code, and
// message) are dropped, so a phase may re-check a node without spamming the
// user. Not safe for concurrent use.
type Reporter struct {
	session    uuid.UUID
	diags      []*Diagnostic
	seen       map[string]bool
	errorCount int
	maxErrors  int
}

// NewReporter creates a reporter for the given session.
// maxErrors caps recorded Error diagnostics; zero means no cap.
func NewReporter(session uuid.UUID, maxErrors int) *Reporter {
	return &Reporter{
		session:   session,
		seen:      make(map[string]bool),
		maxErrors: maxErrors,
	}
}

// Report records a diagnostic. A Fatal severity aborts immediately.
func (r *Reporter) Report(sev Severity, pos *Position, code ErrorCode, msg string) {
	d := &Diagnostic{Code: code, Severity: sev, Pos: pos, Message: msg, Session: r.session}
	if sev == Fatal {
		r.diags = append(r.diags, d)
		r.errorCount++
		panic(&Abort{Diag: d})
	}

	key := fmt.Sprintf("%s:%s:%s", pos, code, msg)
	if r.seen[key] {
		return
	}
	r.seen[key] = true

	if sev == Error {
		if r.maxErrors > 0 && r.errorCount >= r.maxErrors {
			return
		}
		r.errorCount++
	}
	r.diags = append(r.diags, d)
}

// Reportf records a diagnostic with a formatted message.
func (r *Reporter) Reportf(sev Severity, pos *Position, code ErrorCode, format string, args ...any) {
	r.Report(sev, pos, code, fmt.Sprintf(format, args...))
}

// Fatalf records a fatal diagnostic and aborts the session.
func (r *Reporter) Fatalf(pos *Position, code ErrorCode, format string, args ...any) {
	r.Report(Fatal, pos, code, fmt.Sprintf(format, args...))
}

// HasErrors reports whether at least one Error or Fatal diagnostic was
// recorded since the last Reset.
func (r *Reporter) HasErrors() bool { return r.errorCount > 0 }

// Diagnostics returns the recorded diagnostics in report order.
func (r *Reporter) Diagnostics() []*Diagnostic { return r.diags }

// AssertNoError is the phase barrier: it aborts iff an Error or Fatal
// diagnostic was recorded since the last Reset.
func (r *Reporter) AssertNoError() {
	if r.errorCount > 0 {
		panic(&Abort{})
	}
}

// Reset clears all recorded diagnostics and the error count.
func (r *Reporter) Reset() {
	r.diags = nil
	r.seen = make(map[string]bool)
	r.errorCount = 0
}
