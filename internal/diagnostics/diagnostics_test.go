package diagnostics

import (
	"strings"
	"testing"

	"github.com/funvibe/tova/internal/config"
	"github.com/google/uuid"
)

func newTestReporter(max int) *Reporter {
	return NewReporter(uuid.New(), max)
}

func TestReportOrder(t *testing.T) {
	r := newTestReporter(0)
	r.Report(Note, nil, ErrT001, "first")
	r.Report(Warning, nil, ErrT002, "second")
	r.Report(Error, nil, ErrT004, "third")

	got := r.Diagnostics()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Message != want {
			t.Errorf("diags[%d].Message = %q, want %q", i, got[i].Message, want)
		}
	}
}

func TestDeduplication(t *testing.T) {
	r := newTestReporter(0)
	pos := &Position{File: "main.tv", Line: 3, Column: 7}
	r.Report(Error, pos, ErrT002, "variable 'a' escapes its scope")
	r.Report(Error, pos, ErrT002, "variable 'a' escapes its scope")
	r.Report(Error, pos, ErrT002, "variable 'b' escapes its scope")

	if len(r.Diagnostics()) != 2 {
		t.Errorf("len = %d, want 2 (duplicate dropped)", len(r.Diagnostics()))
	}
}

func TestHasErrors(t *testing.T) {
	r := newTestReporter(0)
	r.Report(Note, nil, ErrT001, "just a note")
	r.Report(Warning, nil, ErrT001, "just a warning")
	if r.HasErrors() {
		t.Error("notes and warnings must not count as errors")
	}
	r.Report(Error, nil, ErrT001, "a real error")
	if !r.HasErrors() {
		t.Error("HasErrors() = false after Error report")
	}
}

func TestAssertNoErrorAborts(t *testing.T) {
	r := newTestReporter(0)
	r.Report(Error, nil, ErrT004, "occurs check failed")

	defer func() {
		v := recover()
		if v == nil {
			t.Fatal("AssertNoError did not abort")
		}
		if _, ok := v.(*Abort); !ok {
			t.Fatalf("recovered %T, want *Abort", v)
		}
	}()
	r.AssertNoError()
}

func TestAssertNoErrorCleanPhase(t *testing.T) {
	r := newTestReporter(0)
	r.Report(Warning, nil, ErrT001, "harmless")
	r.AssertNoError() // must not panic
}

func TestFatalAbortsImmediately(t *testing.T) {
	r := newTestReporter(0)
	defer func() {
		v := recover()
		a, ok := v.(*Abort)
		if !ok {
			t.Fatalf("recovered %T, want *Abort", v)
		}
		if a.Diag == nil || a.Diag.Code != ErrI001 {
			t.Errorf("abort diagnostic = %v, want code %s", a.Diag, ErrI001)
		}
	}()
	r.Fatalf(nil, ErrI001, "session state corrupted")
}

func TestReset(t *testing.T) {
	r := newTestReporter(0)
	r.Report(Error, nil, ErrT001, "boom")
	r.Reset()
	if r.HasErrors() || len(r.Diagnostics()) != 0 {
		t.Error("Reset did not clear state")
	}
	r.AssertNoError() // must not panic after reset
}

func TestMaxErrorsCap(t *testing.T) {
	r := newTestReporter(2)
	r.Reportf(Error, nil, ErrT001, "error %d", 1)
	r.Reportf(Error, nil, ErrT001, "error %d", 2)
	r.Reportf(Error, nil, ErrT001, "error %d", 3)
	if len(r.Diagnostics()) != 2 {
		t.Errorf("len = %d, want 2 (capped)", len(r.Diagnostics()))
	}
	// Notes are still recorded past the cap.
	r.Report(Note, nil, ErrT001, "still noted")
	if len(r.Diagnostics()) != 3 {
		t.Errorf("len = %d, want 3", len(r.Diagnostics()))
	}
}

func TestPrintPlain(t *testing.T) {
	r := newTestReporter(0)
	r.Report(Error, &Position{File: "repl.tv", Line: 1, Column: 5}, ErrT002,
		"variable 'a' escapes its scope")

	var sb strings.Builder
	Print(&sb, config.Default(), r.Diagnostics())
	out := sb.String()
	if !strings.Contains(out, "error[T002]") {
		t.Errorf("output %q missing severity/code", out)
	}
	if !strings.Contains(out, "repl.tv:1:5") {
		t.Errorf("output %q missing position", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output %q contains ANSI escapes for non-tty writer", out)
	}
}

func TestPrintAlwaysColor(t *testing.T) {
	r := newTestReporter(0)
	r.Report(Warning, nil, ErrT005, "recursive type is not strictly positive")

	cfg := config.Default()
	cfg.Color = config.ColorAlways
	var sb strings.Builder
	Print(&sb, cfg, r.Diagnostics())
	if !strings.Contains(sb.String(), "\x1b[") {
		t.Error("expected ANSI escapes with color: always")
	}
}
