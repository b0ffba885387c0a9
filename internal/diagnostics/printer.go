package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/tova/internal/config"
	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

func severityColor(sev Severity) string {
	switch sev {
	case Error, Fatal:
		return ansiRed
	case Warning:
		return ansiYellow
	default:
		return ansiCyan
	}
}

// Print writes the reporter's diagnostics to w in report order.
// Output is colored when cfg.Color is always, or when it is auto and w is a
// terminal.
func Print(w io.Writer, cfg *config.Config, diags []*Diagnostic) {
	color := false
	switch cfg.Color {
	case config.ColorAlways:
		color = true
	case config.ColorAuto:
		if f, ok := w.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}

	for _, d := range diags {
		if color {
			fmt.Fprintf(w, "%s%s%s%s[%s]%s", ansiBold, severityColor(d.Severity),
				d.Severity, ansiReset, d.Code, ansiReset)
		} else {
			fmt.Fprintf(w, "%s[%s]", d.Severity, d.Code)
		}
		if d.Pos != nil {
			fmt.Fprintf(w, " %s", d.Pos)
		}
		fmt.Fprintf(w, ": %s\n", d.Message)
	}
}
