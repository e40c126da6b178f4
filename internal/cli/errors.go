package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"deriv-generator/internal/diagnostic"
	"deriv-generator/internal/gen"
)

// FormatError renders err for the terminal. Unknown schemes get their
// suggestions and the legal options on separate lines.
func FormatError(err error) string {
	var b strings.Builder

	header := color.New(color.FgRed, color.Bold)
	hint := color.New(color.FgCyan)

	header.Fprintf(&b, "error: %v\n", err)

	var unknown *gen.UnknownSchemeError
	if errors.As(err, &unknown) {
		if len(unknown.Suggestions) > 0 {
			hint.Fprintf(&b, "   did you mean: %s?\n", strings.Join(unknown.Suggestions, ", "))
		}

		fmt.Fprintf(&b, "   legal schemes for %s: %s\n", unknown.Label, strings.Join(unknown.Options, ", "))
	}

	return b.String()
}

// renderDiagnostics prints errors and warnings, and infos only when
// verbose.
func renderDiagnostics(w io.Writer, d diagnostic.Diagnostics, verbose bool) {
	colors := map[diagnostic.Severity]*color.Color{
		diagnostic.SeverityError:   color.New(color.FgRed),
		diagnostic.SeverityWarning: color.New(color.FgYellow),
		diagnostic.SeverityInfo:    color.New(color.FgCyan),
	}

	for _, diag := range d.All() {
		if diag.Severity == diagnostic.SeverityInfo && !verbose {
			continue
		}

		colors[diag.Severity].Fprintf(w, "%s: %s\n", diag.Severity, diag)
	}
}
