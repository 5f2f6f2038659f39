package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/phiscrub/internal/scrub"
)

// TextWriter outputs the redacted text, optionally followed by a summary.
type TextWriter struct {
	Summary bool
}

func (t *TextWriter) Write(w io.Writer, res *scrub.Result) error {
	ew := &errWriter{w: w}

	ew.println(res.Redacted)
	if !t.Summary {
		return ew.err
	}

	a := res.Analysis
	ew.println(strings.Repeat("─", 40))
	ew.printf("PHI removed: %d (%d %s)\n", a.Count, a.Types, plural(a.Types, "type", "types"))
	if len(a.Tags) > 0 {
		ew.printf("Tags: %s\n", strings.Join(a.Tags, " "))
	}
	return ew.err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
