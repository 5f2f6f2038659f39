package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/phiscrub/internal/redact"
	"github.com/dshills/phiscrub/internal/scrub"
)

func sampleResult() *scrub.Result {
	text := "Seen by [NAME] at [LOCATION] on [DATE], contact [NAME]."
	return &scrub.Result{
		Model:    "phi3:mini",
		Redacted: text,
		Analysis: redact.Analyze(text),
		LinesIn:  1,
		LinesOut: 1,
	}
}

func TestTextWriter_Summary(t *testing.T) {
	var buf bytes.Buffer
	w := &TextWriter{Summary: true}
	if err := w.Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Seen by [NAME] at [LOCATION] on [DATE], contact [NAME].\n") {
		t.Errorf("Output should start with the redacted text:\n%s", out)
	}
	if !strings.Contains(out, "PHI removed: 4 (3 types)") {
		t.Errorf("Output should show counts:\n%s", out)
	}
	if !strings.Contains(out, "Tags: [NAME] [LOCATION] [DATE]") {
		t.Errorf("Output should list tags:\n%s", out)
	}
}

func TestTextWriter_NoSummary(t *testing.T) {
	var buf bytes.Buffer
	w := &TextWriter{}
	if err := w.Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if buf.String() != "Seen by [NAME] at [LOCATION] on [DATE], contact [NAME].\n" {
		t.Errorf("Output = %q", buf.String())
	}
}

func TestTextWriter_NoTagsSingular(t *testing.T) {
	res := &scrub.Result{Redacted: "[NAME] [NAME]", Analysis: redact.Analyze("[NAME] [NAME]"), LinesIn: 1, LinesOut: 1}
	var buf bytes.Buffer
	if err := (&TextWriter{Summary: true}).Write(&buf, res); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "PHI removed: 2 (1 type)") {
		t.Errorf("Output = %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestTextWriter_WriteError(t *testing.T) {
	if err := (&TextWriter{Summary: true}).Write(failingWriter{}, sampleResult()); err == nil {
		t.Error("Expected write error to surface")
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"text", "", "json"} {
		if _, err := GetWriter(format); err != nil {
			t.Errorf("GetWriter(%q) error: %v", format, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
