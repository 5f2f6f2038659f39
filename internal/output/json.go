package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/phiscrub/internal/scrub"
)

// JSONWriter outputs the full result as one JSON document. Characters such
// as <, > and & are written literally; clinical text uses them often.
type JSONWriter struct {
	Compact bool
}

func (j *JSONWriter) Write(w io.Writer, res *scrub.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if !j.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
