package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/phiscrub/internal/scrub"
)

// Writer writes a scrub result in a specific format.
type Writer interface {
	Write(w io.Writer, res *scrub.Result) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{Summary: true}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteResult writes res to the specified output (file path or stdout).
func WriteResult(res *scrub.Result, format, outPath string, summary bool) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}
	if tw, ok := writer.(*TextWriter); ok {
		tw.Summary = summary
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, res)
}
