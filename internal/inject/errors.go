package inject

import (
	"errors"
	"fmt"
)

// ErrNoPage means the browser has no tab to insert into.
var ErrNoPage = errors.New("no open page")

// ErrNoInputField means no selector matched a visible element.
var ErrNoInputField = errors.New("no visible input field found on the page")

// UnsupportedPageError means the tab is not one of the supported chat sites.
type UnsupportedPageError struct {
	URL string
}

func (e *UnsupportedPageError) Error() string {
	return fmt.Sprintf("unsupported page %q: navigate to ChatGPT or Perplexity first", e.URL)
}

// InsertionFailedError wraps a failure while writing into a resolved element.
type InsertionFailedError struct {
	Kind Kind
	Err  error
}

func (e *InsertionFailedError) Error() string {
	return fmt.Sprintf("inserting into %s: %v", e.Kind, e.Err)
}

func (e *InsertionFailedError) Unwrap() error { return e.Err }

// Reply error codes.
const (
	CodeUnsupportedPage = "unsupported_page"
	CodeNoInputField    = "no_input_field"
	CodeInsertionFailed = "insertion_failed"
	CodeUnknownAction   = "unknown_action"
	CodeNoTab           = "no_tab"
)

// Code maps an injector error to its reply code. Unrecognised errors map to
// CodeInsertionFailed.
func Code(err error) string {
	var upe *UnsupportedPageError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &upe):
		return CodeUnsupportedPage
	case errors.Is(err, ErrNoInputField):
		return CodeNoInputField
	case errors.Is(err, ErrNoPage):
		return CodeNoTab
	default:
		return CodeInsertionFailed
	}
}
