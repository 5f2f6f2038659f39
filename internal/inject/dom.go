package inject

import "context"

// Page is a handle to the active browser tab.
type Page interface {
	URL(ctx context.Context) (string, error)
	Document(ctx context.Context) (Document, error)
}

// Document finds elements in a page.
type Document interface {
	// QuerySelector returns the first element matching selector, or nil
	// with a nil error when nothing matches.
	QuerySelector(ctx context.Context, selector string) (Element, error)
}

// Element is the set of DOM capabilities the injector uses.
type Element interface {
	// Size returns the rendered width and height.
	Size(ctx context.Context) (width, height float64, err error)
	// Visibility returns the computed CSS visibility value.
	Visibility(ctx context.Context) (string, error)
	IsContentEditable(ctx context.Context) (bool, error)

	SetTextContent(ctx context.Context, text string) error
	// SetValue assigns through the element's own value property, which a
	// page framework may have wrapped.
	SetValue(ctx context.Context, text string) error
	// SetNativeValue calls the prototype-level value setter directly,
	// bypassing any page-level override.
	SetNativeValue(ctx context.Context, text string) error

	// Dispatch fires a bubbling synthetic event of the given type.
	Dispatch(ctx context.Context, event string) error
	Focus(ctx context.Context) error
	// SetSelectionRange moves the selection. It reports false when the
	// element has no selection API.
	SetSelectionRange(ctx context.Context, start, end int) (bool, error)
}

// Event types dispatched after a write.
const (
	EventInput  = "input"
	EventChange = "change"
)
