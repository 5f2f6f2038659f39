package inject

import (
	"context"
	"fmt"
	"unicode/utf16"
)

// Kind is the capability variant of a resolved input element.
type Kind int

const (
	// KindEditable is a content-editable container.
	KindEditable Kind = iota + 1
	// KindFormControl is a plain text box with a value property.
	KindFormControl
)

func (k Kind) String() string {
	switch k {
	case KindEditable:
		return "content-editable"
	case KindFormControl:
		return "form control"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type insertFunc func(ctx context.Context, el Element, text string) error

// Target is a resolved input element together with its insertion strategy.
type Target struct {
	Kind     Kind
	Selector string
	Element  Element

	insert insertFunc
}

func newTarget(kind Kind, selector string, el Element) Target {
	t := Target{Kind: kind, Selector: selector, Element: el}
	switch kind {
	case KindEditable:
		t.insert = insertEditable
	default:
		t.insert = insertFormControl
	}
	return t
}

// Insert writes text into the element, then focuses it and moves the caret
// to the end. Any failure is returned as *InsertionFailedError; whatever was
// written before the failure stays written.
func (t Target) Insert(ctx context.Context, text string) error {
	if err := t.insert(ctx, t.Element, text); err != nil {
		return &InsertionFailedError{Kind: t.Kind, Err: err}
	}
	if err := t.Element.Focus(ctx); err != nil {
		return &InsertionFailedError{Kind: t.Kind, Err: fmt.Errorf("focus: %w", err)}
	}
	// Caret offsets are in UTF-16 code units, like the DOM's string length.
	n := len(utf16.Encode([]rune(text)))
	if _, err := t.Element.SetSelectionRange(ctx, n, n); err != nil {
		return &InsertionFailedError{Kind: t.Kind, Err: fmt.Errorf("caret: %w", err)}
	}
	return nil
}

func insertEditable(ctx context.Context, el Element, text string) error {
	if err := el.SetTextContent(ctx, text); err != nil {
		return fmt.Errorf("set text content: %w", err)
	}
	return dispatchWriteEvents(ctx, el)
}

// insertFormControl sets the value twice. Frameworks that wrap the value
// setter only see the first write in the DOM; the native setter plus a second
// input event brings their internal state in line.
func insertFormControl(ctx context.Context, el Element, text string) error {
	if err := el.SetValue(ctx, text); err != nil {
		return fmt.Errorf("set value: %w", err)
	}
	if err := dispatchWriteEvents(ctx, el); err != nil {
		return err
	}
	if err := el.SetNativeValue(ctx, text); err != nil {
		return fmt.Errorf("native value setter: %w", err)
	}
	if err := el.Dispatch(ctx, EventInput); err != nil {
		return fmt.Errorf("dispatch %s: %w", EventInput, err)
	}
	return nil
}

func dispatchWriteEvents(ctx context.Context, el Element) error {
	for _, ev := range []string{EventInput, EventChange} {
		if err := el.Dispatch(ctx, ev); err != nil {
			return fmt.Errorf("dispatch %s: %w", ev, err)
		}
	}
	return nil
}
