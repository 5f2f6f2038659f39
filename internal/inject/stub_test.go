package inject

import (
	"context"
	"errors"
	"fmt"
)

// stubElement is an in-memory DOM element that records every call.
type stubElement struct {
	width, height float64
	visibility    string
	editable      bool
	hasSelection  bool

	textContent string
	value       string
	nativeValue string
	focused     bool
	selStart    int
	selEnd      int

	calls  []string
	events map[string]int

	failOn string
}

func newTextarea() *stubElement {
	return &stubElement{width: 600, height: 40, visibility: "visible", hasSelection: true}
}

func newEditable() *stubElement {
	return &stubElement{width: 600, height: 40, visibility: "visible", editable: true}
}

func (e *stubElement) record(call string) error {
	e.calls = append(e.calls, call)
	if e.failOn == call {
		return errors.New(call + " exploded")
	}
	return nil
}

func (e *stubElement) Size(ctx context.Context) (float64, float64, error) {
	return e.width, e.height, nil
}

func (e *stubElement) Visibility(ctx context.Context) (string, error) {
	return e.visibility, nil
}

func (e *stubElement) IsContentEditable(ctx context.Context) (bool, error) {
	return e.editable, nil
}

func (e *stubElement) SetTextContent(ctx context.Context, text string) error {
	if err := e.record("textContent"); err != nil {
		return err
	}
	e.textContent = text
	return nil
}

func (e *stubElement) SetValue(ctx context.Context, text string) error {
	if err := e.record("value"); err != nil {
		return err
	}
	e.value = text
	return nil
}

func (e *stubElement) SetNativeValue(ctx context.Context, text string) error {
	if err := e.record("nativeValue"); err != nil {
		return err
	}
	e.nativeValue = text
	e.value = text
	return nil
}

func (e *stubElement) Dispatch(ctx context.Context, event string) error {
	if err := e.record("dispatch:" + event); err != nil {
		return err
	}
	if e.events == nil {
		e.events = map[string]int{}
	}
	e.events[event]++
	return nil
}

func (e *stubElement) Focus(ctx context.Context) error {
	if err := e.record("focus"); err != nil {
		return err
	}
	e.focused = true
	return nil
}

func (e *stubElement) SetSelectionRange(ctx context.Context, start, end int) (bool, error) {
	if !e.hasSelection {
		return false, nil
	}
	if err := e.record("selection"); err != nil {
		return false, err
	}
	e.selStart, e.selEnd = start, end
	return true, nil
}

// stubDocument maps selectors to elements and counts queries.
type stubDocument struct {
	elements map[string]Element
	broken   map[string]bool
	queries  []string
}

func (d *stubDocument) QuerySelector(ctx context.Context, selector string) (Element, error) {
	d.queries = append(d.queries, selector)
	if d.broken[selector] {
		return nil, fmt.Errorf("SyntaxError: %q is not a valid selector", selector)
	}
	el, ok := d.elements[selector]
	if !ok {
		return nil, nil
	}
	return el, nil
}

// stubPage is a tab with a fixed URL.
type stubPage struct {
	url       string
	doc       *stubDocument
	docOpened int
}

func (p *stubPage) URL(ctx context.Context) (string, error) { return p.url, nil }

func (p *stubPage) Document(ctx context.Context) (Document, error) {
	p.docOpened++
	return p.doc, nil
}

type stubSource struct {
	page Page
	err  error
}

func (s stubSource) ActivePage(ctx context.Context) (Page, error) { return s.page, s.err }
