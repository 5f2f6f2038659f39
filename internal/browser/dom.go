package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/dshills/phiscrub/internal/inject"
)

type document struct {
	ctx context.Context
}

func (d *document) QuerySelector(ctx context.Context, selector string) (inject.Element, error) {
	var found bool
	expr := fmt.Sprintf(`document.querySelector(%s) !== null`, jsString(selector))
	if err := evaluate(ctx, d.ctx, expr, &found); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &element{ctx: d.ctx, selector: selector}, nil
}

// element re-resolves its selector on every call.
type element struct {
	ctx      context.Context
	selector string
}

func (e *element) eval(ctx context.Context, body string, res any) error {
	return evaluate(ctx, e.ctx, elementScript(e.selector, body), res)
}

func (e *element) Size(ctx context.Context) (float64, float64, error) {
	var dims []float64
	if err := e.eval(ctx, `return [el.offsetWidth, el.offsetHeight];`, &dims); err != nil {
		return 0, 0, err
	}
	if len(dims) != 2 {
		return 0, 0, fmt.Errorf("unexpected size result %v", dims)
	}
	return dims[0], dims[1], nil
}

func (e *element) Visibility(ctx context.Context) (string, error) {
	var vis string
	err := e.eval(ctx, `return window.getComputedStyle(el).visibility;`, &vis)
	return vis, err
}

func (e *element) IsContentEditable(ctx context.Context) (bool, error) {
	var editable bool
	err := e.eval(ctx, `return el.isContentEditable || el.contentEditable === "true";`, &editable)
	return editable, err
}

func (e *element) SetTextContent(ctx context.Context, text string) error {
	return e.eval(ctx, fmt.Sprintf(`el.textContent = %s; return true;`, jsString(text)), nil)
}

func (e *element) SetValue(ctx context.Context, text string) error {
	return e.eval(ctx, fmt.Sprintf(`el.value = %s; return true;`, jsString(text)), nil)
}

func (e *element) SetNativeValue(ctx context.Context, text string) error {
	body := fmt.Sprintf(`
		const proto = el instanceof HTMLInputElement ? HTMLInputElement.prototype : HTMLTextAreaElement.prototype;
		const desc = Object.getOwnPropertyDescriptor(proto, "value");
		if (desc && desc.set) { desc.set.call(el, %s); }
		return true;`, jsString(text))
	return e.eval(ctx, body, nil)
}

func (e *element) Dispatch(ctx context.Context, event string) error {
	body := fmt.Sprintf(`el.dispatchEvent(new Event(%s, { bubbles: true })); return true;`, jsString(event))
	return e.eval(ctx, body, nil)
}

func (e *element) Focus(ctx context.Context) error {
	return e.eval(ctx, `el.focus(); return true;`, nil)
}

func (e *element) SetSelectionRange(ctx context.Context, start, end int) (bool, error) {
	var ok bool
	body := fmt.Sprintf(`
		if (typeof el.setSelectionRange !== "function") { return false; }
		el.setSelectionRange(%d, %d);
		return true;`, start, end)
	err := e.eval(ctx, body, &ok)
	return ok, err
}

// elementScript wraps body in a function that binds el to the first match of
// selector and throws when nothing matches.
func elementScript(selector, body string) string {
	return fmt.Sprintf(`(() => {
	const el = document.querySelector(%s);
	if (!el) { throw new Error("element not found"); }
	%s
})()`, jsString(selector), body)
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func evaluate(ctx, tabCtx context.Context, expr string, res any) error {
	runCtx, cancel := bind(ctx, tabCtx)
	defer cancel()
	return chromedp.Run(runCtx, chromedp.Evaluate(expr, res))
}
