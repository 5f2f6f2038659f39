package inject

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var defaultAllowedHosts = []string{
	"chat.openai.com",
	"chatgpt.com",
	"perplexity.ai",
}

// Most specific first; the bare textarea is the last resort.
var defaultSelectors = []string{
	// ChatGPT
	`#prompt-textarea`,
	`textarea[data-id="root"]`,
	`textarea[placeholder*="Message"]`,
	`textarea[placeholder*="Send a message"]`,

	// Perplexity
	`textarea[placeholder*="Ask"]`,
	`textarea[placeholder*="Ask anything"]`,
	`textarea.rounded-lg`,

	// Generic
	`textarea[class*="composer"]`,
	`textarea[class*="input"]`,
	`div[contenteditable="true"]`,
	`textarea`,
}

// DefaultAllowedHosts returns the host fragments of the supported chat sites.
func DefaultAllowedHosts() []string {
	return append([]string(nil), defaultAllowedHosts...)
}

// DefaultSelectors returns the input-field selectors in priority order.
func DefaultSelectors() []string {
	return append([]string(nil), defaultSelectors...)
}

// Eligible reports whether url contains any of the allowed host fragments.
func Eligible(url string, allowed []string) bool {
	for _, host := range allowed {
		if host != "" && strings.Contains(url, host) {
			return true
		}
	}
	return false
}

// Resolve returns the first visible element matching selectors, in order.
// Selectors that fail to evaluate are skipped.
func Resolve(ctx context.Context, doc Document, selectors []string) (Target, error) {
	for _, sel := range selectors {
		if err := ctx.Err(); err != nil {
			return Target{}, err
		}
		el, err := doc.QuerySelector(ctx, sel)
		if err != nil || el == nil {
			continue
		}
		if !isVisible(ctx, el) {
			continue
		}
		editable, err := el.IsContentEditable(ctx)
		if err != nil {
			continue
		}
		if editable {
			return newTarget(KindEditable, sel, el), nil
		}
		return newTarget(KindFormControl, sel, el), nil
	}
	return Target{}, ErrNoInputField
}

func isVisible(ctx context.Context, el Element) bool {
	w, h, err := el.Size(ctx)
	if err != nil || w <= 0 || h <= 0 {
		return false
	}
	vis, err := el.Visibility(ctx)
	if err != nil {
		return false
	}
	return vis != "hidden"
}

// Injector inserts text into supported chat pages.
type Injector struct {
	allowed   []string
	selectors []string
	log       *zap.Logger
}

// Option configures an Injector.
type Option func(*Injector)

// WithAllowedHosts replaces the host allow-list. An empty list is ignored.
func WithAllowedHosts(hosts []string) Option {
	return func(i *Injector) {
		if len(hosts) > 0 {
			i.allowed = hosts
		}
	}
}

// WithSelectors replaces the selector list. An empty list is ignored.
func WithSelectors(selectors []string) Option {
	return func(i *Injector) {
		if len(selectors) > 0 {
			i.selectors = selectors
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(i *Injector) {
		if log != nil {
			i.log = log
		}
	}
}

// New creates an Injector with the default allow-list and selectors.
func New(opts ...Option) *Injector {
	i := &Injector{
		allowed:   DefaultAllowedHosts(),
		selectors: DefaultSelectors(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Insert writes text into the best-guess input field of page. The target is
// re-resolved on every call.
func (i *Injector) Insert(ctx context.Context, page Page, text string) error {
	url, err := page.URL(ctx)
	if err != nil {
		return fmt.Errorf("reading tab url: %w", err)
	}
	if !Eligible(url, i.allowed) {
		i.log.Debug("page not eligible", zap.String("url", url))
		return &UnsupportedPageError{URL: url}
	}

	doc, err := page.Document(ctx)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}

	target, err := Resolve(ctx, doc, i.selectors)
	if err != nil {
		i.log.Debug("no input field", zap.String("url", url))
		return err
	}
	i.log.Debug("input field resolved",
		zap.String("selector", target.Selector),
		zap.Stringer("kind", target.Kind),
	)

	if err := target.Insert(ctx, text); err != nil {
		i.log.Warn("insertion failed", zap.Error(err))
		return err
	}
	return nil
}
