package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/dshills/phiscrub/internal/inject"
	"go.uber.org/zap"
)

// DefaultCDPURL is the usual --remote-debugging-port endpoint.
const DefaultCDPURL = "http://localhost:9222"

// ErrNoTab means the browser has no page targets.
var ErrNoTab = fmt.Errorf("no open browser tab: %w", inject.ErrNoPage)

const detachTimeout = time.Second

// Browser is a DevTools connection to a running Chromium.
type Browser struct {
	allocCancel context.CancelFunc
	ctx         context.Context
	log         *zap.Logger

	mu   sync.Mutex
	tabs map[target.ID]context.Context
	// attached stays set once any tab context exists; cancelling the
	// allocator after that would close the tab.
	attached bool
}

// Connect attaches to the browser at cdpURL. It does not open a tab.
func Connect(ctx context.Context, cdpURL string, log *zap.Logger) (*Browser, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cdpURL == "" {
		cdpURL = DefaultCDPURL
	}

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(context.Background(), cdpURL)
	bctx, _ := chromedp.NewContext(allocCtx)

	b := &Browser{
		allocCancel: allocCancel,
		ctx:         bctx,
		log:         log,
		tabs:        make(map[target.ID]context.Context),
	}

	// The connection lives as long as the context that allocates it, so the
	// first call must use bctx itself. Targets does not create a page.
	errCh := make(chan error, 1)
	go func() {
		_, err := chromedp.Targets(bctx)
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if err != nil {
			allocCancel()
			return nil, fmt.Errorf("connecting to browser at %s: %w", cdpURL, err)
		}
	case <-ctx.Done():
		allocCancel()
		return nil, fmt.Errorf("connecting to browser at %s: %w", cdpURL, ctx.Err())
	}
	log.Info("attached to browser", zap.String("cdp_url", cdpURL))
	return b, nil
}

// Close detaches from every tab the agent attached to and leaves the tabs
// open. chromedp closes a target when its context is cancelled, so once a
// tab has been attached neither the tab contexts nor the allocator are ever
// cancelled; the DevTools connection ends with the process. With no tab
// attached the allocator is released.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		b.allocCancel()
		return
	}
	for id, tctx := range b.tabs {
		if err := detach(tctx); err != nil {
			b.log.Debug("detaching from tab", zap.String("target", string(id)), zap.Error(err))
		}
		delete(b.tabs, id)
	}
}

// detach ends the DevTools session of a chromedp tab context without
// closing the tab.
func detach(tctx context.Context) error {
	c := chromedp.FromContext(tctx)
	if c == nil || c.Browser == nil || c.Target == nil || c.Target.SessionID == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), detachTimeout)
	defer cancel()
	return target.DetachFromTarget().
		WithSessionID(c.Target.SessionID).
		Do(cdp.WithExecutor(ctx, c.Browser))
}

func (b *Browser) targets(ctx context.Context) ([]*target.Info, error) {
	runCtx, cancel := bind(ctx, b.ctx)
	defer cancel()
	return chromedp.Targets(runCtx)
}

// ActivePage returns the tab the user is looking at: the visible page that
// has focus, else the first visible page, else the first page. Focus is
// usually in the terminal that sent the request, so the visible fallback is
// the common case.
func (b *Browser) ActivePage(ctx context.Context) (inject.Page, error) {
	infos, err := b.targets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tabs: %w", err)
	}
	info := choosePage(ctx, pageTargets(infos), b.pageState)
	if info == nil {
		return nil, ErrNoTab
	}
	b.log.Debug("active tab", zap.String("target", string(info.TargetID)), zap.String("url", info.URL))
	return &Tab{browser: b, id: info.TargetID, url: info.URL}, nil
}

// pageTargets returns the real page targets in browser order. DevTools
// pages and extension pages are skipped.
func pageTargets(infos []*target.Info) []*target.Info {
	var pages []*target.Info
	for _, info := range infos {
		if info == nil || info.Type != "page" {
			continue
		}
		if strings.HasPrefix(info.URL, "devtools://") || strings.HasPrefix(info.URL, "chrome-extension://") {
			continue
		}
		pages = append(pages, info)
	}
	return pages
}

// pageState is what a tab reports about its own visibility.
type pageState struct {
	Visible bool `json:"visible"`
	Focused bool `json:"focused"`
}

const pageStateScript = `({visible: document.visibilityState === "visible", focused: document.hasFocus()})`

type stateFunc func(ctx context.Context, id target.ID) (pageState, error)

// choosePage picks the focused visible page, then the first visible one,
// then the first page. Tabs whose state cannot be read count as hidden.
func choosePage(ctx context.Context, pages []*target.Info, state stateFunc) *target.Info {
	switch len(pages) {
	case 0:
		return nil
	case 1:
		return pages[0]
	}

	var firstVisible *target.Info
	for _, info := range pages {
		st, err := state(ctx, info.TargetID)
		if err != nil {
			continue
		}
		if st.Visible && st.Focused {
			return info
		}
		if st.Visible && firstVisible == nil {
			firstVisible = info
		}
	}
	if firstVisible != nil {
		return firstVisible
	}
	return pages[0]
}

func (b *Browser) pageState(ctx context.Context, id target.ID) (pageState, error) {
	var st pageState
	tctx, err := b.tabContext(id)
	if err != nil {
		return st, err
	}
	err = evaluate(ctx, tctx, pageStateScript, &st)
	return st, err
}

// tabContext returns the chromedp context attached to id, attaching once.
func (b *Browser) tabContext(id target.ID) (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ctx, ok := b.tabs[id]; ok {
		return ctx, nil
	}
	// Never cancelled; cancelling would close the user's tab. See Close.
	ctx, _ := chromedp.NewContext(b.ctx, chromedp.WithTargetID(id))
	b.attached = true
	// An empty Run attaches the session; like the browser connection it
	// is bound to the context it starts with.
	if err := chromedp.Run(ctx); err != nil {
		return nil, fmt.Errorf("attaching to tab %s: %w", id, err)
	}
	b.tabs[id] = ctx
	return ctx, nil
}

// bind derives a context that carries chromedp's values from cdpCtx and is
// cancelled when either ctx or cdpCtx is done.
func bind(ctx, cdpCtx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(cdpCtx)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Tab is a browser tab seen through DevTools.
type Tab struct {
	browser *Browser
	id      target.ID
	url     string
}

// URL returns the tab URL captured when the tab was selected.
func (t *Tab) URL(ctx context.Context) (string, error) {
	return t.url, nil
}

// Document attaches to the tab and returns its DOM.
func (t *Tab) Document(ctx context.Context) (inject.Document, error) {
	tctx, err := t.browser.tabContext(t.id)
	if err != nil {
		return nil, err
	}
	return &document{ctx: tctx}, nil
}
