// Package session holds the state of one redaction and injection cycle.
//
// A [Controller] replaces the "last redacted text" global of a popup UI: it
// owns the current result, refuses overlapping scrubs while one is in
// flight, and hands the current result to the page-side agent on Insert.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dshills/phiscrub/internal/bridge"
	"github.com/dshills/phiscrub/internal/scrub"
)

var (
	// ErrBusy means a scrub is already running.
	ErrBusy = errors.New("a scrub is already in progress")
	// ErrNothingToInsert means no scrub has succeeded yet.
	ErrNothingToInsert = errors.New("nothing to insert: scrub some text first")
)

// InsertRejectedError is a reply from the agent with Success false.
type InsertRejectedError struct {
	Code string
}

func (e *InsertRejectedError) Error() string {
	if e.Code == "" {
		return "insert rejected by page"
	}
	return "insert rejected by page: " + e.Code
}

// Scrubber performs the redaction call.
type Scrubber interface {
	Scrub(ctx context.Context, text string) (scrub.Result, error)
}

// Sender delivers a bridge request to the page-side agent.
type Sender interface {
	Send(ctx context.Context, req bridge.Request) (bridge.Reply, error)
}

// Controller coordinates one user's scrub and insert actions.
type Controller struct {
	scrubber Scrubber
	sender   Sender

	busy atomic.Bool

	mu   sync.Mutex
	last *scrub.Result
}

// New creates a Controller. sender may be nil when insertion is not used.
func New(s Scrubber, sender Sender) *Controller {
	return &Controller{scrubber: s, sender: sender}
}

// Busy reports whether a scrub is in flight.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Scrub runs one redaction. A concurrent call fails with ErrBusy. On success
// the result becomes current; on failure the previous result is kept.
func (c *Controller) Scrub(ctx context.Context, text string) (scrub.Result, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return scrub.Result{}, ErrBusy
	}
	defer c.busy.Store(false)

	res, err := c.scrubber.Scrub(ctx, text)
	if err != nil {
		return scrub.Result{}, err
	}

	c.mu.Lock()
	c.last = &res
	c.mu.Unlock()
	return res, nil
}

// Last returns the current result, if any.
func (c *Controller) Last() (scrub.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return scrub.Result{}, false
	}
	return *c.last, true
}

// Reset forgets the current result.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.last = nil
	c.mu.Unlock()
}

// Insert sends the current redacted text to the active page.
func (c *Controller) Insert(ctx context.Context) error {
	res, ok := c.Last()
	if !ok {
		return ErrNothingToInsert
	}
	return Deliver(ctx, c.sender, res.Redacted)
}

// Deliver sends text to the active page as an insertQuery request.
func Deliver(ctx context.Context, sender Sender, text string) error {
	if sender == nil {
		return fmt.Errorf("insert: %w", bridge.ErrNoReceiver)
	}

	reply, err := sender.Send(ctx, bridge.Request{
		Action: bridge.ActionInsertQuery,
		Query:  text,
	})
	if err != nil {
		return err
	}
	if !reply.Success {
		return &InsertRejectedError{Code: reply.Error}
	}
	return nil
}
