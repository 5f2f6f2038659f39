package bridge

import (
	"context"
	"errors"
)

// ActionInsertQuery asks the receiver to insert Query into the active page.
const ActionInsertQuery = "insertQuery"

// Path is the HTTP path the websocket endpoint is served on.
const Path = "/bridge"

// CodeBadRequest is the reply code for a message that could not be decoded.
const CodeBadRequest = "bad_request"

var (
	// ErrNoReceiver means no agent took the message.
	ErrNoReceiver = errors.New("no receiver: start the agent or reload the page and try again")
	// ErrReplyMismatch means the reply did not answer the request sent.
	ErrReplyMismatch = errors.New("reply does not match request")
)

// Request is a message sent to the page-side agent.
type Request struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Query  string `json:"query,omitempty"`
}

// Reply is the agent's single answer to a Request.
type Reply struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Handler answers requests on the receiving side.
type Handler interface {
	HandleMessage(ctx context.Context, req Request) Reply
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req Request) Reply

func (f HandlerFunc) HandleMessage(ctx context.Context, req Request) Reply {
	return f(ctx, req)
}
