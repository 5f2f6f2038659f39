package inject

import (
	"context"

	"github.com/dshills/phiscrub/internal/bridge"
	"go.uber.org/zap"
)

// PageSource yields the tab that is active when a message arrives.
type PageSource interface {
	ActivePage(ctx context.Context) (Page, error)
}

// Handler is the page-side receiver for bridge messages.
type Handler struct {
	injector *Injector
	pages    PageSource
}

// NewHandler creates a bridge handler that inserts into pages from src.
func NewHandler(i *Injector, src PageSource) *Handler {
	return &Handler{injector: i, pages: src}
}

// HandleMessage answers insertQuery with the insertion outcome. Every
// failure becomes a Reply with Success false and an error code.
func (h *Handler) HandleMessage(ctx context.Context, req bridge.Request) bridge.Reply {
	if req.Action != bridge.ActionInsertQuery {
		return bridge.Reply{Success: false, Error: CodeUnknownAction}
	}

	page, err := h.pages.ActivePage(ctx)
	if err != nil {
		h.injector.log.Warn("no active page", zap.Error(err))
		return bridge.Reply{Success: false, Error: Code(err)}
	}

	if err := h.injector.Insert(ctx, page, req.Query); err != nil {
		return bridge.Reply{Success: false, Error: Code(err)}
	}
	return bridge.Reply{Success: true}
}
