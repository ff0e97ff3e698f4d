package transport

import (
	"context"
	"errors"
	"strings"

	"github.com/Solifugus/storysplicer/internal/wcp"
)

// Dispatch runs one JSON-RPC request through the WCP handler and produces
// the Response to write back, regardless of which transport is carrying
// it. authRequired is false for the stdio transport (trusted/local, spec.md
// §4.4) and true for the websocket transport.
func Dispatch(ctx context.Context, handler *wcp.Handler, token string, req Request, authRequired bool) Response {
	result, err := handler.Handle(ctx, token, req.Method, req.Params, authRequired)
	if err == nil {
		return NewResult(req.ID, map[string]any{"content": result})
	}

	if errors.Is(err, wcp.ErrUnauthorized) {
		return NewError(req.ID, ErrInvalidReq, "unauthorized", nil)
	}
	if strings.HasPrefix(err.Error(), "unknown tool") {
		return NewError(req.ID, ErrMethodNotFound, "method not found", nil)
	}

	apiErr := wcp.MapError(err)
	return NewError(req.ID, ErrInternal, apiErr.Message, apiErr)
}
