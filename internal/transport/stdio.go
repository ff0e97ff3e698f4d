package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/Solifugus/storysplicer/internal/wcp"
)

// RunStdio serves WCP over line-delimited JSON-RPC on r/w until r is
// closed or ctx is canceled. The stdio transport is trusted/local per
// spec.md §4.4: calls never carry a session token and authorization
// checks are skipped.
func RunStdio(ctx context.Context, handler *wcp.Handler, r io.Reader, w io.Writer, logger *slog.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		req, err := ParseRequestBytes(line)
		if err != nil {
			if encErr := enc.Encode(NewError(nil, ErrParseCode, "parse error", nil)); encErr != nil {
				return fmt.Errorf("writing parse error: %w", encErr)
			}
			continue
		}

		resp := Dispatch(ctx, handler, "", req, false)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		if logger != nil {
			logger.Error("stdio scan error", "error", err)
		}
		return err
	}
	return nil
}
