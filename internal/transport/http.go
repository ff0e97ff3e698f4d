package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/Solifugus/storysplicer/internal/wcp"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server wires the websocket WCP endpoint and a health check, grounded on
// the teacher's internal/transport.NewServer chi router.
type Server struct {
	handler *wcp.Handler
	logger  *slog.Logger
}

// NewServer creates an HTTP router exposing /ws (WCP over websocket) and
// /health.
func NewServer(handler *wcp.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	srv := &Server{handler: handler, logger: logger}

	r.Get("/ws", srv.handleWS)
	r.Get("/health", srv.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleWS upgrades the connection and serves one JSON-RPC request per
// frame for the lifetime of the socket. Every call on this transport is
// dispatched with authorization required (spec.md §4.4). The session token
// is read once, from the "token" query parameter at connect time, and used
// for every call on the socket; a token inside a request's params is not
// read.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("websocket upgrade failed", "error", err)
		}
		return
	}
	defer conn.Close()

	token := r.URL.Query().Get("token")
	ctx := r.Context()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				if s.logger != nil {
					s.logger.Warn("websocket read error", "error", err)
				}
			}
			return
		}
		if req.JSONRPC != "2.0" || req.Method == "" {
			_ = conn.WriteJSON(NewError(req.ID, ErrInvalidReq, "invalid request", nil))
			continue
		}

		resp := Dispatch(ctx, s.handler, token, req, true)
		if err := conn.WriteJSON(resp); err != nil {
			if s.logger != nil {
				s.logger.Error("websocket write error", "error", err)
			}
			return
		}
	}
}
