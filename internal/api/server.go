// Package api exposes the running simulation over HTTP. GET endpoints are
// read-only observation; the only mutating endpoint advances one day in
// manual mode.
package api

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/talgya/pending/internal/engine"
	"github.com/talgya/pending/internal/save"
)

// Server serves simulation state over HTTP.
type Server struct {
	Controller *engine.Controller
	Addr       string

	log *slog.Logger
}

// NewServer builds a server around a time-flow controller.
func NewServer(ctrl *engine.Controller, addr string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{Controller: ctrl, Addr: addr, log: log}
}

// ListenAndServe blocks serving HTTP on the configured address.
func (s *Server) ListenAndServe() error {
	s.log.Info("api listening", "addr", s.Addr)
	return fasthttp.ListenAndServe(s.Addr, s.route)
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/health":
		s.handleHealth(ctx)
	case "/state":
		s.handleState(ctx)
	case "/event":
		s.handleEvent(ctx)
	case "/advance":
		s.handleAdvance(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

// handleState returns the full playthrough snapshot.
func (s *Server) handleState(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "GET only")
		return
	}
	snap := save.Capture(s.Controller.Engine, 100)
	writeJSON(ctx, fasthttp.StatusOK, snap)
}

// handleEvent returns the event currently waiting on the player, if any.
func (s *Server) handleEvent(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "GET only")
		return
	}
	eng := s.Controller.Engine
	id := eng.Events.CurrentEventID
	if id == "" {
		writeJSON(ctx, fasthttp.StatusOK, map[string]any{"event": nil})
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{"event": eng.Catalog.Event(id)})
}

// handleAdvance processes one manual day.
func (s *Server) handleAdvance(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "POST only")
		return
	}
	advanced := s.Controller.ManualAdvance()
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"advanced": advanced,
		"date":     s.Controller.Engine.Clock.Now().String(),
	})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		fmt.Fprintf(ctx, `{"error":"encode failed"}`)
	}
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, map[string]string{"error": message})
}
