// Package handler exposes wizard sessions over HTTP for browser renderers.
package handler

import (
	"bytes"
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"primeadapt/internal/config"
	"primeadapt/internal/session"
	"primeadapt/internal/widget"
)

// Handler routes every request. It is safe for concurrent use; each
// session serializes its own intents.
type Handler struct {
	cfg      config.Config
	store    *session.Store
	logger   *zap.Logger
	deps     widget.Deps
	validate *validator.Validate
}

type Options struct {
	Config config.Config
	Store  *session.Store
	Logger *zap.Logger
	// Deps is the template for every new widget. Renderer and Observer are
	// set per session.
	Deps widget.Deps
	// Context bounds background deliveries started by sessions.
	Context context.Context
}

func New(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Store == nil {
		opts.Store = session.NewStore(opts.Config.MaxSessions, opts.Config.SessionTTL())
	}
	deps := opts.Deps
	deps.Logger = opts.Logger
	if opts.Context != nil {
		deps.Context = opts.Context
	}
	return &Handler{
		cfg:      opts.Config,
		store:    opts.Store,
		logger:   opts.Logger,
		deps:     deps,
		validate: validator.New(),
	}
}

const (
	msgMethodNotAllowed = "Method not allowed"
	msgNotFound         = "Not found"
)

// Handle is the fasthttp entry point.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	id := newTraceID()
	ctx.SetUserValue(traceKey, id)
	ctx.Response.Header.Set("X-Trace-ID", id)

	parts := splitPath(ctx.Path())
	method := string(ctx.Method())

	switch {
	case len(parts) == 1 && parts[0] == "healthz":
		h.health(ctx)
	case len(parts) == 1 && parts[0] == "evaluate":
		if method != fasthttp.MethodPost {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, msgMethodNotAllowed)
			return
		}
		h.evaluate(ctx)
	case len(parts) == 1 && parts[0] == "brackets":
		if method != fasthttp.MethodGet {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, msgMethodNotAllowed)
			return
		}
		h.bracketList(ctx)
	case len(parts) >= 1 && parts[0] == "sessions":
		h.sessions(ctx, method, parts[1:])
	default:
		writeError(ctx, fasthttp.StatusNotFound, msgNotFound)
	}
}

func splitPath(path []byte) []string {
	trimmed := bytes.Trim(path, "/")
	if len(trimmed) == 0 {
		return nil
	}
	return strings.Split(string(trimmed), "/")
}

func (h *Handler) health(ctx *fasthttp.RequestCtx) {
	writeSuccess(ctx, map[string]interface{}{
		"status":   "ok",
		"sessions": h.store.Len(),
	}, "")
}
