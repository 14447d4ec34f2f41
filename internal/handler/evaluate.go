package handler

import (
	"github.com/valyala/fasthttp"

	"primeadapt/internal/brackets"
	"primeadapt/internal/engine"
	"primeadapt/internal/model"
)

type EvaluateResponse struct {
	Verdict model.Verdict        `json:"verdict"`
	Trace   []engine.RuleOutcome `json:"trace,omitempty"`
}

// evaluate runs the engine over a complete response set without a session.
func (h *Handler) evaluate(ctx *fasthttp.RequestCtx) {
	if len(ctx.PostBody()) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "Request body is required")
		return
	}
	var req model.EvaluateRequest
	if !decode(ctx, &req) {
		return
	}

	if req.Trace {
		v, trace := engine.Trace(req.Responses)
		writeSuccess(ctx, EvaluateResponse{Verdict: v, Trace: trace}, "")
		return
	}
	writeSuccess(ctx, EvaluateResponse{Verdict: engine.Evaluate(req.Responses)}, "")
}

func (h *Handler) bracketList(ctx *fasthttp.RequestCtx) {
	n, err := ctx.QueryArgs().GetUint("household")
	if err != nil || n < 1 {
		writeError(ctx, fasthttp.StatusBadRequest, "household must be a positive integer")
		return
	}
	writeSuccess(ctx, brackets.Generate(n), "")
}
