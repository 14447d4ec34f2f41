package handler

import (
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"primeadapt/internal/model"
)

const traceKey = "trace_id"

func newTraceID() string {
	return uuid.New().String()
}

func traceID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue(traceKey).(string)
	return id
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body model.APIResponse) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(body); err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	}
}

func writeSuccess(ctx *fasthttp.RequestCtx, data interface{}, message string) {
	writeJSON(ctx, fasthttp.StatusOK, model.APIResponse{
		Status:  model.StatusSuccess,
		Code:    fasthttp.StatusOK,
		Message: message,
		TraceID: traceID(ctx),
		Data:    data,
	})
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.APIResponse{
		Status:  model.StatusError,
		Code:    status,
		Message: message,
		TraceID: traceID(ctx),
	})
}

// decode reads an optional JSON body into v.
func decode(ctx *fasthttp.RequestCtx, v interface{}) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// decodeValid is decode plus struct tag validation.
func (h *Handler) decodeValid(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if !decode(ctx, v) {
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}
