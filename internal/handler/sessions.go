package handler

import (
	"errors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"primeadapt/internal/config"
	"primeadapt/internal/delivery"
	"primeadapt/internal/flow"
	"primeadapt/internal/model"
	"primeadapt/internal/session"
	"primeadapt/internal/widget"
)

// ActionResult is returned by every intent endpoint. Message carries a
// validation failure; it is user feedback, not an API error.
type ActionResult struct {
	Outcome flow.Outcome   `json:"outcome"`
	View    flow.View      `json:"view"`
	Message *model.Message `json:"message,omitempty"`
}

type SessionCreated struct {
	SessionID string    `json:"session_id"`
	View      flow.View `json:"view"`
}

func (h *Handler) sessions(ctx *fasthttp.RequestCtx, method string, parts []string) {
	if len(parts) == 0 {
		if method != fasthttp.MethodPost {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, msgMethodNotAllowed)
			return
		}
		h.createSession(ctx)
		return
	}

	sess, err := h.store.Get(parts[0])
	if err != nil {
		h.serviceError(ctx, err)
		return
	}

	if len(parts) == 1 {
		switch method {
		case fasthttp.MethodGet:
			writeSuccess(ctx, sess.Widget.View(), "")
		case fasthttp.MethodDelete:
			_ = h.store.Delete(sess.ID)
			writeSuccess(ctx, nil, "Session supprimée")
		default:
			writeError(ctx, fasthttp.StatusMethodNotAllowed, msgMethodNotAllowed)
		}
		return
	}
	if len(parts) != 2 {
		writeError(ctx, fasthttp.StatusNotFound, msgNotFound)
		return
	}

	action := parts[1]
	switch {
	case method == fasthttp.MethodGet && action == "step":
		writeSuccess(ctx, sess.Widget.CurrentStep(), "")
	case method == fasthttp.MethodGet && action == "integrity":
		writeSuccess(ctx, sess.Widget.CheckIntegrity(), "")
	case method == fasthttp.MethodPatch && action == "config":
		h.updateConfig(ctx, sess)
	case method == fasthttp.MethodPost:
		h.intent(ctx, sess, action)
	default:
		writeError(ctx, fasthttp.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

func (h *Handler) createSession(ctx *fasthttp.RequestCtx) {
	cfg, err := h.cfg.Apply(ctx.PostBody())
	if err != nil {
		h.serviceError(ctx, err)
		return
	}

	renderer := widget.NewHeadless(nil)
	deps := h.deps
	deps.Renderer = renderer
	deps.Observer = &sessionObserver{logger: h.logger, traceID: traceID(ctx)}

	w, err := widget.Init(cfg, deps)
	if err != nil {
		h.serviceError(ctx, err)
		return
	}
	sess := h.store.Add(w, renderer)
	h.logger.Debug("session created", zap.String("session", sess.ID), zap.String("trace_id", traceID(ctx)))
	writeSuccess(ctx, SessionCreated{SessionID: sess.ID, View: w.View()}, "")
}

func (h *Handler) intent(ctx *fasthttp.RequestCtx, sess *session.Session, action string) {
	w := sess.Widget
	var out flow.Outcome

	switch action {
	case "select", "toggle":
		var req model.SelectRequest
		if !h.decodeValid(ctx, &req) {
			return
		}
		if action == "select" {
			out = w.Select(req.Value)
		} else {
			out = w.Toggle(req.Value)
		}
	case "input":
		var req model.InputRequest
		if !h.decodeValid(ctx, &req) {
			return
		}
		out = w.Input(req.Field, req.Value)
	case "consent":
		var req model.ConsentRequest
		if !h.decodeValid(ctx, &req) {
			return
		}
		out = w.SetConsent(req.Given)
	case "advance":
		out = w.Advance()
	case "retreat":
		out = w.Retreat()
	case "reset":
		w.Reset()
		out = flow.Outcome{Step: model.StepResidence, Moved: true}
	default:
		writeError(ctx, fasthttp.StatusNotFound, msgNotFound)
		return
	}

	writeSuccess(ctx, ActionResult{Outcome: out, View: w.View(), Message: out.Message}, "")
}

func (h *Handler) updateConfig(ctx *fasthttp.RequestCtx, sess *session.Session) {
	if err := sess.Widget.UpdateConfig(ctx.PostBody()); err != nil {
		h.serviceError(ctx, err)
		return
	}
	writeSuccess(ctx, sess.Widget.Config(), "Configuration mise à jour")
}

// serviceError maps domain errors onto HTTP statuses.
func (h *Handler) serviceError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		writeError(ctx, fasthttp.StatusNotFound, "Session introuvable")
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, widget.ErrNoContainer):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	case errors.Is(err, delivery.ErrInvalidWebhook),
		errors.Is(err, delivery.ErrInsecureWebhook):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	default:
		h.logger.Error("unexpected error", zap.Error(err), zap.String("trace_id", traceID(ctx)))
		writeError(ctx, fasthttp.StatusInternalServerError, "Internal server error")
	}
}

// sessionObserver forwards host callbacks of API sessions to the log.
type sessionObserver struct {
	logger  *zap.Logger
	traceID string
}

func (o *sessionObserver) OnStep(model.Step, string) {}

func (o *sessionObserver) OnComplete(sub model.Submission) {
	o.logger.Info("submission completed",
		zap.Bool("eligible", sub.Eligible),
		zap.String("code", sub.Eligibility.Code),
		zap.String("trace_id", o.traceID),
	)
}

func (o *sessionObserver) OnError(message string, data interface{}) {
	o.logger.Warn(message, zap.Any("data", data), zap.String("trace_id", o.traceID))
}
