// Package widget is the host-facing surface of the eligibility wizard. A
// Widget wires a flow controller to a renderer, the webhook sender and the
// host callbacks.
package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"primeadapt/internal/config"
	"primeadapt/internal/delivery"
	"primeadapt/internal/flow"
	"primeadapt/internal/logging"
	"primeadapt/internal/model"
)

var ErrNoContainer = errors.New("container id is required")

// Consent metadata attached to every submission.
const (
	ConsentPurpose         = "Évaluation de l'éligibilité à MaPrimeAdapt et recontact par un conseiller"
	ConsentRetentionPeriod = "3 ans"
	ConsentLegalBasis      = "Consentement (art. 6.1.a RGPD)"
	SubmissionUserAgent    = "browser"
)

type Deps struct {
	Renderer  Renderer
	Analytics Analytics
	Observer  flow.Observer
	Logger    *zap.Logger
	Scheduler delivery.Scheduler
	Client    *resty.Client

	// Context bounds background deliveries. Defaults to context.Background.
	Context context.Context
	Now     func() time.Time
}

type Widget struct {
	mu         sync.Mutex
	cfg        config.Config
	deps       Deps
	ctrl       *flow.Controller
	sender     *delivery.Sender
	observer   flow.Observer
	logger     *zap.Logger
	level      zap.AtomicLevel
	deliveries []*delivery.Delivery
}

// Init builds and mounts a widget. Configuration errors are reported to the
// observer and returned; no widget is created in that case.
func Init(cfg config.Config, deps Deps) (*Widget, error) {
	if deps.Observer == nil {
		deps.Observer = flow.NopObserver{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Renderer == nil {
		deps.Renderer = NewHeadless(nil)
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	fail := func(msg string, err error) (*Widget, error) {
		deps.Logger.Error(msg, zap.Error(err))
		deps.Observer.OnError(msg, err.Error())
		return nil, err
	}

	if cfg.ContainerID == "" {
		return fail("Conteneur introuvable", ErrNoContainer)
	}
	if err := cfg.Validate(); err != nil {
		return fail("Configuration invalide", err)
	}
	level := zap.NewAtomicLevelAt(logging.Level(cfg.Debug))
	logger := logging.WithLevel(deps.Logger, level)
	sender, err := newSender(cfg, deps, logger)
	if err != nil {
		return fail("URL de webhook invalide", err)
	}
	if err := deps.Renderer.Mount(cfg.ContainerID, cfg.Theme); err != nil {
		return fail("Erreur d'initialisation", fmt.Errorf("mount %s: %w", cfg.ContainerID, err))
	}

	w := &Widget{
		cfg:      cfg,
		deps:     deps,
		sender:   sender,
		observer: deps.Observer,
		logger:   logger,
		level:    level,
	}
	w.ctrl = flow.New(&loggingObserver{next: deps.Observer, logger: logger})
	w.deps.Renderer.Render(w.ctrl.View())
	w.logger.Debug("widget initialized", zap.String("container", cfg.ContainerID))
	return w, nil
}

// Auto defers Init until ready is closed. The channel yields the widget, or
// nil when initialization failed or ctx ended first.
func Auto(ctx context.Context, ready <-chan struct{}, cfg config.Config, deps Deps) <-chan *Widget {
	out := make(chan *Widget, 1)
	go func() {
		defer close(out)
		select {
		case <-ready:
		case <-ctx.Done():
			out <- nil
			return
		}
		w, _ := Init(cfg, deps)
		out <- w
	}()
	return out
}

func newSender(cfg config.Config, deps Deps, logger *zap.Logger) (*delivery.Sender, error) {
	if cfg.WebhookURL != "" {
		if _, err := delivery.ValidateEndpoint(cfg.WebhookURL, cfg.PageOrigin); err != nil {
			return nil, err
		}
	}
	policy := delivery.DefaultPolicy()
	policy.MaxRetries = cfg.MaxRetries
	policy.Timeout = cfg.Timeout()
	return delivery.NewSender(delivery.Options{
		Endpoint:   cfg.WebhookURL,
		PageOrigin: cfg.PageOrigin,
		Policy:     policy,
		Scheduler:  deps.Scheduler,
		Logger:     logger.Named("delivery"),
		Reporter:   deps.Observer,
		Client:     deps.Client,
	}), nil
}

func (w *Widget) Select(value string) flow.Outcome {
	return w.apply(func(c *flow.Controller) flow.Outcome { return c.Select(value) })
}

func (w *Widget) Toggle(value string) flow.Outcome {
	return w.apply(func(c *flow.Controller) flow.Outcome { return c.Toggle(value) })
}

func (w *Widget) Input(field, value string) flow.Outcome {
	return w.apply(func(c *flow.Controller) flow.Outcome { return c.Input(field, value) })
}

func (w *Widget) SetConsent(given bool) flow.Outcome {
	return w.apply(func(c *flow.Controller) flow.Outcome { return c.SetConsent(given) })
}

func (w *Widget) Advance() flow.Outcome {
	return w.apply((*flow.Controller).Advance)
}

func (w *Widget) Retreat() flow.Outcome {
	return w.apply((*flow.Controller).Retreat)
}

// apply runs one intent, renders the result and completes the wizard when
// the result screen is reached. Observer callbacks run under the widget
// lock and must not call back into the widget.
func (w *Widget) apply(intent func(*flow.Controller) flow.Outcome) flow.Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := intent(w.ctrl)
	if out.Message != nil {
		w.deps.Renderer.ShowValidation(*out.Message, ValidationTTL)
	}
	w.deps.Renderer.Render(w.ctrl.View())
	if out.Moved && out.Step == model.StepResult {
		w.complete()
	}
	return out
}

func (w *Widget) complete() {
	v := w.ctrl.Verdict()
	if v == nil {
		return
	}
	r := w.ctrl.Responses()
	ts := w.deps.Now().UTC().Format(time.RFC3339)

	sub := model.Submission{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Eligible:    v.Eligible,
		Eligibility: *v,
		AidRate:     v.AidRate,
		Responses:   r,
		SessionID:   uuid.NewString(),
		Timestamp:   ts,
		UserAgent:   SubmissionUserAgent,
		Consent: model.Consent{
			Given:           r.Consent,
			RecordID:        uuid.NewString(),
			Purpose:         ConsentPurpose,
			RetentionPeriod: ConsentRetentionPeriod,
			LegalBasis:      ConsentLegalBasis,
			CollectedAt:     ts,
		},
	}

	w.deliveries = append(w.deliveries, w.sender.Dispatch(w.deps.Context, sub))
	if w.cfg.GoogleAds.Enabled() && w.deps.Analytics != nil {
		w.deps.Analytics.Conversion(w.cfg.GoogleAds, *v)
	}
	w.logger.Debug("wizard completed", zap.Bool("eligible", v.Eligible), zap.String("code", v.Code))
	w.observer.OnComplete(sub)
}

// Reset returns to step 1 with an empty response set. Deliveries already
// dispatched keep running.
func (w *Widget) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctrl.Reset()
	w.deps.Renderer.Render(w.ctrl.View())
	w.logger.Debug("widget reset")
}

// UpdateConfig applies a JSON patch to the current configuration. Keys
// present in patch override, zero values included. An invalid result is
// reported and leaves the widget unchanged.
func (w *Widget) UpdateConfig(patch []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	merged, err := w.cfg.Apply(patch)
	if err != nil {
		w.observer.OnError("Configuration invalide", err.Error())
		return err
	}
	sender, err := newSender(merged, w.deps, w.logger)
	if err != nil {
		w.observer.OnError("URL de webhook invalide", err.Error())
		return err
	}
	w.cfg = merged
	w.sender = sender
	w.level.SetLevel(logging.Level(merged.Debug))
	w.deps.Renderer.ApplyTheme(merged.Theme)
	w.logger.Debug("configuration updated")
	return nil
}

func (w *Widget) Config() config.Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg
}

func (w *Widget) CurrentStep() model.StepInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return model.StepInfo{
		Step:      w.ctrl.Step(),
		Total:     model.TotalSteps,
		Responses: w.ctrl.Responses().Count(),
	}
}

func (w *Widget) View() flow.View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctrl.View()
}

// Deliveries lists the submissions dispatched by this widget.
func (w *Widget) Deliveries() []*delivery.Delivery {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*delivery.Delivery(nil), w.deliveries...)
}

// CheckIntegrity compares what the renderer shows with what the wizard
// expects. It never fails; the report says what is missing.
func (w *Widget) CheckIntegrity() model.IntegrityReport {
	inv := w.deps.Renderer.Inventory()
	checks := map[string]bool{
		"container": inv.Container,
		"questions": inv.Questions == flow.QuestionCount(),
		"buttons":   inv.Buttons == 2,
		"styles":    inv.Styles,
	}
	valid := true
	for _, ok := range checks {
		valid = valid && ok
	}
	w.logger.Debug("integrity check", zap.Bool("valid", valid), zap.Any("checks", checks))
	return model.IntegrityReport{Valid: valid, Checks: checks}
}

type loggingObserver struct {
	next   flow.Observer
	logger *zap.Logger
}

func (o *loggingObserver) OnStep(step model.Step, value string) {
	o.logger.Debug("answer recorded", zap.Stringer("step", step), zap.String("value", value))
	o.next.OnStep(step, value)
}

func (o *loggingObserver) OnComplete(sub model.Submission) {
	o.next.OnComplete(sub)
}

func (o *loggingObserver) OnError(message string, data interface{}) {
	o.logger.Error(message, zap.Any("data", data))
	o.next.OnError(message, data)
}
