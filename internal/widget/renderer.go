package widget

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"primeadapt/internal/brackets"
	"primeadapt/internal/config"
	"primeadapt/internal/flow"
	"primeadapt/internal/model"
)

// ValidationTTL is how long a validation message stays visible.
const ValidationTTL = 5 * time.Second

// Inventory is what a mounted renderer currently shows, used by
// CheckIntegrity.
type Inventory struct {
	Container bool
	Questions int
	Buttons   int
	Styles    bool
}

// Renderer draws views. It never touches the response set directly.
type Renderer interface {
	Mount(containerID string, theme config.Theme) error
	ApplyTheme(theme config.Theme)
	Render(v flow.View)
	ShowValidation(msg model.Message, ttl time.Duration)
	Inventory() Inventory
}

// Analytics receives the conversion pushed after a completed wizard.
type Analytics interface {
	Conversion(ads config.GoogleAds, v model.Verdict)
}

// Headless keeps the last rendered view in memory. The HTTP API serves it
// to browser front ends that do their own drawing.
type Headless struct {
	mu         sync.Mutex
	sheet      *Stylesheet
	now        func() time.Time
	container  string
	screens    map[model.Step]model.Question
	view       flow.View
	validation *model.Message
	validUntil time.Time
}

func NewHeadless(sheet *Stylesheet) *Headless {
	if sheet == nil {
		sheet = DefaultStylesheet
	}
	return &Headless{sheet: sheet, now: time.Now}
}

func (h *Headless) Mount(containerID string, theme config.Theme) error {
	if containerID == "" {
		return ErrNoContainer
	}
	screens := make(map[model.Step]model.Question)
	for s := model.StepResidence; s < model.StepResult; s++ {
		if q, ok := flow.Question(s, brackets.Set{}); ok {
			screens[s] = q
		}
	}
	h.mu.Lock()
	h.container = containerID
	h.screens = screens
	h.mu.Unlock()
	h.sheet.Inject(theme)
	return nil
}

func (h *Headless) ApplyTheme(theme config.Theme) {
	h.sheet.Update(theme)
}

func (h *Headless) Render(v flow.View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.view = v
	if v.Question != nil && h.screens != nil {
		h.screens[v.Step] = *v.Question
	}
}

func (h *Headless) ShowValidation(msg model.Message, ttl time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.validation = &msg
	h.validUntil = h.now().Add(ttl)
}

// Validation returns the message still on screen, if any.
func (h *Headless) Validation() *model.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.validation == nil || !h.now().Before(h.validUntil) {
		h.validation = nil
		return nil
	}
	m := *h.validation
	return &m
}

func (h *Headless) View() flow.View {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.view
}

func (h *Headless) Inventory() Inventory {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.container == "" {
		return Inventory{Styles: h.sheet.Injected()}
	}
	return Inventory{
		Container: true,
		Questions: len(h.screens),
		Buttons:   2,
		Styles:    h.sheet.Injected(),
	}
}

// LogAnalytics records conversions in the log. Hosts without a tag manager
// use it to keep a trace of completed leads.
type LogAnalytics struct {
	Logger *zap.Logger
}

func (a LogAnalytics) Conversion(ads config.GoogleAds, v model.Verdict) {
	if a.Logger == nil {
		return
	}
	a.Logger.Info("conversion",
		zap.String("send_to", ads.ConversionID+"/"+ads.ConversionLabel),
		zap.Bool("eligible", v.Eligible),
		zap.Int("aid_rate", v.Rate()),
	)
}
