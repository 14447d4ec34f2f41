package widget

import (
	"sync"

	"primeadapt/internal/config"
)

// StylesheetID names the shared stylesheet; it is injected once per process.
const StylesheetID = "maprimeadapt-styles"

// Stylesheet is the process-wide style state shared by every widget
// instance. Injecting twice is a no-op.
type Stylesheet struct {
	mu        sync.Mutex
	injected  bool
	variables map[string]string
}

var DefaultStylesheet = &Stylesheet{}

// Inject installs the stylesheet unless it already exists and reports
// whether this call installed it.
func (s *Stylesheet) Inject(theme config.Theme) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.injected {
		return false
	}
	s.injected = true
	s.variables = themeVariables(theme)
	return true
}

// Update rewrites the CSS variables of an injected stylesheet.
func (s *Stylesheet) Update(theme config.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injected = true
	s.variables = themeVariables(theme)
}

func (s *Stylesheet) Injected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.injected
}

func (s *Stylesheet) Variables() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.variables))
	for k, v := range s.variables {
		out[k] = v
	}
	return out
}

func themeVariables(t config.Theme) map[string]string {
	return map[string]string{
		"--primary-color":    t.PrimaryColor,
		"--secondary-color":  t.SecondaryColor,
		"--background-light": t.BackgroundLight,
		"--border-radius":    t.BorderRadius,
	}
}
