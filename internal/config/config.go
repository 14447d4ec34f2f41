// Package config holds the widget and server options and loads them from
// JSON5 files, a .env file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/titanous/json5"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DefaultContainerID = "maprimeadapt-simulator"
	DefaultListen      = ":8080"
)

type Theme struct {
	PrimaryColor    string `json:"primaryColor" validate:"omitempty,hexcolor"`
	SecondaryColor  string `json:"secondaryColor" validate:"omitempty,hexcolor"`
	BackgroundLight string `json:"backgroundLight" validate:"omitempty,hexcolor"`
	BorderRadius    string `json:"borderRadius" validate:"max=16"`
}

type GoogleAds struct {
	ConversionID    string `json:"conversionId" validate:"max=64"`
	ConversionLabel string `json:"conversionLabel" validate:"max=128"`
}

// Enabled reports whether a conversion can be pushed.
func (g GoogleAds) Enabled() bool {
	return g.ConversionID != "" && g.ConversionLabel != ""
}

type Config struct {
	ContainerID string    `json:"containerId" validate:"required,max=128"`
	WebhookURL  string    `json:"webhookUrl" validate:"omitempty,url"`
	MaxRetries  int       `json:"maxRetries" validate:"min=0,max=10"`
	TimeoutMs   int       `json:"timeout" validate:"min=1,max=120000"`
	Debug       bool      `json:"debug"`
	Theme       Theme     `json:"theme"`
	GoogleAds   GoogleAds `json:"googleAds"`
	PageOrigin  string    `json:"pageOrigin" validate:"omitempty,url"`

	Listen            string `json:"listen" validate:"required"`
	SessionTTLMinutes int    `json:"sessionTTL" validate:"min=1"`
	MaxSessions       int    `json:"maxSessions" validate:"min=1"`
}

func Defaults() Config {
	return Config{
		ContainerID: DefaultContainerID,
		MaxRetries:  3,
		TimeoutMs:   10000,
		Theme: Theme{
			PrimaryColor:    "#00b894",
			SecondaryColor:  "#95cd93",
			BackgroundLight: "#EFF8F2",
			BorderRadius:    "15px",
		},
		Listen:            DefaultListen,
		SessionTTLMinutes: 30,
		MaxSessions:       10000,
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Apply decodes a JSON (or JSON5) patch over a copy of c. Only the keys
// present in patch change, so zero values such as false, 0 and "" are
// applied too. c is left untouched when the patch is malformed or the
// result is invalid.
func (c Config) Apply(patch []byte) (Config, error) {
	out := c
	if len(bytes.TrimSpace(patch)) > 0 {
		if err := json5.Unmarshal(patch, &out); err != nil {
			return c, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if err := out.Validate(); err != nil {
		return c, err
	}
	return out, nil
}
