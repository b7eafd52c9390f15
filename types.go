package md2img

import (
	"fmt"
	"log/slog"
	"time"
)

// Mode selects between literal-text passthrough and image rendering.
type Mode string

// Render mode constants.
const (
	// ModePlain returns markdown unchanged from Render.
	ModePlain Mode = "plain"
	// ModeRendered paints markdown to an image via the backend.
	ModeRendered Mode = "rendered"
)

// Backend kind constants for configuration.
const (
	BackendChrome  = "chrome"
	BackendService = "service"
)

// Defaults applied by New when no option overrides them.
const (
	// DefaultThreshold is the character count above which rendering
	// triggers in ModeRendered. Zero means always render.
	DefaultThreshold = 200

	// defaultTimeout bounds backend page loads and service calls.
	defaultTimeout = 30 * time.Second
)

// Config holds the mode/threshold policy for an Engine.
// Immutable after construction; read on every render call.
type Config struct {
	Mode      Mode
	Threshold int
}

// DefaultConfig returns the passthrough configuration.
func DefaultConfig() Config {
	return Config{Mode: ModePlain, Threshold: DefaultThreshold}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Mode {
	case ModePlain, ModeRendered:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidThreshold, c.Threshold)
	}
	return nil
}

// Option configures an Engine.
type Option func(*Engine)

// WithMode sets the render mode.
func WithMode(m Mode) Option {
	return func(e *Engine) { e.cfg.Mode = m }
}

// WithThreshold sets the character-length cutoff for ModeRendered.
// Zero means always render.
func WithThreshold(n int) Option {
	return func(e *Engine) { e.cfg.Threshold = n }
}

// WithBackend injects a custom image backend (e.g. by tests, or a
// NewServiceBackend for hosted rendering). When unset, New creates a
// local Chrome backend lazily.
func WithBackend(b ImageBackend) Option {
	return func(e *Engine) { e.backend = b }
}

// WithTimeout sets the backend operation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2img: WithTimeout duration must be positive")
	}
	return func(e *Engine) { e.timeout = d }
}

// WithArtifactDir overrides the directory holding rendered image files.
// The directory is created on demand and never removed by the engine.
func WithArtifactDir(dir string) Option {
	return func(e *Engine) { e.artifactDir = dir }
}

// WithLogger sets the logger used for non-fatal cleanup diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}
