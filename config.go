package reveal

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// BorderDetectionMode selects how a boundary decides that the pointer is
// close enough to light its targets.
type BorderDetectionMode uint8

const (
	// BorderStrictEdge relies on the host's enter and leave events only.
	BorderStrictEdge BorderDetectionMode = iota
	// BorderAutoFit additionally hit-tests every pointer move against the
	// container grown by the largest glow radius, so glows spill past the
	// boundary edge.
	BorderAutoFit
)

func (m BorderDetectionMode) String() string {
	if m == BorderAutoFit {
		return "auto-fit"
	}
	return "strict-edge"
}

// ParseBorderDetectionMode parses "strict-edge" or "auto-fit". The camel-case
// spellings "strictEdge" and "experimentalAutoFit" are accepted as well.
func ParseBorderDetectionMode(s string) (BorderDetectionMode, error) {
	switch strings.TrimSpace(s) {
	case "", "strict-edge", "strictEdge":
		return BorderStrictEdge, nil
	case "auto-fit", "autoFit", "experimentalAutoFit":
		return BorderAutoFit, nil
	}
	return 0, &ValidationError{Property: "border-detection", Value: s, Allowed: []string{"strict-edge", "auto-fit"}}
}

// ParseStyleMode parses "compat" or "typed".
func ParseStyleMode(s string) (StyleMode, error) {
	switch strings.TrimSpace(s) {
	case "", "compat":
		return StyleCompat, nil
	case "typed":
		return StyleTyped, nil
	}
	return 0, &ValidationError{Property: "style-mode", Value: s, Allowed: []string{"compat", "typed"}}
}

// easings maps configuration names to gween easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"out-cubic":   ease.OutCubic,
	"in-out-sine": ease.InOutSine,
	"out-expo":    ease.OutExpo,
}

// EasingByName returns the easing function registered under name.
func EasingByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[strings.TrimSpace(name)]
	return fn, ok
}

// Config is the immutable configuration shared by a Manager and its
// boundaries. Build one with ConfigBuilder.
type Config struct {
	borderDetection BorderDetectionMode
	styleMode       StyleMode
	styleSheet      *StyleSheet
	styleFactory    StyleSourceFactory
	logger          *slog.Logger
	rippleEasing    ease.TweenFunc
	pixelRatio      float64
	profile         bool
	clock           func() int64
	eventSink       EventSink
}

// DefaultConfig returns the configuration produced by an empty builder.
func DefaultConfig() *Config {
	return NewConfigBuilder().Build()
}

func (c *Config) BorderDetection() BorderDetectionMode { return c.borderDetection }
func (c *Config) StyleMode() StyleMode                 { return c.styleMode }
func (c *Config) StyleSheet() *StyleSheet              { return c.styleSheet }
func (c *Config) Logger() *slog.Logger                 { return c.logger }
func (c *Config) RippleEasing() ease.TweenFunc         { return c.rippleEasing }
func (c *Config) PixelRatio() float64                  { return c.pixelRatio }
func (c *Config) Profile() bool                        { return c.profile }
func (c *Config) EventSink() EventSink                 { return c.eventSink }

// Now returns the current frame clock reading in milliseconds.
func (c *Config) Now() int64 { return c.clock() }

// StyleSourceFor returns the StyleSource of el under this configuration.
func (c *Config) StyleSourceFor(el Element) StyleSource { return c.styleFactory(el) }

// ConfigBuilder collects options for a Config. The zero value is usable;
// every With method returns a modified copy.
type ConfigBuilder struct {
	borderDetection BorderDetectionMode
	styleMode       StyleMode
	styleSheet      *StyleSheet
	styleFactory    StyleSourceFactory
	logger          *slog.Logger
	rippleEasing    ease.TweenFunc
	pixelRatio      float64
	profile         bool
	clock           func() int64
	eventSink       EventSink
}

// NewConfigBuilder returns a builder with default options.
func NewConfigBuilder() ConfigBuilder { return ConfigBuilder{} }

func (b ConfigBuilder) WithBorderDetection(m BorderDetectionMode) ConfigBuilder {
	b.borderDetection = m
	return b
}

func (b ConfigBuilder) WithStyleMode(m StyleMode) ConfigBuilder {
	b.styleMode = m
	return b
}

func (b ConfigBuilder) WithStyleSheet(s *StyleSheet) ConfigBuilder {
	b.styleSheet = s
	return b
}

// WithStyleSourceFactory overrides the StyleSource strategy entirely. The
// style mode and sheet are then ignored for StyleSource construction.
func (b ConfigBuilder) WithStyleSourceFactory(f StyleSourceFactory) ConfigBuilder {
	b.styleFactory = f
	return b
}

func (b ConfigBuilder) WithLogger(l *slog.Logger) ConfigBuilder {
	b.logger = l
	return b
}

// WithRippleEasing sets the easing applied to ripple progress before it is
// turned into gradient stops.
func (b ConfigBuilder) WithRippleEasing(fn ease.TweenFunc) ConfigBuilder {
	b.rippleEasing = fn
	return b
}

// WithPixelRatio sets the device pixel ratio used to size surfaces.
func (b ConfigBuilder) WithPixelRatio(r float64) ConfigBuilder {
	b.pixelRatio = r
	return b
}

// WithProfile enables per-tick phase timing.
func (b ConfigBuilder) WithProfile(on bool) ConfigBuilder {
	b.profile = on
	return b
}

// WithClock sets the millisecond clock frame ids are read from.
func (b ConfigBuilder) WithClock(now func() int64) ConfigBuilder {
	b.clock = now
	return b
}

// WithEventSink forwards boundary events to sink.
func (b ConfigBuilder) WithEventSink(sink EventSink) ConfigBuilder {
	b.eventSink = sink
	return b
}

// Build freezes the options into a Config.
func (b ConfigBuilder) Build() *Config {
	c := &Config{
		borderDetection: b.borderDetection,
		styleMode:       b.styleMode,
		styleSheet:      b.styleSheet,
		styleFactory:    b.styleFactory,
		logger:          b.logger,
		rippleEasing:    b.rippleEasing,
		pixelRatio:      b.pixelRatio,
		profile:         b.profile,
		clock:           b.clock,
		eventSink:       b.eventSink,
	}
	if c.styleSheet == nil {
		c.styleSheet = DefaultStyleSheet()
	}
	if c.styleFactory == nil {
		c.styleFactory = newStyleSourceFactory(c.styleMode, c.styleSheet)
	}
	if c.logger == nil {
		c.logger = newNopLogger()
	}
	if c.rippleEasing == nil {
		c.rippleEasing = ease.Linear
	}
	if !(c.pixelRatio > 0) {
		c.pixelRatio = 1
	}
	if c.clock == nil {
		start := time.Now()
		c.clock = func() int64 { return time.Since(start).Milliseconds() }
	}
	return c
}

// --- File configuration ---

// Environment variables that override a configuration file.
const (
	EnvBorderDetection = "REVEAL_BORDER_DETECTION"
	EnvStyleMode       = "REVEAL_STYLE_MODE"
	EnvProfile         = "REVEAL_PROFILE"
)

// FileConfig is the YAML form of the configuration.
//
//	reveal:
//	  border_detection: auto-fit
//	  style_mode: typed
//	  style_sheet: styles.yaml
//	  pixel_ratio: 2
//	  ripple_easing: out-quad
//	  profile: false
//	logging:
//	  level: debug
//	  format: console
//	  file: reveal.log
type FileConfig struct {
	Reveal struct {
		BorderDetection string  `yaml:"border_detection"`
		StyleMode       string  `yaml:"style_mode"`
		StyleSheet      string  `yaml:"style_sheet"`
		PixelRatio      float64 `yaml:"pixel_ratio"`
		RippleEasing    string  `yaml:"ripple_easing"`
		Profile         bool    `yaml:"profile"`
	} `yaml:"reveal"`
	Logging LogOptions `yaml:"logging"`
}

// DefaultFileConfig returns the values used when no file is present.
func DefaultFileConfig() FileConfig {
	var fc FileConfig
	fc.Reveal.BorderDetection = "strict-edge"
	fc.Reveal.StyleMode = "compat"
	fc.Reveal.PixelRatio = 1
	fc.Reveal.RippleEasing = "linear"
	fc.Logging = LogOptions{Level: "info", Format: "console"}
	return fc
}

// LoadConfigFile reads a YAML configuration. A missing file yields the
// defaults. Environment variables are applied on top in both cases.
func LoadConfigFile(path string) (FileConfig, error) {
	fc := DefaultFileConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return fc, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return fc, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	fc.applyEnv()
	return fc, nil
}

func (fc *FileConfig) applyEnv() {
	if v := os.Getenv(EnvBorderDetection); v != "" {
		fc.Reveal.BorderDetection = v
	}
	if v := os.Getenv(EnvStyleMode); v != "" {
		fc.Reveal.StyleMode = v
	}
	if v := os.Getenv(EnvProfile); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			fc.Reveal.Profile = b
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		fc.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		fc.Logging.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		fc.Logging.File = v
	}
}

// Builder converts the file configuration into a ConfigBuilder with a
// logger built from the logging section. A relative style sheet path is
// resolved against the working directory.
func (fc FileConfig) Builder() (ConfigBuilder, error) {
	b := NewConfigBuilder()

	mode, err := ParseBorderDetectionMode(fc.Reveal.BorderDetection)
	if err != nil {
		return b, err
	}
	styleMode, err := ParseStyleMode(fc.Reveal.StyleMode)
	if err != nil {
		return b, err
	}
	b = b.WithBorderDetection(mode).
		WithStyleMode(styleMode).
		WithPixelRatio(fc.Reveal.PixelRatio).
		WithProfile(fc.Reveal.Profile).
		WithLogger(NewLogger(fc.Logging))

	if name := fc.Reveal.RippleEasing; name != "" {
		fn, ok := EasingByName(name)
		if !ok {
			return b, fmt.Errorf("config: unknown ripple easing %q", name)
		}
		b = b.WithRippleEasing(fn)
	}
	if fc.Reveal.StyleSheet != "" {
		sheet, err := LoadStyleSheetFile(fc.Reveal.StyleSheet)
		if err != nil {
			return b, err
		}
		b = b.WithStyleSheet(sheet)
	}
	return b, nil
}
