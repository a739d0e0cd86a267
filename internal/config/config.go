// Package config loads detector settings from defaults, an optional YAML
// file and ABHINAYA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/face"
)

// EnvPrefix prefixes every environment override, e.g. ABHINAYA_CAMERA_DEVICE.
const EnvPrefix = "ABHINAYA"

// Config holds all runtime settings.
type Config struct {
	Camera     CameraConfig     `mapstructure:"camera" yaml:"camera"`
	Detector   DetectorConfig   `mapstructure:"detector" yaml:"detector"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds" yaml:"thresholds"`
	Window     WindowConfig     `mapstructure:"window" yaml:"window"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Verbose    bool             `mapstructure:"verbose" yaml:"verbose"`
}

// CameraConfig selects the capture device.
type CameraConfig struct {
	Device int  `mapstructure:"device" yaml:"device"`
	Width  int  `mapstructure:"width" yaml:"width"`
	Height int  `mapstructure:"height" yaml:"height"`
	Mirror bool `mapstructure:"mirror" yaml:"mirror"`
}

// DetectorConfig tunes the landmark service.
type DetectorConfig struct {
	MaxHands              int           `mapstructure:"max_hands" yaml:"max_hands"`
	MinConfidence         float64       `mapstructure:"min_confidence" yaml:"min_confidence"`
	MinTrackingConfidence float64       `mapstructure:"min_tracking_confidence" yaml:"min_tracking_confidence"`
	IdleTimeout           time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	Script                string        `mapstructure:"script" yaml:"script,omitempty"`
}

// ThresholdsConfig holds the facial-cue decision thresholds.
type ThresholdsConfig struct {
	BlinkRatio float64 `mapstructure:"blink_ratio" yaml:"blink_ratio"`
	MouthOpen  float64 `mapstructure:"mouth_open" yaml:"mouth_open"`
	Surprised  float64 `mapstructure:"surprised" yaml:"surprised"`
	Neutral    float64 `mapstructure:"neutral" yaml:"neutral"`
}

// WindowConfig sizes the preview window.
type WindowConfig struct {
	Title  string `mapstructure:"title" yaml:"title"`
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
}

// ServerConfig enables the HTTP observer when Addr is set.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the built-in settings.
func Default() *Config {
	det := detector.DefaultConfig()
	return &Config{
		Camera: CameraConfig{
			Device: 0,
			Width:  capture.DefaultWidth,
			Height: capture.DefaultHeight,
			Mirror: true,
		},
		Detector: DetectorConfig{
			MaxHands:              det.MaxHands,
			MinConfidence:         det.MinConfidence,
			MinTrackingConfidence: det.MinTrackingConf,
			IdleTimeout:           det.IdleTimeout,
		},
		Thresholds: ThresholdsConfig{
			BlinkRatio: face.DefaultBlinkRatio,
			MouthOpen:  face.DefaultMouthOpen,
			Surprised:  face.DefaultSurprised,
			Neutral:    face.DefaultNeutral,
		},
		Window: WindowConfig{
			Title:  "Detector",
			Width:  520,
			Height: 400,
		},
	}
}

// NewViper returns a viper instance with every default registered and
// environment overrides enabled.
func NewViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("camera.device", d.Camera.Device)
	v.SetDefault("camera.width", d.Camera.Width)
	v.SetDefault("camera.height", d.Camera.Height)
	v.SetDefault("camera.mirror", d.Camera.Mirror)
	v.SetDefault("detector.max_hands", d.Detector.MaxHands)
	v.SetDefault("detector.min_confidence", d.Detector.MinConfidence)
	v.SetDefault("detector.min_tracking_confidence", d.Detector.MinTrackingConfidence)
	v.SetDefault("detector.idle_timeout", d.Detector.IdleTimeout)
	v.SetDefault("detector.script", d.Detector.Script)
	v.SetDefault("thresholds.blink_ratio", d.Thresholds.BlinkRatio)
	v.SetDefault("thresholds.mouth_open", d.Thresholds.MouthOpen)
	v.SetDefault("thresholds.surprised", d.Thresholds.Surprised)
	v.SetDefault("thresholds.neutral", d.Thresholds.Neutral)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("verbose", d.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path into v and decodes the result. With an empty path the
// working directory and $HOME/.config/abhinaya are searched for config.yaml;
// a missing file there is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the session cannot run with.
func (c *Config) Validate() error {
	if c.Camera.Device < 0 {
		return fmt.Errorf("camera.device must not be negative, got %d", c.Camera.Device)
	}
	if c.Camera.Width < 0 || c.Camera.Height < 0 {
		return fmt.Errorf("camera size must not be negative, got %dx%d", c.Camera.Width, c.Camera.Height)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size must not be negative, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Detector.MaxHands < 1 {
		return fmt.Errorf("detector.max_hands must be at least 1, got %d", c.Detector.MaxHands)
	}

	thresholds := []struct {
		key   string
		value float64
	}{
		{"thresholds.blink_ratio", c.Thresholds.BlinkRatio},
		{"thresholds.mouth_open", c.Thresholds.MouthOpen},
		{"thresholds.surprised", c.Thresholds.Surprised},
		{"thresholds.neutral", c.Thresholds.Neutral},
	}
	for _, th := range thresholds {
		if th.value <= 0 {
			return fmt.Errorf("%s must be positive, got %g", th.key, th.value)
		}
	}

	if c.Thresholds.Neutral > c.Thresholds.Surprised {
		return fmt.Errorf("thresholds.neutral (%g) exceeds thresholds.surprised (%g)",
			c.Thresholds.Neutral, c.Thresholds.Surprised)
	}
	return nil
}

// Save writes c to path as YAML, creating parent directories.
func Save(path string, c *Config) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Dir returns the default configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "abhinaya"), nil
}

// CaptureConfig returns the camera settings for capture.NewCamera.
func (c *Config) CaptureConfig() capture.Config {
	cfg := capture.DefaultConfig()
	cfg.DeviceID = c.Camera.Device
	cfg.Width = c.Camera.Width
	cfg.Height = c.Camera.Height
	return cfg
}

// DetectorConfig returns the landmark service settings.
func (c *Config) DetectorConfig() detector.Config {
	return detector.Config{
		MaxHands:        c.Detector.MaxHands,
		MinConfidence:   c.Detector.MinConfidence,
		MinTrackingConf: c.Detector.MinTrackingConfidence,
		IdleTimeout:     c.Detector.IdleTimeout,
		ScriptPath:      c.Detector.Script,
	}
}

// TrackerThresholds returns the blink and mouth-open thresholds.
func (c *Config) TrackerThresholds() face.Thresholds {
	return face.Thresholds{
		BlinkRatio: c.Thresholds.BlinkRatio,
		MouthOpen:  c.Thresholds.MouthOpen,
	}
}

// EmotionClassifier returns a classifier using the configured thresholds.
func (c *Config) EmotionClassifier() face.Classifier {
	return face.Classifier{
		Surprised: c.Thresholds.Surprised,
		Neutral:   c.Thresholds.Neutral,
	}
}
