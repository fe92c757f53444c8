package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/gg3d"
)

// maxSettingsSize bounds the settings file read into memory.
const maxSettingsSize = 1 << 20

// Settings is the render configuration. It is read from a YAML file and
// then overridden by any flags given on the command line.
type Settings struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Scale   int `yaml:"scale"`
	Workers int `yaml:"workers"`
	Frames  int `yaml:"frames"`

	Shading    string  `yaml:"shading"`
	ToneMapper string  `yaml:"tone_mapper"`
	Exposure   float32 `yaml:"exposure"`
	Bloom      bool    `yaml:"bloom"`
	Wireframe  bool    `yaml:"wireframe"`
	Shadows    bool    `yaml:"shadows"`
	ShadowSize int     `yaml:"shadow_size"`

	Output string `yaml:"output"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Width:      640,
		Height:     480,
		Scale:      1,
		Workers:    0,
		Frames:     1,
		Shading:    "pbr",
		ToneMapper: "aces",
		Exposure:   1,
		Bloom:      true,
		Shadows:    true,
		ShadowSize: 1024,
		Output:     "gg3d.png",
	}
}

// LoadSettings reads a YAML settings file over the defaults. Keys missing
// from the file keep their default values.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	info, err := os.Stat(path)
	if err != nil {
		return s, err
	}
	if info.Size() > maxSettingsSize {
		return s, fmt.Errorf("settings file %s is too large (%d bytes)", path, info.Size())
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, s.Validate()
}

var errSettings = errors.New("invalid settings")

// Validate checks ranges and names.
func (s Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", errSettings, s.Width, s.Height)
	case s.Scale < 1:
		return fmt.Errorf("%w: scale %d", errSettings, s.Scale)
	case s.Frames < 1:
		return fmt.Errorf("%w: frames %d", errSettings, s.Frames)
	case s.Shadows && s.ShadowSize <= 0:
		return fmt.Errorf("%w: shadow size %d", errSettings, s.ShadowSize)
	}
	if _, ok := toneMappers[s.ToneMapper]; !ok {
		return fmt.Errorf("%w: unknown tone mapper %q", errSettings, s.ToneMapper)
	}
	if _, ok := fragmentShaders[s.Shading]; !ok {
		return fmt.Errorf("%w: unknown shading %q", errSettings, s.Shading)
	}
	if _, err := encoderFor(s.Output); err != nil {
		return fmt.Errorf("%w: %w", errSettings, err)
	}
	return nil
}

var toneMappers = map[string]gg3d.ToneMapper{
	"reinhard": gg3d.Reinhard,
	"extended": gg3d.ReinhardExtended(4),
	"aces":     gg3d.ACESFilmic,
	"exposure": gg3d.Exposure(1, nil),
	"clamp":    gg3d.Clamp,
}

// PostProcess returns the post pass configuration for s.
func (s Settings) PostProcess() gg3d.PostProcess {
	p := gg3d.DefaultPostProcess()
	p.Bloom = s.Bloom
	p.Exposure = s.Exposure
	p.ToneMapper = toneMappers[s.ToneMapper]
	return p
}

// RenderOptions returns the draw options for s.
func (s Settings) RenderOptions() gg3d.RenderOptions {
	o := gg3d.DefaultRenderOptions()
	if s.Wireframe {
		o.Passes |= gg3d.PassWireframe
	}
	return o
}
