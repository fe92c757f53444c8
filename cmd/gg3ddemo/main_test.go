package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettingsKeepsDefaults(t *testing.T) {
	path := writeFile(t, "demo.yml", "width: 320\nshading: phong\nbloom: false\n")
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	want := DefaultSettings()
	want.Width = 320
	want.Shading = "phong"
	want.Bloom = false
	if s != want {
		t.Errorf("LoadSettings() = %+v, want %+v", s, want)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "width: [1, 2\n"},
		{"bad size", "width: -4\n"},
		{"bad shading", "shading: toon\n"},
		{"bad format", "output: out.gif\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSettings(writeFile(t, "demo.yml", tt.content)); err == nil {
				t.Error("LoadSettings() error = nil")
			}
		})
	}
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadSettings(missing) error = %v, want ErrNotExist", err)
	}
}

func TestParseArgsFlagsOverrideConfig(t *testing.T) {
	path := writeFile(t, "demo.yml", "width: 320\nheight: 200\nexposure: 2\n")
	s, cli, err := parseArgs([]string{"-config", path, "-height", "100", "-shadows=false", "-lang", "de"})
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if s.Width != 320 || s.Height != 100 || s.Exposure != 2 || s.Shadows {
		t.Errorf("settings = %+v, want width from file, height and shadows from flags", s)
	}
	if cli.lang != "de" || cli.config != path {
		t.Errorf("cli = %+v", cli)
	}
}

func TestParseArgsInvalid(t *testing.T) {
	if _, _, err := parseArgs([]string{"-tonemap", "sepia"}); err == nil {
		t.Error("parseArgs() accepted an unknown tone mapper")
	}
}

func TestFramePath(t *testing.T) {
	tests := []struct {
		path string
		i, n int
		want string
	}{
		{"out.png", 0, 1, "out.png"},
		{"out.png", 3, 10, "out_3.png"},
		{"dir/out.bmp", 7, 100, "dir/out_07.bmp"},
	}
	for _, tt := range tests {
		if got := framePath(tt.path, tt.i, tt.n); got != tt.want {
			t.Errorf("framePath(%q, %d, %d) = %q, want %q", tt.path, tt.i, tt.n, got, tt.want)
		}
	}
}

func TestEncoderFor(t *testing.T) {
	for _, path := range []string{"a.png", "a.PNG", "a.bmp", "a.tif", "a.tiff"} {
		if _, err := encoderFor(path); err != nil {
			t.Errorf("encoderFor(%q) error = %v", path, err)
		}
	}
	if _, err := encoderFor("a.jpg"); err == nil {
		t.Error("encoderFor(.jpg) error = nil")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	s := DefaultSettings()
	s.Width, s.Height = 48, 32
	s.Scale = 2
	s.Frames = 2
	s.ShadowSize = 64
	s.Wireframe = true
	s.Output = filepath.Join(dir, "frame.tif")

	var out bytes.Buffer
	if err := run(s, message.NewPrinter(language.English), &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	for i := range 2 {
		if _, err := os.Stat(framePath(s.Output, i, 2)); err != nil {
			t.Errorf("frame %d not written: %v", i, err)
		}
	}
	if !strings.Contains(out.String(), "2 frame(s) at 48x32") {
		t.Errorf("report = %q", out.String())
	}
}
