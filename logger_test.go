package gg3d

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/gg3d/math3d"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	h := nopHandler{}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("n", 1)}).(nopHandler); !ok {
		t.Error("WithAttrs() did not return a nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup() did not return a nopHandler")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if newNopLogger().Enabled(context.Background(), level) {
			t.Errorf("nop logger enabled for %v", level)
		}
	}
}

func TestDroppedEntityIsWarned(t *testing.T) {
	buf := captureLogs(t, slog.LevelWarn)
	s := newScene(t, 4, math3d.V3(0, 0, 5), flatShaders())

	_, err := s.r.RenderFrame([]Entity{{Mesh: Handle{Index: 5, Generation: 2}}})
	if err == nil {
		t.Fatal("RenderFrame() error = nil")
	}
	out := buf.String()
	if !strings.Contains(out, "entity dropped") || !strings.Contains(out, "index=0") {
		t.Errorf("log = %q, want a warning naming entity 0", out)
	}
}

func TestFrameStatsLogged(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)
	s := newScene(t, 8, math3d.V3(0, 0, 5), flatShaders())

	s.r.BeginFrame()
	_ = s.r.RenderEntity(math3d.Identity4(), NewQuad(1, 1), Handle{})
	s.r.EndFrame()

	if out := buf.String(); !strings.Contains(out, "frame done") || !strings.Contains(out, "stats.triangles=2") {
		t.Errorf("log = %q, want frame stats", out)
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	if l := Logger(); l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestSetLoggerDuringShadowPasses(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	s := newScene(t, 8, math3d.V3(0, 0, 5), lambertShaders(), WithParallelShadows(true))
	for range 3 {
		s.ctx.AddDirectionalLight(DirectionalLight{
			Direction: math3d.V3(0, -1, 0.2),
			Color:     math3d.V3(1, 1, 1),
			Shadow:    NewShadowMap(16, s.res),
		})
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})))
			SetLogger(nil)
		}
	}()
	entities := shadowScene(s.res)
	entities = append(entities, Entity{Mesh: Handle{Index: 9, Generation: 1}})
	for range 5 {
		_, _ = s.r.RenderFrame(entities)
	}
	wg.Wait()
}

func BenchmarkLoggerDisabled(b *testing.B) {
	l := Logger()
	st := Stats{Triangles: 12}
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("gg3d: frame done", "stats", st)
	}
}
