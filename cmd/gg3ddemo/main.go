// Command gg3ddemo renders a small lit scene with the gg3d software
// pipeline and writes it as PNG, BMP or TIFF.
//
// Settings come from an optional YAML file (-config) and are overridden
// by flags. With -frames N it renders a turntable sequence of N images.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/chewxy/math32"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/gg3d"
	"github.com/gogpu/gg3d/math3d"
	"github.com/gogpu/gg3d/shader"
)

// cliOptions are the flags that are not render settings.
type cliOptions struct {
	config  string
	verbose bool
	lang    string
}

func main() {
	s, cli, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
	if cli.verbose {
		gg3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	p := message.NewPrinter(language.Make(cli.lang))
	if err := run(s, p, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type float32Value struct{ p *float32 }

func (v float32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatFloat(float64(*v.p), 'g', -1, 32)
}

func (v float32Value) Set(s string) error {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*v.p = float32(f)
	return nil
}

// bindFlags registers one flag per setting, writing into s.
func bindFlags(fs *flag.FlagSet, s *Settings) {
	fs.IntVar(&s.Width, "width", s.Width, "image width")
	fs.IntVar(&s.Height, "height", s.Height, "image height")
	fs.IntVar(&s.Scale, "scale", s.Scale, "integer upscale factor of the written image")
	fs.IntVar(&s.Workers, "workers", s.Workers, "worker goroutines for full-screen passes (0 = GOMAXPROCS)")
	fs.IntVar(&s.Frames, "frames", s.Frames, "number of turntable frames")
	fs.StringVar(&s.Shading, "shading", s.Shading, "fragment shader: pbr, phong, flat or normals")
	fs.StringVar(&s.ToneMapper, "tonemap", s.ToneMapper, "tone mapper: reinhard, extended, aces, exposure or clamp")
	fs.Var(float32Value{&s.Exposure}, "exposure", "exposure multiplier")
	fs.BoolVar(&s.Bloom, "bloom", s.Bloom, "enable bloom")
	fs.BoolVar(&s.Wireframe, "wireframe", s.Wireframe, "overlay triangle edges")
	fs.BoolVar(&s.Shadows, "shadows", s.Shadows, "enable the sun's shadow map")
	fs.IntVar(&s.ShadowSize, "shadow-size", s.ShadowSize, "shadow map size in texels")
	fs.StringVar(&s.Output, "o", s.Output, "output file (.png, .bmp, .tif)")
}

// parseArgs parses the command line. Flags given explicitly override the
// values of the -config file.
func parseArgs(args []string) (Settings, cliOptions, error) {
	var cli cliOptions
	s := DefaultSettings()
	fs := flag.NewFlagSet("gg3ddemo", flag.ContinueOnError)
	bindFlags(fs, &s)
	fs.StringVar(&cli.config, "config", "", "YAML settings file")
	fs.BoolVar(&cli.verbose, "v", false, "log pipeline events to stderr")
	fs.StringVar(&cli.lang, "lang", "en", "language tag for number formatting in the report")
	if err := fs.Parse(args); err != nil {
		return s, cli, err
	}
	if cli.config == "" {
		return s, cli, s.Validate()
	}

	loaded, err := LoadSettings(cli.config)
	if err != nil {
		return s, cli, err
	}
	over := flag.NewFlagSet("overrides", flag.ContinueOnError)
	bindFlags(over, &loaded)
	fs.Visit(func(f *flag.Flag) {
		if over.Lookup(f.Name) != nil && err == nil {
			err = over.Set(f.Name, f.Value.String())
		}
	})
	if err != nil {
		return loaded, cli, err
	}
	return loaded, cli, loaded.Validate()
}

func run(s Settings, p *message.Printer, out io.Writer) error {
	fb := gg3d.NewFramebuffer(s.Width, s.Height, gg3d.AttachAll)
	ctx := gg3d.NewShaderContext()
	res := gg3d.NewResources()
	scene := buildScene(ctx, res, s)

	r := gg3d.NewRenderer(fb, ctx, res, shader.With(fragmentShaders[s.Shading]),
		gg3d.WithWorkers(s.Workers),
		gg3d.WithPostProcess(s.PostProcess()),
		gg3d.WithRenderOptions(s.RenderOptions()),
		gg3d.WithClearColor(math3d.V4(0.05, 0.06, 0.09, 1)),
	)
	defer r.Close()

	var bar *progressbar.ProgressBar
	if s.Frames > 1 {
		bar = progressbar.Default(int64(s.Frames), "rendering")
		defer bar.Close()
	}

	var total gg3d.Stats
	start := time.Now()
	aspect := float32(s.Width) / float32(s.Height)
	for i := range s.Frames {
		angle := 2 * math32.Pi * float32(i) / float32(s.Frames)
		view, proj := camera(0.6+angle/4, aspect)
		ctx.SetCamera(view, proj)
		scene.turn(angle)

		if _, err := r.RenderFrame(scene.entities); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		total.Add(r.Stats())

		path := framePath(s.Output, i, s.Frames)
		if err := writeImage(path, upscale(fb.ColorImage(), s.Scale)); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	report(p, out, s, total, time.Since(start), scene.sun)
	return nil
}

// report prints the accumulated frame statistics.
func report(p *message.Printer, out io.Writer, s Settings, st gg3d.Stats, elapsed time.Duration, sun *gg3d.ShadowMap) {
	p.Fprintf(out, "%d frame(s) at %dx%d in %v\n", s.Frames, s.Width, s.Height, elapsed.Round(time.Millisecond))
	p.Fprintf(out, "  entities   %d (%d culled)\n", st.Entities, st.EntitiesCulled)
	p.Fprintf(out, "  triangles  %d (%d clipped, %d culled, %d degenerate)\n",
		st.Triangles, st.TrianglesClipped, st.TrianglesCulled, st.TrianglesDegenerate)
	p.Fprintf(out, "  fragments  %d (%d discarded, %d transparent)\n",
		st.Fragments, st.FragmentsDiscarded, st.TransparentFragments)
	p.Fprintf(out, "  lit pixels %d\n", st.Lit)
	if sun != nil {
		p.Fprintf(out, "  shadow     %d texels, %d fragments last frame\n", sun.Size()*sun.Size(), sun.Stats().Fragments)
	}
	p.Fprintf(out, "written to %s\n", framePath(s.Output, 0, s.Frames))
}
