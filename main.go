package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/exporter"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	config    renderer.Config
	policy    geometry.HitPolicy
	order     geometry.Order
	format    exporter.Format
	output    string
	verbose   bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one render. Panics anywhere in the pipeline are returned as
// errors so main can exit non-zero without writing an output file.
func run(args []string, stdout, stderr io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected panic: %v", r)
		}
	}()

	opts, err := parseFlags(args, stdout, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	core.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	aspectRatio := float64(opts.config.Width) / float64(opts.config.Height)
	selected, err := scene.Load(opts.sceneName, aspectRatio, opts.config.Seed, scene.Options{
		Policy: opts.policy,
		Order:  opts.order,
	})
	if err != nil {
		return err
	}
	logger.Info("scene loaded", "scene", selected.Name, "shapes", selected.GetShapeCount(),
		"policy", opts.policy.String())

	raytracer, err := renderer.NewRaytracer(selected, opts.config)
	if err != nil {
		return err
	}

	img, stats, err := raytracer.Render(ctx, progressLogger(logger))
	if err != nil {
		if failed := renderer.FailedTiles(err); len(failed) > 0 {
			logger.Error("render failed", "failed_tiles", failed)
		}
		return err
	}

	if err := exporter.Save(opts.output, img, opts.format); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "Rendered %dx%d in %v: %d tiles, %d pixels, %d samples (%.1f per pixel)\n",
		img.Width, img.Height, stats.Duration.Round(time.Millisecond),
		stats.TotalTiles, stats.TotalPixels, stats.TotalSamples, stats.AverageSamples())
	fmt.Fprintf(stdout, "Render saved as %s\n", opts.output)
	return nil
}

// progressLogger reports render progress roughly every ten percent of tiles
func progressLogger(logger *slog.Logger) func(renderer.TileCompletionResult) {
	lastDecile := 0
	return func(result renderer.TileCompletionResult) {
		decile := result.TileNumber * 10 / result.TotalTiles
		if decile > lastDecile {
			lastDecile = decile
			logger.Info("render progress", "tiles", result.TileNumber, "total", result.TotalTiles,
				"percent", decile*10)
		}
	}
}

func parseFlags(args []string, stdout, stderr io.Writer) (options, error) {
	defaults := renderer.DefaultConfig()

	fs := flag.NewFlagSet("tile-pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	sceneName := fs.String("scene", "default", "Scene preset: 'default', 'test' or 'random'")
	width := fs.Int("width", defaults.Width, "Image width in pixels")
	height := fs.Int("height", 0, "Image height in pixels (0 = width for a 16:9 aspect ratio)")
	samples := fs.Int("samples", defaults.SamplesPerPixel, "Samples per pixel")
	depth := fs.Int("depth", defaults.MaxDepth, "Maximum ray bounce depth")
	tilesX := fs.Int("tiles-x", defaults.DispatchX, "Tile grid columns")
	tilesY := fs.Int("tiles-y", defaults.DispatchY, "Tile grid rows")
	workers := fs.Int("workers", defaults.NumWorkers, "Concurrent tile workers (0 = CPU count)")
	policyName := fs.String("policy", "nearest", "Hit policy: 'nearest', 'first' or 'tree'")
	orderName := fs.String("order", "none", "Priority order for list policies: 'none', 'asc' or 'desc'")
	formatName := fs.String("format", "", "Output format: ppm, png, bmp or tiff (default from -output, else png)")
	output := fs.String("output", "", "Output file (default output/<scene>/render_<timestamp>.<ext>)")
	seed := fs.Int64("seed", defaults.Seed, "Random seed; the same seed renders the same image")
	verbose := fs.Bool("v", false, "Enable debug logging")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *help {
		printHelp(stdout, fs)
		return options{}, flag.ErrHelp
	}

	opts := options{
		sceneName: *sceneName,
		output:    *output,
		verbose:   *verbose,
	}

	opts.config = defaults
	opts.config.Width = *width
	opts.config.Height = *height
	if opts.config.Height == 0 {
		opts.config.Height = max(1, *width*9/16)
	}
	opts.config.SamplesPerPixel = *samples
	opts.config.MaxDepth = *depth
	opts.config.DispatchX = *tilesX
	opts.config.DispatchY = *tilesY
	opts.config.NumWorkers = *workers
	opts.config.Seed = *seed
	if err := opts.config.Validate(); err != nil {
		return options{}, err
	}

	policy, err := geometry.ParseHitPolicy(*policyName)
	if err != nil {
		return options{}, err
	}
	opts.policy = policy

	order, err := parseOrder(*orderName)
	if err != nil {
		return options{}, err
	}
	opts.order = order

	switch {
	case *formatName != "":
		if opts.format, err = exporter.ParseFormat(*formatName); err != nil {
			return options{}, err
		}
	case opts.output != "":
		if opts.format, err = exporter.FormatFromPath(opts.output); err != nil {
			return options{}, err
		}
	default:
		opts.format = exporter.FormatPNG
	}

	if opts.output == "" {
		timestamp := time.Now().Format("20060102_150405")
		opts.output = filepath.Join("output", opts.sceneName,
			fmt.Sprintf("render_%s%s", timestamp, opts.format.Extension()))
	}

	return opts, nil
}

func parseOrder(name string) (geometry.Order, error) {
	switch name {
	case "none", "":
		return geometry.OrderNone, nil
	case "asc", "ascending":
		return geometry.OrderAscending, nil
	case "desc", "descending":
		return geometry.OrderDescending, nil
	}
	return 0, fmt.Errorf("unknown order %q (want none, asc or desc)", name)
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Tile Path Tracer")
	fmt.Fprintln(w, "Usage: tile-pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-8s - %s\n", info.ID, info.Description)
	}
}
