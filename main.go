package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-pixel-tracer/pkg/config"
	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/integrator"
	"github.com/df07/go-pixel-tracer/pkg/output"
	"github.com/df07/go-pixel-tracer/pkg/renderer"
	"github.com/df07/go-pixel-tracer/pkg/scene"
)

func main() {
	logger := renderer.NewDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, logger)
	if sync, ok := logger.(interface{ Sync() error }); ok {
		_ = sync.Sync()
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the command line flags that are not part of the config file
type options struct {
	configPath string
	noAA       bool
	listScenes bool
	help       bool
}

// parseFlags reads args into cfg. Only flags given on the command line
// override values from the config file.
func parseFlags(args []string, stdout io.Writer) (config.Config, options, error) {
	var opts options
	fs := flag.NewFlagSet("pixeltracer", flag.ContinueOnError)
	fs.SetOutput(stdout)

	fs.StringVar(&opts.configPath, "config", "", "TOML config file (see -help)")
	sceneName := fs.String("scene", config.DefaultSceneName, "Scene: 'default', a TOML scene file, or a name from -list-scenes")
	width := fs.Int("width", 0, "Image width in pixels")
	height := fs.Int("height", 0, "Image height in pixels")
	frames := fs.Int("frames", 0, "Frames accumulated per pixel")
	passes := fs.Int("passes", 0, "Progressive passes")
	maxPathLength := fs.Int("max-path-length", 0, "Path vertices per sample")
	seed := fs.Int64("seed", 0, "Seed of the frame seed sequence")
	workers := fs.Int("workers", 0, "Parallel workers (0 = CPU count)")
	tileSize := fs.Int("tile-size", 0, "Tile size in pixels")
	gamma := fs.Float64("gamma", 0, "Display gamma")
	fs.BoolVar(&opts.noAA, "no-aa", false, "Disable anti-aliasing jitter")
	format := fs.String("format", "", "Output format: png, bmp or tiff")
	scale := fs.Float64("scale", 0, "Resample the final image by this factor")
	out := fs.String("out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	upload := fs.String("upload", "", "Also upload the final image to s3://bucket/key")
	fs.BoolVar(&opts.listScenes, "list-scenes", false, "List the built-in scene and the files in scenes/")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, opts, err
	}

	if opts.help {
		fmt.Fprintln(stdout, "Pixel Tracer")
		fmt.Fprintln(stdout, "Usage: pixeltracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprint(stdout, config.Help)
		fmt.Fprintln(stdout, "S3 credentials are read from S3_ACCESS_KEY, S3_SECRET_KEY, S3_ENDPOINT and S3_REGION,")
		fmt.Fprintln(stdout, "optionally from a .env file in the working directory.")
		return config.Config{}, opts, flag.ErrHelp
	}

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, opts, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Render.Scene = *sceneName
		case "width":
			cfg.Render.Width = *width
		case "height":
			cfg.Render.Height = *height
		case "frames":
			cfg.Render.Frames = *frames
		case "passes":
			cfg.Render.Passes = *passes
		case "max-path-length":
			cfg.Render.MaxPathLength = *maxPathLength
		case "seed":
			cfg.Render.Seed = *seed
		case "workers":
			cfg.Render.Workers = *workers
		case "tile-size":
			cfg.Render.TileSize = *tileSize
		case "gamma":
			cfg.Render.Gamma = *gamma
		case "no-aa":
			cfg.Render.AntiAlias = !opts.noAA
		case "format":
			cfg.Output.Format = *format
		case "scale":
			cfg.Output.Scale = *scale
		case "out":
			cfg.Output.Path = *out
		case "upload":
			cfg.Output.Upload = *upload
		}
	})

	// An explicit output file decides the format unless -format is given
	if cfg.Output.Path != "" && !flagSet(fs, "format") {
		if f, err := output.FormatFromPath(cfg.Output.Path); err == nil {
			cfg.Output.Format = string(f)
		}
	}

	return cfg, opts, nil
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// outputPath returns the configured path or a timestamped default
func outputPath(cfg config.Config, format output.Format, now time.Time) string {
	if cfg.Output.Path != "" {
		return cfg.Output.Path
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", cfg.SceneName(), "render_"+timestamp+format.Extension())
}

func run(ctx context.Context, args []string, stdout io.Writer, logger core.Logger) error {
	// Credentials for uploads may live in .env; a missing file is fine
	_ = godotenv.Load()

	cfg, opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	if opts.listScenes {
		return listScenes(stdout, scene.FindScenesDir())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := cfg.Format()
	if err != nil {
		return err
	}

	selectedScene, err := cfg.Scene()
	if err != nil {
		return err
	}

	var publisher *output.Publisher
	var location output.S3Location
	if cfg.Output.Upload != "" {
		location, err = output.ParseS3URL(cfg.Output.Upload)
		if err != nil {
			return err
		}
		client, err := output.NewS3Client(output.S3ConfigFromEnv())
		if err != nil {
			return err
		}
		publisher = output.NewPublisher(client, logger)
	}

	width, height := cfg.Render.Width, cfg.Render.Height
	camera := renderer.NewCamera(cfg.CameraConfig(), width, height)
	estimator := integrator.NewPathTracingIntegrator(cfg.IntegratorConfig())
	pixel := renderer.NewPixelRenderer(selectedScene, camera, estimator, cfg.Render.AntiAlias)

	raytracer, err := renderer.NewProgressiveRaytracer(pixel, width, height, cfg.ProgressiveConfig(), logger)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	logger.Printf("Rendering scene %q at %dx%d, %s primitives, %d frames, path length %d\n",
		cfg.SceneName(), width, height, p.Sprintf("%d", selectedScene.GetPrimitiveCount()),
		cfg.Render.Frames, cfg.Render.MaxPathLength)

	startTime := time.Now()
	passChan, _, errChan := raytracer.RenderProgressive(ctx, renderer.RenderOptions{})

	var final renderer.PassResult
	for pass := range passChan {
		final = pass
	}
	if err := <-errChan; err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if final.Image == nil {
		return fmt.Errorf("render produced no image")
	}

	renderTime := time.Since(startTime)
	stats := final.Stats
	logger.Printf("Render completed in %v: %s samples (%.1f per pixel)\n",
		renderTime, p.Sprintf("%d", stats.TotalSamples), stats.AverageSamples)
	logger.Printf("Average luminance %.4f, per-pixel variance %.4g\n", stats.AverageLuminance, stats.AverageVariance)
	if seconds := renderTime.Seconds(); seconds > 0 {
		logger.Printf("Throughput: %s samples/s\n", p.Sprintf("%.0f", float64(stats.TotalSamples)/seconds))
	}

	var img image.Image = final.Image
	img, err = output.Scale(img, cfg.Output.Scale)
	if err != nil {
		return err
	}

	filename := outputPath(cfg, format, time.Now())
	if err := output.WriteFile(filename, img, format); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)

	if publisher != nil {
		if err := publisher.PublishImage(ctx, location, img, format); err != nil {
			return err
		}
	}

	return nil
}

// listScenes prints every scene -scene accepts, grouped as in the web UI
func listScenes(w io.Writer, dir string) error {
	response, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			name := strings.TrimPrefix(info.ID, "file:")
			if info.Description != "" {
				fmt.Fprintf(w, "  %-24s %s - %s\n", name, info.DisplayName, info.Description)
			} else {
				fmt.Fprintf(w, "  %-24s %s\n", name, info.DisplayName)
			}
		}
	}
	return nil
}
