package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	sceneFile string
	width     int
	height    int
	spp       int
	depth     int
	workers   int
	gamma     float64
	output    string
	help      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line arguments into options
func parseFlags(args []string, output io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.sceneName, "scene", "default", "Built-in scene name (see -help)")
	fs.StringVar(&opts.sceneFile, "file", "", "XML scene file; overrides -scene")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", -1, "Maximum recursion depth (-1 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.Float64Var(&opts.gamma, "gamma", renderer.DefaultRenderConfig().Gamma, "Output gamma (1 = linear)")
	fs.StringVar(&opts.output, "out", "", "Output PNG path (default: scene output_file, or output/<scene>/render_<timestamp>.png)")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return opts, fs, nil
}

// run parses args, renders the selected scene and writes the PNG
func run(args []string, stdout io.Writer) error {
	opts, fs, err := parseFlags(args, stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.help {
		printHelp(stdout, fs)
		return nil
	}

	s, err := createScene(opts)
	if err != nil {
		return err
	}
	if err := applyOverrides(s, opts); err != nil {
		return err
	}

	config := renderer.DefaultRenderConfig()
	config.NumWorkers = opts.workers
	config.Gamma = opts.gamma

	raytracer := renderer.NewRaytracer(s, config, renderer.NewDefaultLogger())
	fb, _, err := raytracer.Render()
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	filename := outputPath(opts, s, time.Now())
	if err := savePNG(filename, fb, config.Gamma); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", filename)
	return nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Whitted Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-14s %s\n", info.Name, info.Description)
	}
}

// createScene loads the scene file if one is given, otherwise builds a built-in scene
func createScene(opts *options) (*scene.Scene, error) {
	if opts.sceneFile != "" {
		s, err := loaders.LoadSceneXML(opts.sceneFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene: %w", err)
		}
		return s, nil
	}

	s, err := scene.NewBuiltinScene(opts.sceneName)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// applyOverrides applies command line settings on top of the scene's own
func applyOverrides(s *scene.Scene, opts *options) error {
	if opts.width < 0 || opts.height < 0 {
		return fmt.Errorf("%w: image size %dx%d must not be negative", scene.ErrInvalidConfig, opts.width, opts.height)
	}
	if opts.width > 0 || opts.height > 0 {
		override := geometry.CameraConfig{Width: opts.width, Height: opts.height}
		if err := s.SetCamera(geometry.MergeCameraConfig(s.CameraConfig, override)); err != nil {
			return err
		}
	}
	if opts.spp != 0 {
		s.SamplingConfig.SamplesPerPixel = opts.spp
	}
	if opts.depth >= 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	return s.Validate()
}

// outputPath picks where the image is written
func outputPath(opts *options, s *scene.Scene, now time.Time) string {
	if opts.output != "" {
		return opts.output
	}
	if s.OutputFile != "" {
		if filepath.IsAbs(s.OutputFile) || opts.sceneFile == "" {
			return s.OutputFile
		}
		return filepath.Join(filepath.Dir(opts.sceneFile), s.OutputFile)
	}

	name := opts.sceneName
	if opts.sceneFile != "" {
		name = strings.TrimSuffix(filepath.Base(opts.sceneFile), filepath.Ext(opts.sceneFile))
	}
	return filepath.Join("output", name, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// savePNG encodes the frame buffer, creating the output directory if needed
func savePNG(filename string, fb *renderer.FrameBuffer, gamma float64) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := png.Encode(file, fb.ToRGBA(gamma)); err != nil {
		file.Close()
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}
