package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for the parallel render pass
type RenderConfig struct {
	TileSize   int     // Edge length of each tile in pixels
	NumWorkers int     // Number of parallel workers (0 = use CPU count)
	Gamma      float64 // Gamma applied when converting to 8-bit output
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   DefaultTileSize,
		NumWorkers: 0,   // Auto-detect CPU count
		Gamma:      2.0, // Matches the usual display gamma closely enough
	}
}

// Raytracer renders a scene into a frame buffer using a pool of tile workers
type Raytracer struct {
	scene  *scene.Scene
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:  s,
		config: config,
		logger: logger,
	}
}

// Config returns the render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Render renders the whole image
func (rt *Raytracer) Render() (*FrameBuffer, RenderStats, error) {
	return rt.RenderContext(context.Background())
}

// RenderContext renders the whole image, stopping early if ctx is cancelled.
// On cancellation the partially written buffer is returned along with ctx.Err().
func (rt *Raytracer) RenderContext(ctx context.Context) (*FrameBuffer, RenderStats, error) {
	if rt.scene == nil {
		return nil, RenderStats{}, scene.ErrMissingCamera
	}
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid scene: %w", err)
	}

	width, height := rt.scene.Camera.Width(), rt.scene.Camera.Height()
	fb := NewFrameBuffer(width, height)
	tiles := NewTileGrid(width, height, rt.config.TileSize)

	// Keep a bounded number of tiles in flight so cancellation takes effect quickly
	pool := NewWorkerPool(rt.scene, rt.config.NumWorkers, 0)
	window := 2 * pool.GetNumWorkers()

	var stats RenderStats
	stats.RunID = uuid.NewString()

	rt.logger.Printf("[%s] Rendering %dx%d, %d samples/pixel, max depth %d: %d tiles on %d workers...\n",
		stats.RunID, width, height, rt.scene.SamplingConfig.SamplesPerPixel, rt.scene.SamplingConfig.MaxDepth,
		len(tiles), pool.GetNumWorkers())

	startTime := time.Now()
	pool.Start()

	var renderErr error
	next, inFlight := 0, 0
	submit := func() {
		pool.SubmitTask(TileTask{Tile: tiles[next], TaskID: next, FrameBuffer: fb})
		next++
		inFlight++
	}

	for next < len(tiles) && inFlight < window {
		submit()
	}

	completed := 0
	lastReported := 0
	for inFlight > 0 {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		inFlight--
		completed++

		if result.Error != nil && renderErr == nil {
			renderErr = fmt.Errorf("tile %d: %w", result.TaskID, result.Error)
		}
		stats.Add(result.Stats)

		// Report roughly every 10% of tiles
		if percent := completed * 100 / len(tiles); percent/10 > lastReported/10 {
			rt.logger.Printf("  %d%% (%d/%d tiles)\n", percent, completed, len(tiles))
			lastReported = percent
		}

		if renderErr == nil && ctx.Err() == nil && next < len(tiles) {
			submit()
		}
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	stats.LuminanceMean, stats.LuminanceStdDev = fb.LuminanceStats()

	if renderErr != nil {
		return nil, stats, renderErr
	}
	if err := ctx.Err(); err != nil {
		rt.logger.Printf("Rendering cancelled after %d/%d tiles\n", completed, len(tiles))
		return fb, stats, err
	}

	rt.logger.Printf("[%s] Render completed in %v: %d rays (%d primary, %d secondary, %d shadow), deepest bounce %d\n",
		stats.RunID, stats.Duration, stats.TotalRays(), stats.Trace.PrimaryRays, stats.Trace.SecondaryRays,
		stats.Trace.ShadowRays, stats.Trace.MaxDepthReached)
	rt.logger.Printf("%d pixels at %.1f samples/pixel, luminance mean %.4f, std dev %.4f\n",
		stats.TotalPixels, stats.AverageSamples(), stats.LuminanceMean, stats.LuminanceStdDev)

	return fb, stats, nil
}
