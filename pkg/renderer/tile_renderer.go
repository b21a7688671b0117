package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileRenderer renders the pixels of one tile at a time into a frame buffer
type TileRenderer struct {
	scene  *scene.Scene
	tracer *Tracer
}

// NewTileRenderer creates a tile renderer with its own tracer
func NewTileRenderer(s *scene.Scene) *TileRenderer {
	return &TileRenderer{
		scene:  s,
		tracer: NewTracer(s),
	}
}

// RenderTile evaluates every pixel inside the tile and writes it to fb
func (tr *TileRenderer) RenderTile(tile *Tile, fb *FrameBuffer) (RenderStats, error) {
	camera := tr.scene.Camera
	samplesPerPixel := max(1, tr.scene.SamplingConfig.SamplesPerPixel)
	sampler := core.NewRandomSampler(tile.Random)

	stats := RenderStats{
		TotalPixels:  tile.Bounds.Dx() * tile.Bounds.Dy(),
		TotalSamples: tile.Bounds.Dx() * tile.Bounds.Dy() * samplesPerPixel,
		Tiles:        1,
	}

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			colorAccum := core.Vec3{}
			for sample := 0; sample < samplesPerPixel; sample++ {
				offset := core.PixelOffset(sample, samplesPerPixel, sampler)
				ray := camera.RayForPixel(x, y, offset.X, offset.Y)
				colorAccum = colorAccum.Add(tr.tracer.TracePrimary(ray))
			}

			if err := fb.Set(x, y, colorAccum.Multiply(1.0/float64(samplesPerPixel))); err != nil {
				// Drain the counters so they are not charged to the next tile
				stats.Trace = tr.tracer.TakeStats()
				return stats, err
			}
		}
	}

	stats.Trace = tr.tracer.TakeStats()
	return stats, nil
}
