package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// ErrPixelOutOfBounds is returned when writing outside the buffer
	ErrPixelOutOfBounds = errors.New("pixel out of bounds")
	// ErrPixelAlreadyWritten is returned when a pixel is written a second time
	ErrPixelAlreadyWritten = errors.New("pixel already written")
)

// FrameBuffer holds the linear RGB color of every pixel of a render.
// Each pixel is written exactly once. Distinct pixels may be written concurrently.
type FrameBuffer struct {
	width, height int
	pixels        []core.Vec3 // Row-major, row 0 at the top
	written       []bool
}

// NewFrameBuffer creates an empty frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	width = max(0, width)
	height = max(0, height)
	return &FrameBuffer{
		width:   width,
		height:  height,
		pixels:  make([]core.Vec3, width*height),
		written: make([]bool, width*height),
	}
}

// Width returns the buffer width in pixels
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the buffer height in pixels
func (fb *FrameBuffer) Height() int { return fb.height }

// Set stores the color of pixel (x, y)
func (fb *FrameBuffer) Set(x, y int, c core.Vec3) error {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return fmt.Errorf("%w: (%d,%d) in %dx%d buffer", ErrPixelOutOfBounds, x, y, fb.width, fb.height)
	}
	idx := y*fb.width + x
	if fb.written[idx] {
		return fmt.Errorf("%w: (%d,%d)", ErrPixelAlreadyWritten, x, y)
	}
	fb.pixels[idx] = c
	fb.written[idx] = true
	return nil
}

// At returns the color of pixel (x, y), or black outside the buffer
func (fb *FrameBuffer) At(x, y int) core.Vec3 {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return core.Vec3{}
	}
	return fb.pixels[y*fb.width+x]
}

// IsComplete reports whether every pixel has been written
func (fb *FrameBuffer) IsComplete() bool {
	for _, w := range fb.written {
		if !w {
			return false
		}
	}
	return true
}

// ToRGBA converts the buffer to an 8-bit image, applying gamma correction.
// A gamma of 1 (or less) leaves the values linear.
func (fb *FrameBuffer) ToRGBA(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(fb.pixels[y*fb.width+x], gamma))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3, gamma float64) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	if gamma > 1 {
		colorVec = colorVec.GammaCorrect(gamma)
	}

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}

// LuminanceStats returns the mean and standard deviation of pixel luminance
func (fb *FrameBuffer) LuminanceStats() (mean, stdDev float64) {
	if len(fb.pixels) == 0 {
		return 0, 0
	}
	luminance := make([]float64, len(fb.pixels))
	for i, p := range fb.pixels {
		luminance[i] = p.Luminance()
	}
	if len(luminance) == 1 {
		return luminance[0], 0
	}
	return stat.MeanStdDev(luminance, nil)
}
