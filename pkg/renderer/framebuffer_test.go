package renderer

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestFrameBuffer_WriteOnce(t *testing.T) {
	fb := NewFrameBuffer(4, 3)

	if err := fb.Set(1, 2, core.NewVec3(0.5, 0.5, 0.5)); err != nil {
		t.Fatalf("Unexpected error on first write: %v", err)
	}
	err := fb.Set(1, 2, core.NewVec3(1, 1, 1))
	if !errors.Is(err, ErrPixelAlreadyWritten) {
		t.Errorf("Expected ErrPixelAlreadyWritten, got %v", err)
	}
	if got := fb.At(1, 2); got != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Second write must not overwrite the pixel, got %v", got)
	}
}

func TestFrameBuffer_OutOfBounds(t *testing.T) {
	fb := NewFrameBuffer(4, 3)
	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x at width", 4, 0},
		{"y at height", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := fb.Set(tt.x, tt.y, core.Vec3{}); !errors.Is(err, ErrPixelOutOfBounds) {
				t.Errorf("Expected ErrPixelOutOfBounds, got %v", err)
			}
			if got := fb.At(tt.x, tt.y); got != (core.Vec3{}) {
				t.Errorf("Expected black outside the buffer, got %v", got)
			}
		})
	}
}

func TestFrameBuffer_IsComplete(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	for i := 0; i < 4; i++ {
		if fb.IsComplete() {
			t.Fatalf("Buffer reported complete after %d writes", i)
		}
		if err := fb.Set(i%2, i/2, core.Vec3{}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if !fb.IsComplete() {
		t.Error("Expected buffer to be complete after writing every pixel")
	}
}

func TestFrameBuffer_ToRGBA(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		gamma    float64
		expected color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), 2.0, color.RGBA{0, 0, 0, 255}},
		{"white", core.NewVec3(1, 1, 1), 2.0, color.RGBA{255, 255, 255, 255}},
		{"linear half", core.NewVec3(0.5, 0.5, 0.5), 1.0, color.RGBA{128, 128, 128, 255}},
		{"gamma quarter", core.NewVec3(0.25, 0.25, 0.25), 2.0, color.RGBA{128, 128, 128, 255}},
		{"clamped", core.NewVec3(2, -1, 0.5), 1.0, color.RGBA{255, 0, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFrameBuffer(1, 1)
			if err := fb.Set(0, 0, tt.input); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			img := fb.ToRGBA(tt.gamma)
			if got := img.RGBAAt(0, 0); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFrameBuffer_LuminanceStats(t *testing.T) {
	fb := NewFrameBuffer(2, 1)
	_ = fb.Set(0, 0, core.NewVec3(0, 0, 0))
	_ = fb.Set(1, 0, core.NewVec3(1, 1, 1))

	mean, stdDev := fb.LuminanceStats()
	if math.Abs(mean-0.5) > 1e-9 {
		t.Errorf("Expected mean 0.5, got %f", mean)
	}
	if math.Abs(stdDev-math.Sqrt(0.5)) > 1e-9 {
		t.Errorf("Expected sample std dev %f, got %f", math.Sqrt(0.5), stdDev)
	}

	single := NewFrameBuffer(1, 1)
	_ = single.Set(0, 0, core.NewVec3(1, 1, 1))
	if mean, stdDev := single.LuminanceStats(); math.Abs(mean-1) > 1e-9 || stdDev != 0 {
		t.Errorf("Expected (1, 0) for a single pixel, got (%f, %f)", mean, stdDev)
	}

	if mean, stdDev := NewFrameBuffer(0, 0).LuminanceStats(); mean != 0 || stdDev != 0 {
		t.Errorf("Expected (0, 0) for an empty buffer, got (%f, %f)", mean, stdDev)
	}
}
