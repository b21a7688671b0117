package core

import (
	"math/rand"
	"testing"
)

func TestPixelOffset_SingleSampleIsCenter(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(1)))
	if got := PixelOffset(0, 1, sampler); got != NewVec2(0.5, 0.5) {
		t.Errorf("Expected pixel center, got %v", got)
	}
}

func TestPixelOffset_StaysInsidePixel(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))

	for _, count := range []int{2, 3, 4, 9, 16} {
		for i := 0; i < count; i++ {
			offset := PixelOffset(i, count, sampler)
			if offset.X < 0 || offset.X >= 1 || offset.Y < 0 || offset.Y >= 1 {
				t.Errorf("count=%d index=%d: offset %v outside [0,1)²", count, i, offset)
			}
		}
	}
}

func TestPixelOffset_Stratified(t *testing.T) {
	// With 4 samples every quadrant receives exactly one sample
	quadrants := map[[2]int]int{}
	for i := 0; i < 4; i++ {
		offset := PixelOffset(i, 4, CenterSampler{})
		quadrants[[2]int{int(offset.X * 2), int(offset.Y * 2)}]++
	}

	if len(quadrants) != 4 {
		t.Fatalf("Expected 4 distinct quadrants, got %v", quadrants)
	}
	for q, n := range quadrants {
		if n != 1 {
			t.Errorf("Quadrant %v received %d samples", q, n)
		}
	}
}
