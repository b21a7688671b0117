package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), true},
		{"miss to the side", NewRay(NewVec3(3, 0, 5), NewVec3(0, 0, -1)), false},
		{"pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), false},
		{"parallel inside slab", NewRay(NewVec3(0, 0.5, 5), NewVec3(0, 0, -1)), true},
		{"parallel outside slab", NewRay(NewVec3(0, 2, 5), NewVec3(0, 0, -1)), false},
		{"interval ends before box", NewRayBounded(NewVec3(0, 0, 5), NewVec3(0, 0, -1), 0, 3), false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 1, 1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray); got != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestAABB_FromPointsAndUnion(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, 5, -2), NewVec3(-3, 0, 4), NewVec3(0, 2, 0))
	if box.Min != NewVec3(-3, 0, -2) || box.Max != NewVec3(1, 5, 4) {
		t.Errorf("Unexpected box %v", box)
	}

	other := NewAABB(NewVec3(0, 0, 0), NewVec3(10, 1, 1))
	union := box.Union(other)
	if union.Max.X != 10 || union.Min.X != -3 {
		t.Errorf("Unexpected union %v", union)
	}
	if !union.IsValid() {
		t.Error("Union should be valid")
	}
}

func TestInfiniteAABB(t *testing.T) {
	box := InfiniteAABB()
	if !box.Hit(NewRay(NewVec3(1e9, -1e9, 0), NewVec3(0.3, 0.1, -1))) {
		t.Error("Infinite box should contain every ray")
	}
	if !math.IsInf(box.Max.X, 1) {
		t.Errorf("Expected +Inf max, got %v", box.Max)
	}
}
