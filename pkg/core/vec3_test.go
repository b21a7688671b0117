package core

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"Unit X", NewVec3(5, 0, 0), NewVec3(1, 0, 0)},
		{"Diagonal", NewVec3(1, 1, 0), NewVec3(1/math.Sqrt2, 1/math.Sqrt2, 0)},
		{"Zero vector", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
		{"Tiny vector", NewVec3(1e-15, 0, 0), NewVec3(0, 0, 0)},
		{"Infinite vector", NewVec3(math.Inf(1), 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			if !vecNear(result, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_OperationsDoNotMutate(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	_ = a.Add(b)
	_ = a.Subtract(b)
	_ = a.Multiply(3)
	_ = a.Cross(b)
	_ = a.Normalize()

	if a != NewVec3(1, 2, 3) || b != NewVec3(4, 5, 6) {
		t.Errorf("Operands were mutated: a=%v b=%v", a, b)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	if got := x.Cross(y); got != NewVec3(0, 0, 1) {
		t.Errorf("Expected x × y = z, got %v", got)
	}
	if got := y.Cross(x); got != NewVec3(0, 0, -1) {
		t.Errorf("Expected y × x = -z, got %v", got)
	}
}

func TestReflect(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	incident := NewVec3(1, -1, 0).Normalize()

	reflected := Reflect(incident, normal)
	expected := NewVec3(1, 1, 0).Normalize()
	if !vecNear(reflected, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}

	// Angle of incidence equals angle of reflection
	cosIn := -incident.Dot(normal)
	cosOut := reflected.Dot(normal)
	if math.Abs(cosIn-cosOut) > 1e-12 {
		t.Errorf("Angle mismatch: cos in %f, cos out %f", cosIn, cosOut)
	}

	// Reflecting twice restores the original direction
	if back := Reflect(reflected, normal); !vecNear(back, incident, 1e-12) {
		t.Errorf("Double reflection should restore %v, got %v", incident, back)
	}
}

func TestRefract(t *testing.T) {
	normal := NewVec3(0, 1, 0)

	t.Run("normal incidence passes straight through", func(t *testing.T) {
		incident := NewVec3(0, -1, 0)
		refracted, ok := Refract(incident, normal, 1/1.5)
		if !ok {
			t.Fatal("Expected refraction")
		}
		if !vecNear(refracted, incident, 1e-12) {
			t.Errorf("Expected %v, got %v", incident, refracted)
		}
	})

	t.Run("Snell's law holds", func(t *testing.T) {
		incident := NewVec3(1, -1, 0).Normalize()
		eta := 1 / 1.5
		refracted, ok := Refract(incident, normal, eta)
		if !ok {
			t.Fatal("Expected refraction")
		}
		sinIn := incident.Cross(normal).Length()
		sinOut := refracted.Cross(normal).Length()
		if math.Abs(sinIn*eta-sinOut) > 1e-9 {
			t.Errorf("Snell violated: eta*sin(in)=%f sin(out)=%f", sinIn*eta, sinOut)
		}
		if math.Abs(refracted.Length()-1) > 1e-12 {
			t.Errorf("Expected unit direction, got length %f", refracted.Length())
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		// Leaving glass at a grazing angle
		incident := NewVec3(1, -0.2, 0).Normalize()
		if _, ok := Refract(incident, normal, 1.5); ok {
			t.Error("Expected total internal reflection")
		}
	})
}

func TestRay_NewRayNormalizes(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -10))
	if math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got %v", ray.Direction)
	}
	if ray.TMin != Epsilon || !math.IsInf(ray.TMax, 1) {
		t.Errorf("Unexpected interval [%f, %f]", ray.TMin, ray.TMax)
	}
	if got := ray.At(2); !vecNear(got, NewVec3(0, 0, -2), 1e-12) {
		t.Errorf("Expected (0,0,-2), got %v", got)
	}
}

func TestRay_Contains(t *testing.T) {
	ray := NewRayBounded(NewVec3(0, 0, 0), NewVec3(1, 0, 0), 0, 10)

	tests := []struct {
		t        float64
		expected bool
	}{
		{Epsilon / 2, false}, // tMin of 0 is raised to Epsilon
		{1, true},
		{10, true},
		{10.5, false},
		{math.NaN(), false},
	}

	for _, tt := range tests {
		if got := ray.Contains(tt.t); got != tt.expected {
			t.Errorf("Contains(%f) = %t, expected %t", tt.t, got, tt.expected)
		}
	}
}

func TestRay_IsDegenerate(t *testing.T) {
	if !NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 0)).IsDegenerate() {
		t.Error("Zero direction ray should be degenerate")
	}
	if NewRay(NewVec3(0, 0, 0), NewVec3(0, 1, 0)).IsDegenerate() {
		t.Error("Unit direction ray should not be degenerate")
	}
}
