package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomInUnitSphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		p := RandomInUnitSphere(random)
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Sample %d outside unit sphere: %v", i, p)
		}
	}
}

func TestRandomUnitVector(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	var sum Vec3
	const n = 5000
	for i := 0; i < n; i++ {
		p := RandomUnitVector(random)
		if math.Abs(p.Length()-1.0) > 1e-9 {
			t.Fatalf("Sample %d not unit length: %v", i, p)
		}
		sum = sum.Add(p)
	}

	// Uniform directions should average out near the origin
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.05 {
		t.Errorf("Expected mean direction near zero, got %v", mean)
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(random)
		if p.Z != 0 {
			t.Fatalf("Expected disk sample on XY plane, got %v", p)
		}
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Sample %d outside unit disk: %v", i, p)
		}
	}
}

func TestRandomFloat_Range(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := RandomFloat(-2, 3, random)
		if v < -2 || v >= 3 {
			t.Fatalf("Value %f outside [-2, 3)", v)
		}
	}
}
