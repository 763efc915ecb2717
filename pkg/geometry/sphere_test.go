package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit from inside",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "off-center origin inside",
			rayOrigin:      core.NewVec3(0, 0.5, 0),
			rayDirection:   core.NewVec3(0, 1, 0),
			expectedT:      0.5,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, -1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !vecNear(hit.Normal, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_ThroughCenterReportsSmallerRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 2.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	// Roots are 3 and 7, symmetric about the center projection at 5
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected nearer root t=3, got t=%f", hit.T)
	}

	// With tMin beyond the near root the far root is reported
	hit, isHit = sphere.Hit(ray, 4.0, math.Inf(1))
	if !isHit || math.Abs(hit.T-7.0) > 1e-9 {
		t.Errorf("Expected far root t=7, got hit=%t", isHit)
	}
}

func TestSphere_Hit_Tangent(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	// Grazing exactly: discriminant is zero
	hit, isHit := sphere.Hit(core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1)), 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected tangent ray to hit")
	}
	if !vecNear(hit.Point, core.NewVec3(1, 0, 0), 1e-9) {
		t.Errorf("Expected hit point (1,0,0), got %v", hit.Point)
	}

	// Just outside the silhouette: negative discriminant
	if _, isHit := sphere.Hit(core.NewRay(core.NewVec3(1.0001, 0, 2), core.NewVec3(0, 0, -1)), 0.001, 1000.0); isHit {
		t.Error("Expected ray just outside the sphere to miss")
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Hit(ray, 0.001, 0.5); isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}
	if hit, isHit := sphere.Hit(ray, 3.5, 1000.0); isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		sphere *Sphere
		ray    core.Ray
	}{
		{
			name:   "zero radius",
			sphere: NewSphere(core.NewVec3(0, 0, 0), 0, nil),
			ray:    core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)),
		},
		{
			name:   "zero direction",
			sphere: NewSphere(core.NewVec3(0, 0, 0), 1, nil),
			ray:    core.NewRay(core.NewVec3(0, 0, 0.5), core.Vec3{}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, isHit := tt.sphere.Hit(tt.ray, 0.001, math.Inf(1)); isHit {
				t.Error("Expected degenerate input to miss")
			}
		})
	}
}

func TestSphere_Hit_NegativeRadiusFaceOrientation(t *testing.T) {
	tests := []struct {
		name       string
		origin     core.Vec3
		expectedT  float64
		frontFace  bool
		wantNormal core.Vec3
	}{
		{"entering from outside", core.NewVec3(0, 0, 2), 1.5, true, core.NewVec3(0, 0, 1)},
		{"leaving from inside", core.NewVec3(0, 0, 0), 0.5, false, core.NewVec3(0, 0, 1)},
	}

	hollow := NewSphere(core.NewVec3(0, 0, 0), -0.5, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, 0, -1))
			hit, isHit := hollow.Hit(ray, 0.001, 1000.0)
			if !isHit {
				t.Fatal("Expected hit on negative-radius sphere")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.frontFace {
				t.Errorf("Expected FrontFace=%t, got %t", tt.frontFace, hit.FrontFace)
			}
			if !vecNear(hit.Normal, tt.wantNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.wantNormal, hit.Normal)
			}
			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
			}
		})
	}
}

func TestSphere_Hit_CarriesMaterial(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, mat)

	hit, isHit := sphere.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != mat {
		t.Errorf("Expected hit material to be the sphere's material")
	}
	if math.Abs(hit.Normal.Length()-1) > 1e-9 {
		t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
	}
}

func BenchmarkSphere_Hit(b *testing.B) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, nil)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0.1, 0.1, -1))
	for i := 0; i < b.N; i++ {
		sphere.Hit(ray, 0.001, math.Inf(1))
	}
}
