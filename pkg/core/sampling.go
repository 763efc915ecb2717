package core

import (
	"math"
	"math/rand"
)

// RandomFloat returns a uniform value in [minVal, maxVal)
func RandomFloat(minVal, maxVal float64, random *rand.Rand) float64 {
	return minVal + (maxVal-minVal)*random.Float64()
}

// RandomVec3 returns a vector with each component uniform in [minVal, maxVal)
func RandomVec3(minVal, maxVal float64, random *rand.Rand) Vec3 {
	return Vec3{
		X: RandomFloat(minVal, maxVal, random),
		Y: RandomFloat(minVal, maxVal, random),
		Z: RandomFloat(minVal, maxVal, random),
	}
}

// RandomInUnitSphere rejection-samples a point strictly inside the unit sphere
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := RandomVec3(-1, 1, random)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector returns a uniformly distributed point on the unit sphere surface
func RandomUnitVector(random *rand.Rand) Vec3 {
	for {
		p := RandomInUnitSphere(random)
		// Points too close to the center lose precision when normalized
		if lenSq := p.LengthSquared(); lenSq > 1e-160 {
			return p.Multiply(1.0 / math.Sqrt(lenSq))
		}
	}
}

// RandomInUnitDisk generates a random point in the unit disk on the XY plane (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := NewVec3(RandomFloat(-1, 1, random), RandomFloat(-1, 1, random), 0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
