package swarmlogic

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec builds a point or displacement.
func Vec(x, y float64) r2.Vec {
	return r2.Vec{X: x, Y: y}
}

// unitVec is the unit vector pointing along heading.
func unitVec(heading float64) r2.Vec {
	return r2.Vec{X: math.Cos(heading), Y: math.Sin(heading)}
}

func angleOf(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// component returns the x (axis 0) or y (axis 1) coordinate.
func component(v r2.Vec, axis int) float64 {
	if axis == 0 {
		return v.X
	}
	return v.Y
}

func reflect(v, normal r2.Vec) r2.Vec {
	return r2.Sub(v, r2.Scale(2*r2.Dot(v, normal), normal))
}

// remEuclid is the non-negative remainder of a / b.
func remEuclid(a, b float64) float64 {
	r := math.Mod(a, b)
	if r < 0 {
		r += b
	}
	// -tiny + b rounds to b
	if r >= b {
		r = 0
	}
	return r
}

func wrapAngle(a float64) float64 {
	return remEuclid(a, 2*math.Pi)
}
