package swarmlogic

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MaxBounces caps how many reflections a single agent resolves per tick.
const MaxBounces = 10

// ProcessCollision resolves the straight move origin -> origin+delta against
// o. It returns the crossing point and the remaining displacement reflected
// about the boundary normal, or ok == false when the move does not collide.
//
// A move collides when it ends inside the obstacle; the earliest crossing
// with t in (-1, 1] is used. A move that ends outside but passes through the
// obstacle collides at the earliest entering crossing with t in (0, 1].
func (o Obstacle) ProcessCollision(origin, delta r2.Vec) (hit, reflected r2.Vec, ok bool) {
	hits := o.Intersects(origin, delta)

	best := math.Inf(1)
	var normal r2.Vec
	if o.Contains(r2.Add(origin, delta)) {
		for _, h := range hits {
			if h.T > -1 && h.T <= 1 && h.T < best {
				best, normal = h.T, h.Normal
			}
		}
	} else {
		for _, h := range hits {
			if h.T > 0 && h.T <= 1 && r2.Dot(h.Normal, delta) < 0 && h.T < best {
				best, normal = h.T, h.Normal
			}
		}
	}
	if math.IsInf(best, 1) {
		return r2.Vec{}, r2.Vec{}, false
	}

	hit = r2.Add(origin, r2.Scale(best, delta))
	rest := r2.Scale(1-best, delta)
	return hit, reflect(rest, normal), true
}

// firstCollision asks each obstacle in order and returns the first collision.
func firstCollision(obstacles []Obstacle, origin, delta r2.Vec) (hit, reflected r2.Vec, ok bool) {
	for i := range obstacles {
		if hit, reflected, ok = obstacles[i].ProcessCollision(origin, delta); ok {
			return hit, reflected, true
		}
	}
	return r2.Vec{}, r2.Vec{}, false
}

// occluded reports whether any obstacle boundary crosses the segment from
// source to target, excluding the source itself.
func occluded(obstacles []Obstacle, source, target r2.Vec) bool {
	ray := r2.Sub(target, source)
	for i := range obstacles {
		for _, h := range obstacles[i].Intersects(source, ray) {
			if h.T > 0 && h.T <= 1 {
				return true
			}
		}
	}
	return false
}
