package swarmlogic

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/spatial/r2"
)

// Shape tags the variant held by an Obstacle.
type Shape int

// The obstacle shapes available
const (
	Circle Shape = iota
	Triangle
	Rect
	// InvRect is everything outside a rectangle. The arena wall is one.
	InvRect
)

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Triangle:
		return "triangle"
	case Rect:
		return "rect"
	case InvRect:
		return "invrect"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Obstacle is a static solid shape. Only the fields belonging to Shape are
// meaningful: Center/Radius for circles, Verts (counterclockwise) for
// triangles, Min/Max for rects and inverted rects.
type Obstacle struct {
	Shape  Shape
	Center r2.Vec
	Radius float64
	Verts  [3]r2.Vec
	Min    r2.Vec
	Max    r2.Vec
}

// Hit is a crossing of the line origin + T*ray with an obstacle boundary.
// Normal is the outward unit normal at the crossing.
type Hit struct {
	T      float64
	Normal r2.Vec
}

// NewCircle creates a circular obstacle.
func NewCircle(center r2.Vec, radius float64) Obstacle {
	return Obstacle{Shape: Circle, Center: center, Radius: radius}
}

// NewTriangle creates a triangle. Vertices must be counterclockwise.
func NewTriangle(a, b, c r2.Vec) Obstacle {
	return Obstacle{Shape: Triangle, Verts: [3]r2.Vec{a, b, c}}
}

// NewRect creates an axis aligned rectangle from its min and max corners.
func NewRect(min, max r2.Vec) Obstacle {
	return Obstacle{Shape: Rect, Min: min, Max: max}
}

// NewInvRect creates the complement of the rectangle min..max.
func NewInvRect(min, max r2.Vec) Obstacle {
	return Obstacle{Shape: InvRect, Min: min, Max: max}
}

// BoundingBox returns the axis aligned box enclosing the obstacle.
func (o Obstacle) BoundingBox() orb.Bound {
	switch o.Shape {
	case Circle:
		return orb.Bound{
			Min: orb.Point{o.Center.X - o.Radius, o.Center.Y - o.Radius},
			Max: orb.Point{o.Center.X + o.Radius, o.Center.Y + o.Radius},
		}
	case Triangle:
		return o.ring().Bound()
	case Rect:
		return o.rectBound()
	case InvRect:
		return orb.Bound{
			Min: orb.Point{-math.MaxFloat64, -math.MaxFloat64},
			Max: orb.Point{math.MaxFloat64, math.MaxFloat64},
		}
	}
	return orb.Bound{}
}

// Inside reports whether p lies within the shape. It assumes p is already
// inside the bounding box; Contains does both checks.
func (o Obstacle) Inside(p r2.Vec) bool {
	switch o.Shape {
	case Circle:
		return r2.Norm2(r2.Sub(p, o.Center)) < o.Radius*o.Radius
	case Triangle:
		return planar.RingContains(o.ring(), orb.Point{p.X, p.Y})
	case Rect:
		return true
	case InvRect:
		return !o.rectBound().Contains(orb.Point{p.X, p.Y})
	}
	return false
}

// Contains reports whether p is inside both the bounding box and the shape.
func (o Obstacle) Contains(p r2.Vec) bool {
	return o.BoundingBox().Contains(orb.Point{p.X, p.Y}) && o.Inside(p)
}

// Intersects returns every crossing of the infinite line origin + t*ray with
// the obstacle boundary. t is not restricted to [0, 1].
func (o Obstacle) Intersects(origin, ray r2.Vec) []Hit {
	switch o.Shape {
	case Circle:
		return o.circleHits(origin, ray)
	case Triangle:
		return o.triangleHits(origin, ray)
	case Rect:
		return o.rectHits(origin, ray)
	case InvRect:
		hits := o.rectHits(origin, ray)
		for i := range hits {
			hits[i].Normal = r2.Scale(-1, hits[i].Normal)
		}
		return hits
	}
	return nil
}

func (o Obstacle) ring() orb.Ring {
	v := o.Verts
	return orb.Ring{
		{v[0].X, v[0].Y}, {v[1].X, v[1].Y}, {v[2].X, v[2].Y}, {v[0].X, v[0].Y},
	}
}

func (o Obstacle) rectBound() orb.Bound {
	return orb.Bound{Min: orb.Point{o.Min.X, o.Min.Y}, Max: orb.Point{o.Max.X, o.Max.Y}}
}

func (o Obstacle) circleHits(origin, ray r2.Vec) []Hit {
	v2 := r2.Norm2(ray)
	if v2 == 0 {
		return nil
	}
	diff := r2.Sub(o.Center, origin)
	vDotDiff := r2.Dot(ray, diff)
	disc := vDotDiff*vDotDiff - v2*(r2.Norm2(diff)-o.Radius*o.Radius)
	if disc < 0 {
		return nil
	}
	mid := vDotDiff / v2
	half := math.Sqrt(disc) / v2

	hits := make([]Hit, 0, 2)
	for _, t := range [2]float64{mid - half, mid + half} {
		at := r2.Add(origin, r2.Scale(t, ray))
		hits = append(hits, Hit{T: t, Normal: r2.Unit(r2.Sub(at, o.Center))})
	}
	return hits
}

func (o Obstacle) triangleHits(origin, ray r2.Vec) []Hit {
	var hits []Hit
	for i := range o.Verts {
		p1, p2 := o.Verts[(i+2)%3], o.Verts[i]
		diff := r2.Sub(p2, p1)
		inward := r2.Vec{X: -diff.Y, Y: diff.X}

		t := -(r2.Dot(inward, origin) + r2.Cross(p1, p2)) / r2.Dot(inward, ray)
		at := r2.Add(origin, r2.Scale(t, ray))
		// strictly between the edge endpoints
		if r2.Dot(r2.Sub(p1, at), r2.Sub(p2, at)) < 0 {
			hits = append(hits, Hit{T: t, Normal: r2.Scale(-1, r2.Unit(inward))})
		}
	}
	return hits
}

func (o Obstacle) rectHits(origin, ray r2.Vec) []Hit {
	corners := [2]r2.Vec{o.Min, o.Max}
	var hits []Hit
	for axis := 0; axis < 2; axis++ {
		other := 1 - axis
		lo, hi := component(o.Min, other), component(o.Max, other)
		for side, corner := range corners {
			t := (component(corner, axis) - component(origin, axis)) / component(ray, axis)
			along := component(r2.Add(origin, r2.Scale(t, ray)), other)
			if along < lo || along > hi || math.IsNaN(along) {
				continue
			}
			sign := float64(side*2 - 1)
			normal := r2.Vec{X: sign}
			if axis == 1 {
				normal = r2.Vec{Y: sign}
			}
			hits = append(hits, Hit{T: t, Normal: normal})
		}
	}
	return hits
}
