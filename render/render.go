// Package render draws a world into an RGBA frame: obstacle silhouettes,
// sites and one pixel per agent, coloured by what the agent is heading for.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"
	"os"

	"gonum.org/v1/gonum/spatial/r2"

	swarm "github.com/skovsen/D2D_SwarmLogic"
)

var (
	background    = color.RGBA{R: 0x1e, G: 0x1f, B: 0x2e, A: 0xff}
	obstacleColor = color.RGBA{R: 0x85, G: 0x53, B: 0x09, A: 0xff}
	scoutColor    = color.RGBA{R: 0x4e, G: 0x4e, B: 0x4e, A: 0xff}
	wanderColor   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	trailWander   = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
)

// Renderer draws worlds at a fixed scale.
type Renderer struct {
	PxPerUnit float64
}

// New creates a renderer drawing pxPerUnit pixels per world unit.
func New(pxPerUnit float64) *Renderer {
	return &Renderer{PxPerUnit: pxPerUnit}
}

// Bounds is the pixel rectangle covering the arena of w.
func (r *Renderer) Bounds(w *swarm.World) image.Rectangle {
	return image.Rect(0, 0, r.px(w.Size.X), r.px(w.Size.Y))
}

func (r *Renderer) px(v float64) int {
	return int(v * r.PxPerUnit)
}

func (r *Renderer) unpx(p int) float64 {
	return float64(p) / r.PxPerUnit
}

// Frame draws w into a new image.
func (r *Renderer) Frame(w *swarm.World) *image.RGBA {
	img := image.NewRGBA(r.Bounds(w))
	fill(img, background)

	for _, o := range w.Obstacles {
		r.drawObstacle(img, w, o)
	}
	for _, s := range w.Sites {
		r.drawCircle(img, s.Position, s.Radius, half(kindColor(w, s.Kind)))
	}
	for _, a := range w.Agents {
		img.SetRGBA(r.px(a.Position.X), r.px(a.Position.Y), agentColor(w, a))
	}
	return img
}

func (r *Renderer) drawObstacle(img *image.RGBA, w *swarm.World, o swarm.Obstacle) {
	bb := o.BoundingBox()
	x0, x1 := r.px(math.Max(bb.Min.X(), 0)), r.px(math.Min(bb.Max.X(), w.Size.X))
	y0, y1 := r.px(math.Max(bb.Min.Y(), 0)), r.px(math.Min(bb.Max.Y(), w.Size.Y))
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			if o.Inside(swarm.Vec(r.unpx(x), r.unpx(y))) {
				img.SetRGBA(x, y, obstacleColor)
			}
		}
	}
}

func (r *Renderer) drawCircle(img *image.RGBA, center r2.Vec, radius float64, c color.RGBA) {
	cx, cy, rad := r.px(center.X), r.px(center.Y), r.px(radius)
	for x := cx - rad; x <= cx+rad; x++ {
		for y := cy - rad; y <= cy+rad; y++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rad*rad {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func kindColor(w *swarm.World, kind int) color.RGBA {
	if kind >= 0 && kind < len(w.Kinds) {
		return w.Kinds[kind].Color
	}
	return wanderColor
}

func agentColor(w *swarm.World, a *swarm.Agent) color.RGBA {
	switch {
	case a.Scout:
		return scoutColor
	case a.Commitment != nil:
		return kindColor(w, a.Commitment.Kind)
	default:
		return wanderColor
	}
}

func half(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}

func fill(img *image.RGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Trails accumulates dimmed agent positions over many frames.
type Trails struct {
	buf *image.RGBA
	rng *rand.Rand
}

// NewTrails creates an empty trail buffer of the given size.
func NewTrails(bounds image.Rectangle, rng *rand.Rand) *Trails {
	return &Trails{buf: image.NewRGBA(bounds), rng: rng}
}

// Add marks every non scout agent of w, dimmed to a fifth of its colour.
func (t *Trails) Add(r *Renderer, w *swarm.World) {
	for _, a := range w.Agents {
		if a.Scout {
			continue
		}
		c := trailWander
		if a.Commitment != nil {
			c = dim(kindColor(w, a.Commitment.Kind))
		}
		x, y := r.px(a.Position.X), r.px(a.Position.Y)
		if !(image.Point{X: x, Y: y}).In(t.buf.Rect) {
			continue
		}
		i := t.buf.PixOffset(x, y)
		t.buf.Pix[i] = sat(t.buf.Pix[i], c.R)
		t.buf.Pix[i+1] = sat(t.buf.Pix[i+1], c.G)
		t.buf.Pix[i+2] = sat(t.buf.Pix[i+2], c.B)
		t.buf.Pix[i+3] = 0xff
	}
}

// Overlay brightens img wherever the trail is brighter.
func (t *Trails) Overlay(img *image.RGBA) {
	for i := range img.Pix {
		if i < len(t.buf.Pix) && t.buf.Pix[i] > img.Pix[i] {
			img.Pix[i] = t.buf.Pix[i]
		}
	}
}

// Fade randomly darkens half of the trail channels by one step.
func (t *Trails) Fade() {
	for i := range t.buf.Pix {
		if i%4 == 3 || t.buf.Pix[i] == 0 {
			continue
		}
		if t.rng.Intn(2) == 0 {
			t.buf.Pix[i]--
		}
	}
}

func dim(c color.RGBA) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * 0x30 / 0xff) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 0xff}
}

func sat(a, b uint8) uint8 {
	if s := uint16(a) + uint16(b); s < 0xff {
		return uint8(s)
	}
	return 0xff
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	return f.Close()
}
