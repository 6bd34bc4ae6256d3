package swarmlogic

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Site is a fixed point of interest that announces itself to every agent
// within Radius each tick. Sites do not block movement.
type Site struct {
	Position r2.Vec
	Kind     int
	Radius   float64
}

// Beacon is the zero distance message the site broadcasts every tick.
func (s Site) Beacon() Message {
	return Message{Kind: s.Kind, SqDist: 0, Range: s.Radius, Source: s.Position}
}

// SiteKind carries the display attributes of a site kind. The simulation
// itself never looks at it.
type SiteKind struct {
	Name  string
	Color color.RGBA
}

// ParseColor reads a "#rrggbb" hex colour.
func ParseColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.RGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return c, nil
}
