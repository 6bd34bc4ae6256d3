package swarmlogic

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidScene is returned when a scene file cannot describe a world.
var ErrInvalidScene = errors.New("invalid scene")

// Scene is the static description of a world: arena size, sites, site kind
// display attributes and obstacles. The arena wall is not part of it.
type Scene struct {
	Size      r2.Vec
	Sites     []Site
	Kinds     []SiteKind
	Obstacles []Obstacle
}

// LoadScene reads a scene file from disk.
//
// A scene is a JSON object:
//
//	{
//	  "world_size": [16, 10],
//	  "site_kinds": [{"name": "food", "color": "#e5c07b"}],
//	  "sites":      <GeoJSON FeatureCollection of Points, properties kind and size>,
//	  "obstacles":  <GeoJSON FeatureCollection>
//	}
//
// Obstacles are Points with a radius property (circles), Polygons with three
// vertices (triangles) and axis aligned Polygons with four vertices (rects).
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

// ParseScene decodes a scene, see LoadScene for the format.
func ParseScene(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		if errors.Is(err, ErrInvalidScene) {
			return Scene{}, err
		}
		return Scene{}, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return s, nil
}

// UnmarshalJSON decodes the scene format described on LoadScene.
func (s *Scene) UnmarshalJSON(rawData []byte) error {
	var dat map[string]*json.RawMessage
	if err := json.Unmarshal(rawData, &dat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	if dat["world_size"] == nil {
		return fmt.Errorf("%w: world_size missing", ErrInvalidScene)
	}
	var size [2]float64
	if err := json.Unmarshal(*dat["world_size"], &size); err != nil {
		return fmt.Errorf("%w: world_size: %v", ErrInvalidScene, err)
	}
	if size[0] <= 0 || size[1] <= 0 {
		return fmt.Errorf("%w: world_size %v must be positive", ErrInvalidScene, size)
	}
	s.Size = Vec(size[0], size[1])

	if dat["site_kinds"] != nil {
		kinds, err := decodeKinds(*dat["site_kinds"])
		if err != nil {
			return err
		}
		s.Kinds = kinds
	}

	if dat["sites"] != nil {
		sites, err := decodeSites(*dat["sites"])
		if err != nil {
			return err
		}
		s.Sites = sites
	}

	// a scene without obstacles is just an empty arena
	if dat["obstacles"] == nil {
		return nil
	}
	obstacles, err := decodeObstacles(*dat["obstacles"])
	if err != nil {
		return err
	}
	s.Obstacles = obstacles
	return nil
}

func decodeKinds(raw json.RawMessage) ([]SiteKind, error) {
	var entries []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: site_kinds: %v", ErrInvalidScene, err)
	}
	kinds := make([]SiteKind, 0, len(entries))
	for i, e := range entries {
		c, err := ParseColor(e.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: site kind %d: %v", ErrInvalidScene, i, err)
		}
		kinds = append(kinds, SiteKind{Name: e.Name, Color: c})
	}
	return kinds, nil
}

func decodeSites(raw json.RawMessage) ([]Site, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: sites: %v", ErrInvalidScene, err)
	}
	sites := make([]Site, 0, len(fc.Features))
	for i, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("%w: site %d is a %s, not a Point", ErrInvalidScene, i, geometryType(f.Geometry))
		}
		kind, ok := number(f.Properties, "kind")
		if !ok || kind < 0 {
			return nil, fmt.Errorf("%w: site %d needs a non-negative kind", ErrInvalidScene, i)
		}
		size, ok := number(f.Properties, "size")
		if !ok || size <= 0 {
			return nil, fmt.Errorf("%w: site %d needs a positive size", ErrInvalidScene, i)
		}
		sites = append(sites, Site{Position: Vec(p.X(), p.Y()), Kind: int(kind), Radius: size})
	}
	return sites, nil
}

func decodeObstacles(raw json.RawMessage) ([]Obstacle, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: obstacles: %v", ErrInvalidScene, err)
	}
	obstacles := make([]Obstacle, 0, len(fc.Features))
	for i, f := range fc.Features {
		o, err := obstacleFromFeature(f)
		if err != nil {
			return nil, fmt.Errorf("%w: obstacle %d: %v", ErrInvalidScene, i, err)
		}
		obstacles = append(obstacles, o)
	}
	return obstacles, nil
}

func obstacleFromFeature(f *geojson.Feature) (Obstacle, error) {
	switch g := f.Geometry.(type) {
	case orb.Point:
		r, ok := number(f.Properties, "radius")
		if !ok || r <= 0 {
			return Obstacle{}, errors.New("circle needs a positive radius")
		}
		return NewCircle(Vec(g.X(), g.Y()), r), nil
	case orb.Polygon:
		if len(g) != 1 {
			return Obstacle{}, errors.New("polygon obstacles cannot have holes")
		}
		return obstacleFromRing(g[0])
	default:
		return Obstacle{}, fmt.Errorf("unsupported geometry %s", geometryType(f.Geometry))
	}
}

func obstacleFromRing(ring orb.Ring) (Obstacle, error) {
	pts := []orb.Point(ring)
	if ring.Closed() {
		pts = pts[:len(pts)-1]
	}

	switch len(pts) {
	case 3:
		verts := [3]r2.Vec{}
		for i, p := range pts {
			verts[i] = Vec(p.X(), p.Y())
		}
		if ring.Orientation() == orb.CW {
			verts[1], verts[2] = verts[2], verts[1]
		}
		return NewTriangle(verts[0], verts[1], verts[2]), nil
	case 4:
		b := ring.Bound()
		if b.Min.X() == b.Max.X() || b.Min.Y() == b.Max.Y() {
			return Obstacle{}, errors.New("rect has no area")
		}
		for _, p := range pts {
			onX := p.X() == b.Min.X() || p.X() == b.Max.X()
			onY := p.Y() == b.Min.Y() || p.Y() == b.Max.Y()
			if !onX || !onY {
				return Obstacle{}, errors.New("four sided polygons must be axis aligned rects")
			}
		}
		return NewRect(Vec(b.Min.X(), b.Min.Y()), Vec(b.Max.X(), b.Max.Y())), nil
	default:
		return Obstacle{}, fmt.Errorf("polygon with %d vertices is neither a triangle nor a rect", len(pts))
	}
}

// number reads a numeric GeoJSON property.
func number(props geojson.Properties, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}
