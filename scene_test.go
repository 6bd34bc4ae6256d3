package swarmlogic

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScene_Default(t *testing.T) {
	scene, err := LoadScene("testdata/default.json")
	require.NoError(t, err)

	assert.Equal(t, Vec(16, 10), scene.Size)
	assert.Equal(t, []SiteKind{
		{Name: "food", Color: color.RGBA{R: 0xe5, G: 0xc0, B: 0x7b, A: 0xff}},
		{Name: "nest", Color: color.RGBA{R: 0x61, G: 0xaf, B: 0xef, A: 0xff}},
	}, scene.Kinds)
	assert.Equal(t, []Site{
		{Position: Vec(2, 8), Kind: 0, Radius: 0.3},
		{Position: Vec(13, 2), Kind: 1, Radius: 0.3},
	}, scene.Sites)
	assert.Equal(t, []Obstacle{
		NewCircle(Vec(6.5, 6), 1.2),
		NewTriangle(Vec(4, 2), Vec(6, 2), Vec(5, 4)),
		NewRect(Vec(10, 6), Vec(12, 8)),
	}, scene.Obstacles)
}

func TestLoadScene_MissingFile(t *testing.T) {
	_, err := LoadScene("testdata/nope.json")
	assert.Error(t, err)
}

func TestParseScene_ClockwiseTriangleIsReordered(t *testing.T) {
	data := []byte(`{
		"world_size": [4, 4],
		"obstacles": {"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [0, 2], [2, 0], [0, 0]]]}}
		]}
	}`)

	scene, err := ParseScene(data)
	require.NoError(t, err)
	require.Len(t, scene.Obstacles, 1)

	tri := scene.Obstacles[0]
	assert.Equal(t, NewTriangle(Vec(0, 0), Vec(2, 0), Vec(0, 2)), tri)

	hits := tri.Intersects(Vec(-1, 0.5), Vec(1, 0))
	require.NotEmpty(t, hits)
	assertVec(t, Vec(-1, 0), hits[0].Normal, "normals point out of the triangle")
}

func TestParseScene_Invalid(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"no size":       `{"sites": {"type": "FeatureCollection", "features": []}}`,
		"negative size": `{"world_size": [-1, 4]}`,
		"bad colour":    `{"world_size": [4, 4], "site_kinds": [{"name": "x", "color": "red"}]}`,
		"site polygon": `{"world_size": [4, 4], "sites": {"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {"kind": 0, "size": 1}, "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [0, 1], [0, 0]]]}}]}}`,
		"site without size": `{"world_size": [4, 4], "sites": {"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {"kind": 0}, "geometry": {"type": "Point", "coordinates": [1, 1]}}]}}`,
		"circle without radius": `{"world_size": [4, 4], "obstacles": {"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [1, 1]}}]}}`,
		"pentagon": `{"world_size": [4, 4], "obstacles": {"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [2, 0], [3, 1], [1, 3], [0, 1], [0, 0]]]}}]}}`,
		"skewed quad": `{"world_size": [4, 4], "obstacles": {"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [2, 0], [3, 2], [0, 2], [0, 0]]]}}]}}`,
		"line obstacle": `{"world_size": [4, 4], "obstacles": {"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}}]}}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScene([]byte(data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScene), "got %v", err)
		})
	}
}

func TestParseScene_EmptyArena(t *testing.T) {
	scene, err := ParseScene([]byte(`{"world_size": [3, 2]}`))
	require.NoError(t, err)

	w := NewWorld(scene)
	assert.Empty(t, w.Sites)
	assert.Equal(t, []Obstacle{NewInvRect(Vec(0, 0), Vec(3, 2))}, w.Obstacles)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#0a0B10")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x0a, G: 0x0b, B: 0x10, A: 0xff}, c)

	_, err = ParseColor("0a0b10")
	assert.Error(t, err)
}
