package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"splatpath/planner"
)

func samplePath(t *testing.T) planner.Path {
	t.Helper()
	path, err := planner.Orbit360(planner.OrbitConfig{
		Center:        r3.Vec{X: 1, Y: 2, Z: 3},
		Radius:        4,
		FOV:           60,
		FramesPerLoop: 8,
		Loops:         1,
		SlowFactor:    1,
	})
	require.NoError(t, err)
	return path
}

func TestSavePathRoundTrip(t *testing.T) {
	path := samplePath(t)
	out := filepath.Join(t.TempDir(), "camera_path.json")

	require.NoError(t, SavePath(path, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var got planner.Path
	require.NoError(t, json.Unmarshal(data, &got))
	if diff := cmp.Diff(path, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSavePathShape(t *testing.T) {
	out := filepath.Join(t.TempDir(), "camera_path.json")
	require.NoError(t, SavePath(samplePath(t), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	// The viewer reads an array of objects with a 4x4 matrix and fov.
	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 8)
	for i, rec := range raw {
		assert.Contains(t, rec, "camera_to_world", "record %d", i)
		assert.Contains(t, rec, "fov", "record %d", i)

		var m [][]float64
		require.NoError(t, json.Unmarshal(rec["camera_to_world"], &m))
		require.Len(t, m, 4, "record %d", i)
		for _, row := range m {
			assert.Len(t, row, 4)
		}
	}

	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), "\n  ", "output should be indented")
}

func TestSavePathCreatesDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "web", "public", "camera_path.json")
	require.NoError(t, SavePath(samplePath(t), out))

	_, err := os.Stat(out)
	require.NoError(t, err)
}

func TestSaveWaypoints(t *testing.T) {
	points := []r3.Vec{
		{X: 1, Y: 2, Z: 3},
		{X: -4.5, Y: 0, Z: 6},
	}
	out := filepath.Join(t.TempDir(), "waypoints.json")
	require.NoError(t, SaveWaypoints(points, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var got [][3]float64
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, [][3]float64{{1, 2, 3}, {-4.5, 0, 6}}, got)
}

func TestSaveWaypointsEmpty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "waypoints.json")
	require.NoError(t, SaveWaypoints(nil, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}
