package monitor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splatpath/scene"
)

func TestPlotOccupancyWritesPNG(t *testing.T) {
	occ, err := scene.Voxelize(scene.SyntheticRoom(1), 0.5)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "occupancy.png")
	require.NoError(t, PlotOccupancy(occ, 0.5, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "\x89PNG", string(data[:4]))
}

func TestPlotOccupancyEmptySet(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, PlotOccupancy(scene.Occupancy{}, 1, out))

	_, err := os.Stat(out)
	require.NoError(t, err)
}

func TestPlotOccupancyBadCell(t *testing.T) {
	err := PlotOccupancy(scene.Occupancy{}, 0, filepath.Join(t.TempDir(), "x.png"))
	require.Error(t, err)
}
