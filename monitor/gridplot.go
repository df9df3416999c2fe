// Package monitor renders debug views of planner state.
package monitor

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"splatpath/scene"
)

// PlotOccupancy writes a top-down XZ scatter of the occupied voxels,
// one marker per cell center. Handy for eyeballing whether a cell
// size is coarse enough before routing through the set.
func PlotOccupancy(occ scene.Occupancy, cell float64, outPath string) error {
	if cell <= 0 {
		return fmt.Errorf("monitor: cell size %v", cell)
	}

	pts := make(plotter.XYs, 0, len(occ))
	for v := range occ {
		pts = append(pts, plotter.XY{
			X: (float64(v.X) + 0.5) * cell,
			Y: (float64(v.Z) + 0.5) * cell,
		})
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Occupancy, %d cells at %.2g", len(occ), cell)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "z"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("monitor: build scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(scatter)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, outPath); err != nil {
		return fmt.Errorf("monitor: save plot: %w", err)
	}
	return nil
}
