// Package export persists generated paths: the camera_path.json
// exchange file consumed by renderers, and a sqlite history of plans.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"

	"splatpath/planner"
)

// SavePath writes the frame sequence as indented JSON, creating the
// output directory if needed. The file is an ordered array of
// {"camera_to_world": [[..]x4], "fov": n} records.
func SavePath(path planner.Path, outPath string) error {
	data, err := json.MarshalIndent(path, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal path: %w", err)
	}
	if err := ensureDir(outPath); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", outPath, err)
	}
	return nil
}

// SaveWaypoints writes position-only waypoints as an indented JSON
// array of [x, y, z] triples.
func SaveWaypoints(points []r3.Vec, outPath string) error {
	triples := make([][3]float64, len(points))
	for i, p := range points {
		triples[i] = [3]float64{p.X, p.Y, p.Z}
	}
	data, err := json.MarshalIndent(triples, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal waypoints: %w", err)
	}
	if err := ensureDir(outPath); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", outPath, err)
	}
	return nil
}

func ensureDir(outPath string) error {
	dir := filepath.Dir(outPath)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: create %s: %w", dir, err)
	}
	return nil
}
