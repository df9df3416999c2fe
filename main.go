package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"splatpath/scene"
)

func usage() {
	fmt.Fprintf(os.Stderr, `splatpath plans camera sweeps through splat / point-cloud scenes.

Usage: splatpath <command> [flags]

Commands:
  orbit      multi-loop 360 sweep around the scene center
  panorama   single circular sweep at a fixed height
  safe       obstacle-avoiding route between two points
  grid       lawn-mower waypoint lattice (positions only)
  plot       top-down PNG of the occupancy grid
  history    list plans recorded by a preview server
  serve      interactive preview server

Run 'splatpath <command> -h' for command flags.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "orbit":
		err = runOrbit(args)
	case "panorama":
		err = runPanorama(args)
	case "safe":
		err = runSafe(args)
	case "grid":
		err = runGrid(args)
	case "plot":
		err = runPlot(args)
	case "history":
		err = runHistory(args)
	case "serve":
		err = runServe(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("command failed", "cmd", cmd, "err", err)
	}
}

// loadCloud resolves the shared -ply / -synthetic pair every command
// accepts.
func loadCloud(plyPath string, synthetic bool) (scene.Cloud, error) {
	if synthetic {
		return scene.SyntheticRoom(1), nil
	}
	if plyPath == "" {
		return scene.Cloud{}, fmt.Errorf("a -ply file (or -synthetic) is required")
	}
	return scene.LoadPLY(plyPath)
}

// parseVec parses an "x,y,z" flag value.
func parseVec(s string) (r3.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vec{}, fmt.Errorf("expected x,y,z but got %q", s)
	}
	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("bad coordinate %q: %w", part, err)
		}
		coords[i] = v
	}
	return r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}
