package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/delaneyj/toolbelt/embeddednats"
	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"gonum.org/v1/gonum/spatial/r3"

	"splatpath/export"
	"splatpath/monitor"
	"splatpath/planner"
	"splatpath/preview"
	"splatpath/routes"
	"splatpath/scene"
)

func runOrbit(args []string) error {
	fs := flag.NewFlagSet("orbit", flag.ExitOnError)
	ply := fs.String("ply", "", "path to a binary ply scene")
	synthetic := fs.Bool("synthetic", false, "use the built-in synthetic room")
	out := fs.String("out", "camera_path.json", "output path")
	framesPerLoop := fs.Int("frames-per-loop", 360, "frames per full loop before slowing")
	loops := fs.Int("loops", 2, "number of full loops")
	slow := fs.Float64("slow-factor", 2.0, "how much to slow the sweep down")
	heightOffset := fs.Float64("height-offset", 0, "raise the orbit plane above the scene center")
	radiusFactor := fs.Float64("radius-factor", planner.DefaultOrbitRadiusFactor, "orbit radius as a fraction of the XZ extent")
	fov := fs.Float64("fov", planner.DefaultFOV, "field of view in degrees")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cloud, err := loadCloud(*ply, *synthetic)
	if err != nil {
		return err
	}
	info, err := scene.Analyze(cloud)
	if err != nil {
		return err
	}
	log.Info("scene analyzed", "points", cloud.Len(), "center", info.Center, "size", info.Size)

	radius, err := planner.OrbitRadius(info.Size, *radiusFactor)
	if err != nil {
		return err
	}
	path, err := planner.Orbit360(planner.OrbitConfig{
		Center:        info.Center,
		Radius:        radius,
		HeightOffset:  *heightOffset,
		FOV:           *fov,
		FramesPerLoop: *framesPerLoop,
		Loops:         *loops,
		SlowFactor:    *slow,
	})
	if err != nil {
		return err
	}

	if err := export.SavePath(path, *out); err != nil {
		return err
	}
	log.Info("wrote orbit path", "frames", len(path), "radius", radius, "out", *out)
	return nil
}

func runPanorama(args []string) error {
	fs := flag.NewFlagSet("panorama", flag.ExitOnError)
	ply := fs.String("ply", "", "path to a binary ply scene")
	synthetic := fs.Bool("synthetic", false, "use the built-in synthetic room")
	out := fs.String("out", "camera_path.json", "output path")
	frames := fs.Int("frames", 900, "frame count for the loop")
	radius := fs.Float64("radius", 0, "sweep radius (0 = recommended from scene)")
	height := fs.Float64("height", 0, "camera height (0 = recommended from scene)")
	fov := fs.Float64("fov", planner.DefaultFOV, "field of view in degrees")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cloud, err := loadCloud(*ply, *synthetic)
	if err != nil {
		return err
	}
	info, err := scene.Analyze(cloud)
	if err != nil {
		return err
	}

	r, h := *radius, *height
	if r == 0 {
		r = info.RecommendedRadius
	}
	if h == 0 {
		h = info.RecommendedHeight
	}

	path, err := planner.Panorama(planner.PanoramaConfig{
		Center: info.Center,
		Radius: r,
		Height: h,
		FOV:    *fov,
		Frames: *frames,
	})
	if err != nil {
		return err
	}

	if err := export.SavePath(path, *out); err != nil {
		return err
	}
	log.Info("wrote panorama path", "frames", len(path), "radius", r, "height", h, "out", *out)
	return nil
}

func runSafe(args []string) error {
	fs := flag.NewFlagSet("safe", flag.ExitOnError)
	ply := fs.String("ply", "", "path to a binary ply scene")
	synthetic := fs.Bool("synthetic", false, "use the built-in synthetic room")
	out := fs.String("out", "camera_path.json", "output path")
	cell := fs.Float64("cell", 0.5, "voxel cell size for the obstacle map")
	startFlag := fs.String("start", "", "start position x,y,z (default: center shifted -5 in z)")
	endFlag := fs.String("end", "", "end position x,y,z (default: center shifted +10 in x and z)")
	fov := fs.Float64("fov", planner.DefaultFOV, "field of view in degrees")
	budget := fs.Int("budget", 0, "node expansion budget, 0 = unlimited")
	lookCenter := fs.Bool("look-at-center", false, "orient frames toward the scene center instead of the origin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cloud, err := loadCloud(*ply, *synthetic)
	if err != nil {
		return err
	}
	info, err := scene.Analyze(cloud)
	if err != nil {
		return err
	}
	occ, err := scene.Voxelize(cloud, *cell)
	if err != nil {
		return err
	}
	log.Info("scene voxelized", "points", cloud.Len(), "voxels", len(occ), "cell", *cell)

	// The default run cuts across the scene center, like the original
	// safe-mode demo.
	start := r3.Vec{X: info.Center.X, Y: info.Center.Y, Z: info.Center.Z - 5}
	if *startFlag != "" {
		if start, err = parseVec(*startFlag); err != nil {
			return err
		}
	}
	end := r3.Vec{X: info.Center.X + 10, Y: info.Center.Y, Z: info.Center.Z + 10}
	if *endFlag != "" {
		if end, err = parseVec(*endFlag); err != nil {
			return err
		}
	}

	cfg := planner.SafeConfig{
		Start:     start,
		End:       end,
		Occupancy: occ,
		CellSize:  *cell,
		FOV:       *fov,
	}
	if *lookCenter {
		cfg.Target = info.Center
	}
	if *budget > 0 {
		cfg.Search = append(cfg.Search, planner.MaxExpansions(*budget))
	}

	path, err := planner.SafeRoute(cfg)
	if err != nil {
		return err
	}

	if err := export.SavePath(path, *out); err != nil {
		return err
	}
	log.Info("wrote safe route", "frames", len(path), "out", *out)
	return nil
}

func runGrid(args []string) error {
	fs := flag.NewFlagSet("grid", flag.ExitOnError)
	ply := fs.String("ply", "", "path to a binary ply scene")
	synthetic := fs.Bool("synthetic", false, "use the built-in synthetic room")
	out := fs.String("out", "waypoints.json", "output path")
	nx := fs.Int("nx", 6, "waypoint count along x")
	nz := fs.Int("nz", 5, "waypoint count along z")
	height := fs.Float64("height", 0, "waypoint height (0 = recommended from scene)")
	inset := fs.Float64("inset", planner.DefaultInset, "margin from the scene bounds")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cloud, err := loadCloud(*ply, *synthetic)
	if err != nil {
		return err
	}
	info, err := scene.Analyze(cloud)
	if err != nil {
		return err
	}

	h := *height
	if h == 0 {
		h = info.RecommendedHeight
	}

	points, err := planner.GridWaypoints(planner.GridConfig{
		Center: info.Center,
		Size:   info.Size,
		Height: h,
		CountX: *nx,
		CountZ: *nz,
		Inset:  *inset,
	})
	if err != nil {
		return err
	}

	if err := export.SaveWaypoints(points, *out); err != nil {
		return err
	}
	log.Info("wrote waypoint grid", "count", len(points), "out", *out)
	return nil
}

func runPlot(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	ply := fs.String("ply", "", "path to a binary ply scene")
	synthetic := fs.Bool("synthetic", false, "use the built-in synthetic room")
	out := fs.String("out", "occupancy.png", "output image path")
	cell := fs.Float64("cell", 0.5, "voxel cell size for the obstacle map")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cloud, err := loadCloud(*ply, *synthetic)
	if err != nil {
		return err
	}
	occ, err := scene.Voxelize(cloud, *cell)
	if err != nil {
		return err
	}

	if err := monitor.PlotOccupancy(occ, *cell, *out); err != nil {
		return err
	}
	log.Info("wrote occupancy plot", "voxels", len(occ), "out", *out)
	return nil
}

func runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	db := fs.String("db", filepath.Join("data", "plans.db"), "plan history database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := export.Open(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	plans, err := store.ListPlans()
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		log.Info("no recorded plans", "db", *db)
		return nil
	}
	for _, p := range plans {
		fmt.Printf("%s  %-10s %-24s %5d frames  %s\n",
			p.ID, p.Mode, p.Label, p.FrameCount, p.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	ply := fs.String("ply", "", "path to a binary ply scene")
	synthetic := fs.Bool("synthetic", false, "use the built-in synthetic room")
	cell := fs.Float64("cell", 0.5, "voxel cell size for the obstacle map")
	addr := fs.String("http", "127.0.0.1:8090", "listen address")
	dataDir := fs.String("data", "data", "directory for nats + plan history state")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cloud, err := loadCloud(*ply, *synthetic)
	if err != nil {
		return err
	}

	ctx := context.Background()

	ns, err := embeddednats.New(ctx,
		embeddednats.WithDirectory(filepath.Join(*dataDir, "nats")),
		embeddednats.WithNATSServerOptions(&natsserver.Options{
			JetStream: true,
			Port:      -1,
		}),
	)
	if err != nil {
		return fmt.Errorf("start embedded nats: %w", err)
	}
	defer ns.Close()
	ns.WaitForServer()

	nc, err := ns.Client()
	if err != nil {
		return fmt.Errorf("connect to embedded nats: %w", err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("open jetstream: %w", err)
	}
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: "splatpath"})
	if err != nil {
		return fmt.Errorf("open kv bucket: %w", err)
	}

	store, err := export.Open(filepath.Join(*dataDir, "plans.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	manager, err := preview.NewManager(ctx, kv, cloud, *cell, store)
	if err != nil {
		return err
	}

	app := pocketbase.New()
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := routes.SetupRoutes(ctx, se.Router, manager); err != nil {
			return err
		}
		return se.Next()
	})

	log.Info("preview server starting", "addr", *addr)

	// pocketbase runs its own cobra CLI; hand it just the serve
	// invocation so our flags stay out of its way.
	app.RootCmd.SetArgs([]string{"serve", "--http", *addr})
	return app.Start()
}
