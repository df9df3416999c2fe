// Package preview holds the serve-mode state: one scene, one current
// plan, persisted to a JetStream KV bucket so watchers see updates.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
	"gonum.org/v1/gonum/spatial/r3"

	"splatpath/export"
	"splatpath/planner"
	"splatpath/scene"
	"splatpath/utils"
)

// stateKey is the KV key holding the serialized State.
const stateKey = "current"

// searchBudget caps SafeRoute expansions while serving, so one bad
// plan request cannot wedge the server.
const searchBudget = 2_000_000

// Plan is one generated camera path plus its metadata.
type Plan struct {
	ID         string       `json:"id"`
	Label      string       `json:"label"`
	Mode       string       `json:"mode"`
	FOV        float64      `json:"fov"`
	FrameCount int          `json:"frameCount"`
	Frames     planner.Path `json:"frames"`
	Timestamp  int64        `json:"timestamp"`
}

// SceneSummary is what the viewer needs to know about the loaded
// scene.
type SceneSummary struct {
	Points   int        `json:"points"`
	Center   [3]float64 `json:"center"`
	Size     [3]float64 `json:"size"`
	Voxels   int        `json:"voxels"`
	CellSize float64    `json:"cellSize"`
}

// State is the full preview state pushed to watchers.
type State struct {
	Scene SceneSummary `json:"scene"`
	Plan  Plan         `json:"plan"`
}

// PlanRequest is a re-plan order from the viewer. Zero-valued fields
// fall back to per-mode defaults.
type PlanRequest struct {
	Mode          string     `json:"mode"` // orbit, panorama or safe
	FramesPerLoop int        `json:"framesPerLoop"`
	Loops         int        `json:"loops"`
	SlowFactor    float64    `json:"slowFactor"`
	Frames        int        `json:"frames"`
	FOV           float64    `json:"fov"`
	Start         [3]float64 `json:"start"`
	End           [3]float64 `json:"end"`
}

// Manager owns the preview state and persists every change to the KV
// bucket. Plan generation itself is pure; the manager only adds
// state-keeping around it.
type Manager struct {
	mu    sync.RWMutex
	state State
	kv    jetstream.KeyValue
	ctx   context.Context

	info scene.Info
	occ  scene.Occupancy
	cell float64

	// store is the optional plan history; recording failures are
	// logged, not fatal.
	store *export.Store
}

// NewManager analyzes and voxelizes the cloud, then saves the initial
// (plan-less) state to the KV bucket.
func NewManager(ctx context.Context, kv jetstream.KeyValue, cloud scene.Cloud, cellSize float64, store *export.Store) (*Manager, error) {
	info, err := scene.Analyze(cloud)
	if err != nil {
		return nil, fmt.Errorf("preview: analyze scene: %w", err)
	}
	occ, err := scene.Voxelize(cloud, cellSize)
	if err != nil {
		return nil, fmt.Errorf("preview: voxelize scene: %w", err)
	}

	m := &Manager{
		kv:    kv,
		ctx:   ctx,
		info:  info,
		occ:   occ,
		cell:  cellSize,
		store: store,
	}
	m.state.Scene = SceneSummary{
		Points:   cloud.Len(),
		Center:   [3]float64{info.Center.X, info.Center.Y, info.Center.Z},
		Size:     [3]float64{info.Size.X, info.Size.Y, info.Size.Z},
		Voxels:   len(occ),
		CellSize: cellSize,
	}

	if err := m.saveState(); err != nil {
		return nil, fmt.Errorf("preview: save initial state: %w", err)
	}

	log.Info("preview manager ready",
		"points", cloud.Len(), "voxels", len(occ), "cell", cellSize)
	return m, nil
}

// Info returns the scene analysis the manager planned against.
func (m *Manager) Info() scene.Info { return m.info }

// GetState returns a copy of the current state.
func (m *Manager) GetState() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stateCopy := m.state
	stateCopy.Plan.Frames = make(planner.Path, len(m.state.Plan.Frames))
	copy(stateCopy.Plan.Frames, m.state.Plan.Frames)
	return stateCopy
}

// Replan generates a fresh path for the request, swaps it in as the
// current plan, persists the new state and records it to the history
// store.
func (m *Manager) Replan(req PlanRequest) (Plan, error) {
	fov := req.FOV
	if fov <= 0 {
		fov = planner.DefaultFOV
	}

	var (
		frames planner.Path
		err    error
	)
	switch req.Mode {
	case "orbit":
		frames, err = m.planOrbit(req, fov)
	case "panorama":
		frames, err = m.planPanorama(req, fov)
	case "safe":
		frames, err = m.planSafe(req, fov)
	default:
		return Plan{}, fmt.Errorf("%w: unknown mode %q", planner.ErrInvalidParameter, req.Mode)
	}
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		ID:         uuid.NewString(),
		Label:      utils.GeneratePlanLabel(),
		Mode:       req.Mode,
		FOV:        fov,
		FrameCount: len(frames),
		Frames:     frames,
		Timestamp:  time.Now().UnixMilli(),
	}

	m.mu.Lock()
	m.state.Plan = plan
	m.mu.Unlock()

	if err := m.saveState(); err != nil {
		return Plan{}, err
	}

	if m.store != nil {
		rec := export.PlanRecord{ID: plan.ID, Label: plan.Label, Mode: plan.Mode, Frames: frames}
		if err := m.store.RecordPlan(rec); err != nil {
			log.Error("failed to record plan history", "id", plan.ID, "err", err)
		}
	}

	log.Info("replanned", "mode", plan.Mode, "label", plan.Label, "frames", plan.FrameCount)
	return plan, nil
}

func (m *Manager) planOrbit(req PlanRequest, fov float64) (planner.Path, error) {
	framesPerLoop := req.FramesPerLoop
	if framesPerLoop <= 0 {
		framesPerLoop = 360
	}
	loops := req.Loops
	if loops <= 0 {
		loops = 2
	}
	slow := req.SlowFactor
	if slow <= 0 {
		slow = 2.0
	}

	radius, err := planner.OrbitRadius(m.info.Size, planner.DefaultOrbitRadiusFactor)
	if err != nil {
		return nil, err
	}
	return planner.Orbit360(planner.OrbitConfig{
		Center:        m.info.Center,
		Radius:        radius,
		FOV:           fov,
		FramesPerLoop: framesPerLoop,
		Loops:         loops,
		SlowFactor:    slow,
	})
}

func (m *Manager) planPanorama(req PlanRequest, fov float64) (planner.Path, error) {
	frames := req.Frames
	if frames <= 0 {
		frames = 900
	}
	return planner.Panorama(planner.PanoramaConfig{
		Center: m.info.Center,
		Radius: m.info.RecommendedRadius,
		Height: m.info.RecommendedHeight,
		FOV:    fov,
		Frames: frames,
	})
}

func (m *Manager) planSafe(req PlanRequest, fov float64) (planner.Path, error) {
	start := r3.Vec{X: req.Start[0], Y: req.Start[1], Z: req.Start[2]}
	end := r3.Vec{X: req.End[0], Y: req.End[1], Z: req.End[2]}
	if start == end {
		// Default run: cut across the scene center, as the original
		// safe-mode demo did.
		c := m.info.Center
		start = r3.Vec{X: c.X, Y: c.Y, Z: c.Z - 5}
		end = r3.Vec{X: c.X + 10, Y: c.Y, Z: c.Z + 10}
	}
	return planner.SafeRoute(planner.SafeConfig{
		Start:     start,
		End:       end,
		Occupancy: m.occ,
		CellSize:  m.cell,
		FOV:       fov,
		Search:    []planner.SearchOption{planner.MaxExpansions(searchBudget)},
	})
}

func (m *Manager) saveState() error {
	m.mu.RLock()
	data, err := json.Marshal(m.state)
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("preview: marshal state: %w", err)
	}

	if _, err := m.kv.Put(m.ctx, stateKey, data); err != nil {
		return fmt.Errorf("preview: persist state: %w", err)
	}
	return nil
}

// WatchState returns a KV watcher that fires on every state change.
func (m *Manager) WatchState(ctx context.Context) (jetstream.KeyWatcher, error) {
	return m.kv.Watch(ctx, stateKey, jetstream.UpdatesOnly())
}
