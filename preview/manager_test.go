package preview

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/delaneyj/toolbelt/embeddednats"
	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splatpath/export"
	"splatpath/planner"
	"splatpath/scene"
)

func newTestKV(t *testing.T) jetstream.KeyValue {
	t.Helper()
	ctx := context.Background()

	ns, err := embeddednats.New(ctx,
		embeddednats.WithDirectory(t.TempDir()),
		embeddednats.WithNATSServerOptions(&natsserver.Options{
			JetStream: true,
			Port:      -1,
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { ns.Close() })
	ns.WaitForServer()

	nc, err := ns.Client()
	require.NoError(t, err)
	js, err := jetstream.New(nc)
	require.NoError(t, err)
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: "splatpath-test"})
	require.NoError(t, err)
	return kv
}

func newTestManager(t *testing.T) (*Manager, jetstream.KeyValue, *export.Store) {
	t.Helper()
	ctx := context.Background()
	kv := newTestKV(t)

	store, err := export.Open(filepath.Join(t.TempDir(), "plans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m, err := NewManager(ctx, kv, scene.SyntheticRoom(1), 0.5, store)
	require.NoError(t, err)
	return m, kv, store
}

func loadState(t *testing.T, kv jetstream.KeyValue) State {
	t.Helper()
	entry, err := kv.Get(context.Background(), stateKey)
	require.NoError(t, err)

	var st State
	require.NoError(t, json.Unmarshal(entry.Value(), &st))
	return st
}

func TestNewManagerPersistsInitialState(t *testing.T) {
	m, kv, _ := newTestManager(t)

	st := loadState(t, kv)
	assert.Greater(t, st.Scene.Points, 1000)
	assert.Greater(t, st.Scene.Voxels, 0)
	assert.Equal(t, 0.5, st.Scene.CellSize)
	assert.Empty(t, st.Plan.ID, "fresh manager should have no plan yet")

	local := m.GetState()
	assert.Equal(t, st.Scene, local.Scene)
}

func TestReplanOrbitDefaults(t *testing.T) {
	m, kv, store := newTestManager(t)

	plan, err := m.Replan(PlanRequest{Mode: "orbit"})
	require.NoError(t, err)

	// Defaults: 360 frames/loop, 2 loops, slow factor 2.
	assert.Equal(t, 1440, plan.FrameCount)
	assert.Len(t, plan.Frames, 1440)
	assert.Equal(t, "orbit", plan.Mode)
	assert.Equal(t, planner.DefaultFOV, plan.FOV)
	assert.NotEmpty(t, plan.ID)
	assert.NotEmpty(t, plan.Label)

	st := loadState(t, kv)
	assert.Equal(t, plan.ID, st.Plan.ID)
	assert.Equal(t, 1440, st.Plan.FrameCount)

	rec, err := store.GetPlan(plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1440, rec.FrameCount)
}

func TestReplanPanorama(t *testing.T) {
	m, _, _ := newTestManager(t)

	plan, err := m.Replan(PlanRequest{Mode: "panorama", Frames: 24, FOV: 80})
	require.NoError(t, err)
	assert.Equal(t, 24, plan.FrameCount)
	assert.Equal(t, 80.0, plan.FOV)

	// Panorama frames sit at the recommended height.
	info := m.Info()
	for i, f := range plan.Frames {
		assert.InDelta(t, info.RecommendedHeight, f.CameraToWorld.Position().Y, 1e-9, "frame %d", i)
	}
}

func TestReplanSafeExplicitEndpoints(t *testing.T) {
	m, _, _ := newTestManager(t)

	// A short hop through the open middle of the room, clear of the
	// column ring.
	plan, err := m.Replan(PlanRequest{
		Mode:  "safe",
		Start: [3]float64{2, 2, 2},
		End:   [3]float64{5, 2, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "safe", plan.Mode)
	assert.Equal(t, 7, plan.FrameCount, "unobstructed route should be a straight lattice walk")
}

func TestReplanUnknownMode(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.Replan(PlanRequest{Mode: "teleport"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, planner.ErrInvalidParameter))

	// A failed replan must not disturb the current state.
	assert.Empty(t, m.GetState().Plan.ID)
}

func TestGetStateReturnsCopy(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.Replan(PlanRequest{Mode: "panorama", Frames: 12})
	require.NoError(t, err)

	st := m.GetState()
	require.NotEmpty(t, st.Plan.Frames)
	st.Plan.Frames[0].FOV = -999

	again := m.GetState()
	assert.Equal(t, planner.DefaultFOV, again.Plan.Frames[0].FOV, "caller mutation leaked into manager state")
}

func TestWatchStateSeesReplan(t *testing.T) {
	m, _, _ := newTestManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := m.WatchState(ctx)
	require.NoError(t, err)
	defer watcher.Stop()

	plan, err := m.Replan(PlanRequest{Mode: "panorama", Frames: 8})
	require.NoError(t, err)

	for entry := range watcher.Updates() {
		if entry == nil {
			continue
		}
		var st State
		require.NoError(t, json.Unmarshal(entry.Value(), &st))
		assert.Equal(t, plan.ID, st.Plan.ID)
		assert.Equal(t, 8, st.Plan.FrameCount)
		return
	}
	t.Fatal("watcher closed without delivering the update")
}