package routes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	datastar "github.com/starfederation/datastar/sdk/go"

	"splatpath/preview"
	"splatpath/views"
)

func setupViewerRoutes(r *router.Router[*core.RequestEvent], manager *preview.Manager) error {
	r.GET("/", func(e *core.RequestEvent) error {
		return views.Viewer("splatpath preview").Render(context.Background(), e.Response)
	})

	// SSE stream of the preview state. An initial snapshot goes out
	// immediately; after that, updates arrive via the KV watcher so
	// every connected viewer sees a re-plan the moment it lands.
	r.GET("/pathstream", func(e *core.RequestEvent) error {
		sse := datastar.NewSSE(e.Response, e.Request)

		send := func(state preview.State) {
			data, err := json.Marshal(state)
			if err != nil {
				log.Error("failed to marshal preview state", "err", err)
				return
			}
			if err := sse.MergeSignals([]byte(fmt.Sprintf(`{"planState": %q}`, string(data)))); err != nil {
				log.Error("failed to push state signal", "err", err)
				return
			}
			if state.Plan.ID != "" {
				_ = sse.MergeFragmentTempl(views.PlanSummary(state.Plan.Label, state.Plan.Mode, state.Plan.FrameCount))
			}
		}

		send(manager.GetState())

		watcher, err := manager.WatchState(e.Request.Context())
		if err != nil {
			return fmt.Errorf("routes: watch state: %w", err)
		}
		defer watcher.Stop()

		for {
			select {
			case <-e.Request.Context().Done():
				return nil
			case entry := <-watcher.Updates():
				if entry == nil {
					// nil marks the end of the initial replay
					continue
				}
				var state preview.State
				if err := json.Unmarshal(entry.Value(), &state); err != nil {
					log.Error("failed to decode watched state", "err", err)
					continue
				}
				send(state)
			}
		}
	})

	return nil
}
