package routes

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	datastar "github.com/starfederation/datastar/sdk/go"

	"splatpath/preview"
)

// planSignals carries the serialized PlanRequest from the viewer.
type planSignals struct {
	PlanRequest string `json:"planRequest"`
}

func setupPlanRoutes(r *router.Router[*core.RequestEvent], manager *preview.Manager) error {
	r.POST("/plan", func(e *core.RequestEvent) error {
		signals := &planSignals{}
		if err := datastar.ReadSignals(e.Request, signals); err != nil {
			log.Error("error reading plan signals", "err", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		var req preview.PlanRequest
		if signals.PlanRequest != "" {
			if err := json.Unmarshal([]byte(signals.PlanRequest), &req); err != nil {
				log.Error("error unmarshaling plan request", "err", err)
				return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid plan request"})
			}
		}

		plan, err := manager.Replan(req)
		if err != nil {
			log.Error("replan failed", "mode", req.Mode, "err", err)
			return e.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":     plan.ID,
			"label":  plan.Label,
			"mode":   plan.Mode,
			"frames": plan.FrameCount,
		})
	})

	return nil
}
