package routes

import (
	"context"
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"

	"splatpath/preview"
)

// SetupRoutes binds every preview route onto the pocketbase router.
func SetupRoutes(ctx context.Context, router *router.Router[*core.RequestEvent], manager *preview.Manager) error {
	err := errors.Join(
		setupViewerRoutes(router, manager),
		setupPlanRoutes(router, manager),
	)
	if err != nil {
		return fmt.Errorf("routes: %w", err)
	}
	return nil
}
