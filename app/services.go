package app

import (
	"context"
	"github.com/lefinal/mu/debugstats"
	"github.com/lefinal/mu/errors"
	"github.com/lefinal/mu/logging"
	"github.com/lefinal/mu/services"
	"golang.org/x/sync/errgroup"
)

// EventService is the event name for service lifecycle events.
const EventService = "service"

type appServices map[string]services.Service

func createServices(appConfig Config, logger *logging.EventLogger) appServices {
	s := make(appServices)
	s["debug-stats"] = debugstats.NewService(logger, debugstats.Config{
		IsEnabled: appConfig.SystemStatsInterval > 0,
		Interval:  appConfig.SystemStatsInterval,
	})
	return s
}

func (s appServices) run(ctx context.Context, logger *logging.EventLogger) error {
	wg, lifetime := errgroup.WithContext(ctx)
	// Run each.
	for name, serviceToRun := range s {
		// Copy values.
		name, serviceToRun := name, serviceToRun
		wg.Go(func() error {
			view := logger.ForEvent(EventService).With(logging.Fields{logging.F("service_name", name)})
			_ = view.Debug("up")
			defer func() { _ = view.Debug("down") }()
			if err := serviceToRun.Run(lifetime); err != nil {
				return errors.Wrap(err, "run service", errors.Details{"service_name": name})
			}
			return nil
		})
	}
	return wg.Wait()
}
