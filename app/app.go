package app

import (
	"context"
	"github.com/lefinal/mu/errors"
	"github.com/lefinal/mu/logging"
	"github.com/lefinal/mu/web_server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// Event names used by the App.
const (
	EventBoot       = "app_boot"
	EventBootFailed = "app_boot_failed"
	EventShutdown   = "app_shutdown"
)

// App runs the background services and the metrics server next to the
// logging.EventLogger it sets up.
type App struct {
	// config is the main config used for the App.
	config Config
	// registry holds event and runtime metrics.
	registry *prometheus.Registry
}

func NewApp(config Config) *App {
	return &App{
		config:   config,
		registry: prometheus.NewRegistry(),
	}
}

// Boot sets everything up based on the set config and runs until the given
// context is done.
func (app *App) Boot(ctx context.Context) error {
	logger, sink, err := SetupLogging(app.config, app.registry)
	if err != nil {
		return errors.Error{
			Code:    errors.ErrFatal,
			Err:     err,
			Message: "setup logging",
		}
	}
	defer func() {
		_ = sink.Close()
	}()
	err = app.boot(ctx, logger)
	if err != nil {
		err = errors.Wrap(err, "boot", nil)
		_ = errors.Log(logger, EventBootFailed, err)
		return err
	}
	return nil
}

func (app *App) boot(ctx context.Context, logger *logging.EventLogger) error {
	_ = logger.Warn(EventBoot, logging.Fields{
		logging.F("level", logger.Level().String()),
		logging.F("metrics_addr", app.config.MetricsAddr),
	})
	app.registry.MustRegister(collectors.NewGoCollector())
	wg, lifetime := errgroup.WithContext(ctx)
	wg.Go(func() error {
		return createServices(app.config, logger).run(lifetime, logger)
	})
	if app.config.MetricsAddr != "" {
		webServer, err := web_server.NewWebServer(web_server.Config{
			ServeAddr:    app.config.MetricsAddr,
			WriteTimeout: web_server.DefaultWriteTimeout,
			ReadTimeout:  web_server.DefaultReadTimeout,
		}, logger)
		if err != nil {
			return errors.Wrap(err, "create web server", nil)
		}
		webServer.PopulateRoutes(app.registry)
		wg.Go(func() error {
			return webServer.Run(lifetime)
		})
	}
	// Wait for exit or failure.
	<-lifetime.Done()
	err := wg.Wait()
	_ = logger.Warn(EventShutdown, nil)
	return err
}
