package web_server

import (
	"context"
	nativeerrors "errors"
	"github.com/go-chi/chi/v5"
	"github.com/lefinal/mu/errors"
	"github.com/lefinal/mu/httplog"
	"github.com/lefinal/mu/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultWriteTimeout is the default timeout for writing.
	DefaultWriteTimeout = 15 * time.Second
	// DefaultReadTimeout is the default timeout for reading.
	DefaultReadTimeout = 15 * time.Second
	// shutdownTimeout is the time to wait for open requests when shutting down.
	shutdownTimeout = 15 * time.Second
)

// Event names used by the WebServer.
const (
	EventWebServerUp   = "web_server_up"
	EventWebServerDown = "web_server_down"
)

// MetricsPath is the path Prometheus metrics are served on.
const MetricsPath = "/metrics"

type WebServer struct {
	config     Config
	logger     *logging.EventLogger
	httpServer *http.Server
	router     chi.Router
}

// Config is the configuration that is used in order to create and run a web
// server.
type Config struct {
	// Address for the web server to listen to.
	ServeAddr string
	// WriteTimeout is the duration to wait until write fails with a timeout.
	WriteTimeout time.Duration
	// ReadTimeout is the duration to wait until read fails with a timeout.
	ReadTimeout time.Duration
}

// NewWebServer creates a new WebServer that logs each request to the given
// logging.EventLogger. Run it with WebServer.Run and do not forget to call
// WebServer.PopulateRoutes before.
func NewWebServer(config Config, logger *logging.EventLogger) (*WebServer, error) {
	if config.ServeAddr == "" {
		return nil, errors.NewInvalidConfigError(errors.KindMissingName, "no addr provided in config", nil)
	}
	ws := WebServer{
		config: config,
		logger: logger,
		router: chi.NewRouter(),
	}
	ws.router.Use(httplog.Logging(logger))
	ws.router.Use(httplog.NoCache)
	ws.httpServer = &http.Server{
		Handler:      ws.router,
		Addr:         config.ServeAddr,
		WriteTimeout: config.WriteTimeout,
		ReadTimeout:  config.ReadTimeout,
	}
	return &ws, nil
}

// PopulateRoutes serves metrics from the given prometheus.Gatherer at
// MetricsPath.
func (server *WebServer) PopulateRoutes(gatherer prometheus.Gatherer) {
	server.router.Method(http.MethodGet, MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

// Handler returns the http.Handler with all routes and middlewares.
func (server *WebServer) Handler() http.Handler {
	return server.router
}

// Run serves until the given context is done and shuts down gracefully.
func (server *WebServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", server.config.ServeAddr)
	if err != nil {
		return errors.FromErr("listen", errors.ErrIO, err, errors.Details{"addr": server.config.ServeAddr})
	}
	_ = server.logger.Info(EventWebServerUp, logging.Fields{logging.F("addr", listener.Addr().String())})
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.httpServer.Serve(listener)
	}()
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil && !nativeerrors.Is(err, http.ErrServerClosed) {
			return errors.FromErr("serve", errors.ErrIO, err, nil)
		}
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = server.httpServer.Shutdown(shutdownCtx)
	_ = server.logger.Info(EventWebServerDown, nil)
	if err != nil {
		return errors.FromErr("shutdown web server", errors.ErrIO, err, nil)
	}
	return nil
}
