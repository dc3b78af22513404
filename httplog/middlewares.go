package httplog

import (
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/lefinal/mu/logging"
	"net/http"
)

// EventRequest is the event name used for logging requests.
const EventRequest = "http_request"

// RequestIDHeader is the header for reading and returning the request id.
const RequestIDHeader = "X-Request-Id"

type viewKey struct{}

// Logging returns a middleware that logs each request as EventRequest with
// method, path, status, written bytes and duration. The request id is taken
// from RequestIDHeader or generated. Handlers can log more events for the
// request with the logging.EventView from FromContext.
func Logging(logger *logging.EventLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)
			view := logger.ForEvent(EventRequest).With(logging.Fields{logging.F("request_id", requestID)})
			ctx := context.WithValue(r.Context(), viewKey{}, view)
			wrappedWriter := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			request := logging.Fields{
				logging.F("method", r.Method),
				logging.F("path", r.URL.EscapedPath()),
				logging.F("remote_addr", r.RemoteAddr),
			}
			// Errors from logging must not affect the response.
			_ = view.InfoTimed(logging.Fields{logging.F("request", request)}, func(extra *logging.Fields) error {
				next.ServeHTTP(wrappedWriter, r.WithContext(ctx))
				status := wrappedWriter.Status()
				if status == 0 {
					status = http.StatusOK
				}
				extra.Set("response", logging.Fields{
					logging.F("status", status),
					logging.F("bytes", wrappedWriter.BytesWritten()),
				})
				if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil && routeCtx.RoutePattern() != "" {
					extra.Set("route", routeCtx.RoutePattern())
				}
				return nil
			})
		})
	}
}

// FromContext returns the logging.EventView for the request, set by Logging.
func FromContext(ctx context.Context) (*logging.EventView, bool) {
	view, ok := ctx.Value(viewKey{}).(*logging.EventView)
	return view, ok
}

// NoCache forbids caching.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Avoid caching.
		w.Header().Set("Cache-Control", "max-age=0, no-cache, must-revalidate, proxy-revalidate")
		next.ServeHTTP(w, r)
	})
}
