package httplog

import (
	"bytes"
	"encoding/json"
	"github.com/go-chi/chi/v5"
	"github.com/lefinal/mu/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// loggingSuite tests Logging.
type loggingSuite struct {
	suite.Suite
	output *bytes.Buffer
	router chi.Router
}

func (suite *loggingSuite) SetupTest() {
	suite.output = &bytes.Buffer{}
	logger := logging.NewEventLogger(logging.EventLoggerConfig{
		Sink: logging.NewWriterSink(zapcore.AddSync(suite.output), logging.DebugLevel),
	})
	suite.router = chi.NewRouter()
	suite.router.Use(Logging(logger))
	suite.router.Use(NoCache)
}

// events parses all logged lines.
func (suite *loggingSuite) events() []map[string]any {
	lines := strings.Split(strings.TrimSuffix(suite.output.String(), "\n"), "\n")
	events := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		var event map[string]any
		suite.Require().NoError(json.Unmarshal([]byte(line), &event), "each line should be json")
		events = append(events, event)
	}
	return events
}

func (suite *loggingSuite) TestRequest() {
	suite.router.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		view, ok := FromContext(r.Context())
		suite.Require().True(ok, "should provide view")
		suite.NoError(view.Debug(logging.Fields{logging.F("user", chi.URLParam(r, "id"))}), "log should not fail")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})
	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	suite.Equal(http.StatusCreated, rec.Code, "should keep status")
	suite.Equal("abc", rec.Header().Get(RequestIDHeader), "should return request id")
	suite.NotEmpty(rec.Header().Get("Cache-Control"), "should forbid caching")
	events := suite.events()
	suite.Require().Len(events, 2, "should log handler and request events")

	handlerEvent := events[0]
	suite.Equal(EventRequest, handlerEvent["event"], "should bind event")
	suite.Equal("abc", handlerEvent["request_id"], "should bind request id")
	suite.Equal("42", handlerEvent["user"], "should log handler data")

	requestEvent := events[1]
	suite.Equal(EventRequest, requestEvent["event"])
	suite.Equal("abc", requestEvent["request_id"])
	suite.Equal("GET", requestEvent["request.method"])
	suite.Equal("/users/42", requestEvent["request.path"])
	suite.Equal(201.0, requestEvent["response.status"])
	suite.Equal(2.0, requestEvent["response.bytes"])
	suite.Equal("/users/{id}", requestEvent["route"])
	suite.Contains(requestEvent, "duration", "should time request")
}

func (suite *loggingSuite) TestGeneratedRequestID() {
	suite.router.Get("/", func(w http.ResponseWriter, r *http.Request) {})
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	requestID := rec.Header().Get(RequestIDHeader)
	suite.Len(requestID, 36, "should generate uuid")
	events := suite.events()
	suite.Require().Len(events, 1)
	suite.Equal(requestID, events[0]["request_id"], "should log generated id")
	suite.Equal(200.0, events[0]["response.status"], "should default to ok")
}

func (suite *loggingSuite) TestPanic() {
	suite.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		panic("sad life")
	})
	suite.PanicsWithValue("sad life", func() {
		suite.router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}, "should not swallow panic")
	events := suite.events()
	suite.Require().Len(events, 1, "should still log request")
	suite.Equal([]any{"panic", "sad life"}, events[0]["exception"])
}

func TestLogging(t *testing.T) {
	suite.Run(t, new(loggingSuite))
}

func TestFromContext_Missing(t *testing.T) {
	view, ok := FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok, "should not find view")
	assert.Nil(t, view, "should return nil")
}

func TestNoCache(t *testing.T) {
	rec := httptest.NewRecorder()
	NoCache(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "max-age=0, no-cache, must-revalidate, proxy-revalidate", rec.Header().Get("Cache-Control"))
}
