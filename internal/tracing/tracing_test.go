package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return recorder, tp
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestMiddleware_RecordsRouteTemplate(t *testing.T) {
	recorder, tp := newRecordingTracer()

	var traceID string
	router := mux.NewRouter()
	router.Use(Middleware(tp.Tracer("test")))
	router.HandleFunc("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceID(r.Context())
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotEmpty(t, traceID)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "GET /items/{id}", spans[0].Name())

	code, ok := attrValue(spans[0].Attributes(), "http.response.status_code")
	require.True(t, ok)
	require.Equal(t, int64(http.StatusNotFound), code.AsInt64())
	require.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestMiddleware_MarksServerErrors(t *testing.T) {
	recorder, tp := newRecordingTracer()

	router := mux.NewRouter()
	router.Use(Middleware(tp.Tracer("test")))
	router.HandleFunc("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestInit_WithoutEndpoint(t *testing.T) {
	tp, shutdown, err := Init(context.Background(), Config{ServiceName: "menuboard", SampleRatio: 1}, nil)
	require.NoError(t, err)
	require.NotNil(t, tp)
	require.NoError(t, shutdown(context.Background()))
}

func TestInit_InvalidRatio(t *testing.T) {
	_, _, err := Init(context.Background(), Config{SampleRatio: 1.5}, nil)
	require.Error(t, err)
}

func TestTraceID_Empty(t *testing.T) {
	require.Empty(t, TraceID(context.Background()))
}
