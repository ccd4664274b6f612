package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/analysis/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analysis/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/analysis/:id", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestInFlight))
}

func TestMiddleware_Unmatched(t *testing.T) {
	m := New()
	r := gin.New()
	r.Use(m.Middleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestObserveModelCall(t *testing.T) {
	m := New()

	m.ObserveModelCall("classify", "gemini-1.5-flash-latest", OutcomeSuccess, 200*time.Millisecond)
	m.ObserveModelCall("classify", "gemini-1.5-flash-latest", OutcomeError, time.Second)
	m.ObserveModelCall("analyze", "", OutcomeInvalid, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.modelCallTotal.WithLabelValues("classify", "gemini-1.5-flash-latest", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.modelCallTotal.WithLabelValues("classify", "gemini-1.5-flash-latest", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.modelCallTotal.WithLabelValues("analyze", "unknown", OutcomeInvalid)))
}

func TestObserveModelCall_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveModelCall("classify", "x", OutcomeSuccess, time.Second)
	})
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveModelCall("analyze", "gpt", OutcomeSuccess, time.Second)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "docanalyzer_llm_calls_total")
}
