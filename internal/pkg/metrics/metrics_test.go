package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	ObserveTransition("graduate", OutcomeSuccess, 3)
	ObserveTransition("graduate", OutcomeSuccess, 0)
	SectionFull()

	body := scrape(t, r)
	assert.Contains(t, body, `schoolhub_http_requests_total{method="GET",route="/ping",status="200"} 1`)
	assert.Contains(t, body, `schoolhub_student_transitions_total{outcome="success",transition="graduate"} 3`)
	assert.Contains(t, body, `schoolhub_section_full_rejections_total 1`)
}
