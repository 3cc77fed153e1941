package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amoylab/leavehub/internal/common/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New(config.MetricsConfig{Namespace: "leavehub"})

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	m.LeaveTransition("approved")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "leavehub_http_requests_total")
	assert.Contains(t, body, "leavehub_leave_transitions_total")
	assert.Contains(t, body, `status="approved"`)
}
