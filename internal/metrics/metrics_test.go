package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCascade(t *testing.T) {
	committed := CascadeDeletesTotal.WithLabelValues("widget", "committed")
	rolledBack := CascadeDeletesTotal.WithLabelValues("widget", "rolled_back")
	beforeOK := testutil.ToFloat64(committed)
	beforeErr := testutil.ToFloat64(rolledBack)

	RecordCascade("widget", nil)
	RecordCascade("widget", errors.New("boom"))
	RecordCascade("widget", nil)

	assert.Equal(t, beforeOK+2, testutil.ToFloat64(committed))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(rolledBack))
}

func TestGinMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.CollectAndCount(HTTPRequestDuration)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/abc", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/def", nil))

	assert.Equal(t, before+1, testutil.CollectAndCount(HTTPRequestDuration))
}
