package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTotals(t *testing.T) {
	m := New()

	m.SetTotals(2, 3, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Departments))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Patients))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Staff))
}

func TestRecordMutation(t *testing.T) {
	m := New()

	m.RecordMutation("add_department", "success")
	m.RecordMutation("add_department", "success")
	m.RecordMutation("add_department", "duplicate")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MutationsTotal.WithLabelValues("add_department", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MutationsTotal.WithLabelValues("add_department", "duplicate")))
}

func TestHandler_ExposesHTTPMetrics(t *testing.T) {
	m := New()
	m.RecordHTTPRequest("GET", "/api/summary", http.StatusOK, 12*time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `http_requests_total{endpoint="/api/summary",method="GET",status="200"} 1`))
	assert.True(t, strings.Contains(body, "hospital_departments"))
}
