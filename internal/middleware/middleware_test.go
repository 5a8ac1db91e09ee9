package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-records/internal/metrics"
	"hospital-records/internal/models"
	"hospital-records/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Minute, time.Hour)
	adminToken, err := tokens.GenerateAccessToken(1, "admin", models.RoleAdmin)
	require.NoError(t, err)
	userToken, err := tokens.GenerateAccessToken(2, "nurse", models.RoleUser)
	require.NoError(t, err)
	foreignToken, err := utils.NewTokenManager("other", time.Minute, time.Hour).GenerateAccessToken(1, "admin", models.RoleAdmin)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/read", AuthMiddleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", UserID(c))
	})
	r.POST("/write", AuthMiddleware(tokens), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name           string
		method         string
		path           string
		authHeader     string
		expectedStatus int
	}{
		{name: "missing header", method: "GET", path: "/read", expectedStatus: http.StatusUnauthorized},
		{name: "not bearer", method: "GET", path: "/read", authHeader: "Basic abc", expectedStatus: http.StatusUnauthorized},
		{name: "bearer without token", method: "GET", path: "/read", authHeader: "Bearer ", expectedStatus: http.StatusUnauthorized},
		{name: "foreign signature", method: "GET", path: "/read", authHeader: "Bearer " + foreignToken, expectedStatus: http.StatusUnauthorized},
		{name: "user can read", method: "GET", path: "/read", authHeader: "Bearer " + userToken, expectedStatus: http.StatusOK},
		{name: "user cannot write", method: "POST", path: "/write", authHeader: "Bearer " + userToken, expectedStatus: http.StatusForbidden},
		{name: "admin can write", method: "POST", path: "/write", authHeader: "Bearer " + adminToken, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestAuthMiddleware_SetsUserID(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Minute, time.Hour)
	token, err := tokens.GenerateAccessToken(42, "nurse", models.RoleUser)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/read", AuthMiddleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", UserID(c))
	})

	req := httptest.NewRequest("GET", "/read", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "42", rr.Body.String())
}

func TestRequireAdmin_WithoutAuth(t *testing.T) {
	r := gin.New()
	r.POST("/write", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/write", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantAllowed string
	}{
		{name: "allowed origin", method: "GET", origin: "http://localhost:3000", wantStatus: http.StatusOK, wantAllowed: "http://localhost:3000"},
		{name: "unknown origin", method: "GET", origin: "http://evil.example", wantStatus: http.StatusOK},
		{name: "preflight", method: "OPTIONS", origin: "http://localhost:3000", wantStatus: http.StatusNoContent, wantAllowed: "http://localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/x", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllowed, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/x", nil))
	assert.Len(t, rr.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/departments/:name", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, name := range []string{"ICU", "ER"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/departments/"+name, nil))
	}

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/departments/:name", "404"))
	assert.Equal(t, 2.0, count)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPActiveConnections))
}
