package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjiriciklum/WellnessSage-sub000/crypto"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

func newTestProvider(t *testing.T) *storage.Provider {
	t.Helper()
	enc, err := crypto.New(bytes.Repeat([]byte{0x2a}, 32))
	require.NoError(t, err)
	return storage.NewProvider(storage.NewMemStore(enc), nil, enc, nil)
}

// asUser injects the authenticated user id the way the auth middleware does.
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Next()
	}
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func healthDataRouter(t *testing.T) (*gin.Engine, *storage.Provider) {
	gin.SetMode(gin.TestMode)
	provider := newTestProvider(t)
	hc := NewHealthDataController(provider)

	r := gin.New()
	r.Use(asUser(1))
	r.GET("/api/health-data", hc.List)
	r.GET("/api/health-data/latest", hc.Latest)
	r.POST("/api/health-data", hc.Create)
	r.DELETE("/api/health-data/:id", hc.Delete)
	return r, provider
}

func TestHealthDataListReturnsSeededWeek(t *testing.T) {
	r, _ := healthDataRouter(t)

	w := do(r, "GET", "/api/health-data", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		HealthData []map[string]any `json:"healthData"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.HealthData, 8)

	// sealed metrics come back as decrypted JSON, not an envelope
	first := resp.HealthData[0]
	metrics, ok := first["healthMetrics"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, metrics, "isEncrypted")
	assert.EqualValues(t, 10000, metrics["stepsGoal"])
}

func TestHealthDataCreateAndDelete(t *testing.T) {
	r, _ := healthDataRouter(t)

	w := do(r, "POST", "/api/health-data", map[string]any{
		"steps":      9500,
		"sleepHours": 7.5,
		"heartRate":  66,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		HealthData struct {
			ID uint `json:"id"`
		} `json:"healthData"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.HealthData.ID)

	w = do(r, "DELETE", "/api/health-data/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, "DELETE", "/api/health-data/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, "DELETE", "/api/health-data/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "second delete of the same id")
}

func TestHealthDataBadID(t *testing.T) {
	r, _ := healthDataRouter(t)

	w := do(r, "DELETE", "/api/health-data/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
