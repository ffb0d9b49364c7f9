package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/permit-backend/internal/config"
	"github.com/javajoker/permit-backend/internal/i18n"
	"github.com/javajoker/permit-backend/internal/repository"
	"github.com/javajoker/permit-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, i18n.Initialize("en"))

	cfg := &config.Config{
		Server:  config.ServerConfig{AllowOrigins: []string{"*"}},
		Store:   config.StoreConfig{Driver: "memory"},
		Session: config.SessionConfig{Secret: "router-test", TTLHours: 1},
		Storage: config.StorageConfig{
			UploadDir:     t.TempDir(),
			PublicBaseURL: "http://localhost:8080",
			MaxUploadMB:   1,
		},
		RateLimit: config.RateLimitConfig{
			GeneralPerSecond: 100,
			GeneralBurst:     100,
			UploadsPerMinute: 60,
			UploadBurst:      10,
		},
	}
	storage, err := services.NewStorageService(cfg)
	require.NoError(t, err)

	return Initialize(cfg, repository.NewMemoryStore(), nil, storage)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"store":"memory"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "permit_http_requests_total")
}

func TestApplicationRoutes(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/applications", bytes.NewBufferString(`{"platform":"web"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			Application struct {
				ID string `json:"id"`
			} `json:"application"`
			SessionToken string `json:"session_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	base := "/v1/applications/" + resp.Data.Application.ID

	for _, path := range []string{base, base + "/documents", base + "/print", base + "/documents/export"} {
		req = httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+resp.Data.SessionToken)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, base+"/documents", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/document-requirements", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
