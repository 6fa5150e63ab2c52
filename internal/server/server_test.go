package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{Port: 8080})
	assert.Error(t, err)
}

func TestNew_RequireAuthWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := New(Config{Port: 8080, APIKey: "key", RequireAuth: true})
	assert.Error(t, err)
}

func TestAuth_MissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	s := newTestServer(t, Config{Port: 8080, RequireAuth: true})

	rec := postRoadmap(s, `{"skills": ["python"], "target_role": "Data Scientist", "years": 1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	s := newTestServer(t, Config{Port: 8080, RequireAuth: true})

	req := httptest.NewRequest(http.MethodPost, "/v1/roadmaps",
		bytes.NewBufferString(`{"skills": ["python"], "target_role": "Data Scientist", "years": 1}`))
	req.Header.Set("Authorization", "Bearer nonsense")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	s := newTestServer(t, Config{Port: 8080, RequireAuth: true})

	token, err := s.jwtService.GenerateToken("cli")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/roadmaps",
		bytes.NewBufferString(`{"skills": ["python"], "target_role": "Data Scientist", "years": 1}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAuth_HealthIsOpen(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	s := newTestServer(t, Config{Port: 8080, RequireAuth: true})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	s := newTestServer(t, Config{Port: 8080})

	req := httptest.NewRequest(http.MethodOptions, "/v1/roadmaps", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
