package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colleaguesnet/colleagues-bot/internal/config"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/connection"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
	"github.com/colleaguesnet/colleagues-bot/pkg/auth"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type stubProfileRepo struct {
	total, premium int64
}

func (r *stubProfileRepo) GetByID(_ context.Context, _ int64) (*profile.Profile, error) {
	return nil, nil
}
func (r *stubProfileRepo) Upsert(_ context.Context, _ *profile.Profile) error { return nil }
func (r *stubProfileRepo) SetPremium(_ context.Context, _ int64, _ *time.Time) error {
	return nil
}
func (r *stubProfileRepo) ListPremiumIDs(_ context.Context) ([]int64, error) { return nil, nil }
func (r *stubProfileRepo) CountAll(_ context.Context) (int64, error)         { return r.total, nil }
func (r *stubProfileRepo) CountPremium(_ context.Context) (int64, error)     { return r.premium, nil }

type stubConnRepo struct {
	accepted int64
}

func (r *stubConnRepo) Create(_ context.Context, _, _ int64) (bool, error) { return false, nil }
func (r *stubConnRepo) Accept(_ context.Context, _, _ int64) error         { return nil }
func (r *stubConnRepo) Decline(_ context.Context, _, _ int64) error        { return nil }
func (r *stubConnRepo) ListAccepted(_ context.Context, _ int64) ([]connection.Peer, error) {
	return nil, nil
}
func (r *stubConnRepo) ExistsBetween(_ context.Context, _, _ int64) (bool, error) {
	return false, nil
}
func (r *stubConnRepo) CountAccepted(_ context.Context) (int64, error) { return r.accepted, nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{}
	cfg.App.Env = "test"
	cfg.App.AdminSecret = "sup3rsecret"

	jwtSvc := auth.NewJWTService("test-signing-key", time.Hour)
	handler := NewAdminHandler(
		&stubProfileRepo{total: 12, premium: 3},
		&stubConnRepo{accepted: 5},
		jwtSvc,
		cfg.App.AdminSecret,
		logger.NewNop(),
	)
	return NewRouter(cfg, handler, jwtSvc, logger.NewNop())
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestToken_WrongSecretRejected(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(gin.H{"secret": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/admin/auth/token", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestStats_RequiresToken(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTokenThenStats_Flow(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(gin.H{"secret": "sup3rsecret"})
	req := httptest.NewRequest(http.MethodPost, "/admin/auth/token", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var tokenResponse map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tokenResponse))
	token := tokenResponse["token"]
	require.NotEmpty(t, token)

	statsReq := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	statsReq.Header.Set("Authorization", "Bearer "+token)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, statsReq)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats map[string]int64
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, int64(12), stats["profiles"])
	assert.Equal(t, int64(3), stats["premium_profiles"])
	assert.Equal(t, int64(5), stats["accepted_connections"])
}
