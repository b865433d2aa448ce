package session

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registro-os/internal/config"
	"registro-os/internal/middleware/auth"
)

func TestLogout_ClearsCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	Logout(config.Auth{CookieName: "access_token"}).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "access_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestMe(t *testing.T) {
	exp := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	claims := &auth.Claims{
		UserID:           7,
		Email:            "ana@registroos.local",
		Nome:             "Ana Souza",
		PrivilegeLevel:   "PCP",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(auth.WithClaims(req.Context(), claims))
	rr := httptest.NewRecorder()
	Me(slog.Default()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp MeResponse
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, "PCP", resp.PrivilegeLevel)
	assert.True(t, exp.Equal(resp.ExpiresAt))
}

func TestMe_NoClaims(t *testing.T) {
	rr := httptest.NewRecorder()
	Me(slog.Default()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
