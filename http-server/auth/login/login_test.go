package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"registro-os/internal/config"
	"registro-os/internal/lib/apperr"
	"registro-os/internal/storage"
)

type MockUsuarios struct {
	mock.Mock
}

func (m *MockUsuarios) GetUsuarioByEmail(ctx context.Context, email string) (*storage.Usuario, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Usuario), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Generate(userID int64, email, nome, privilegeLevel string) (string, error) {
	args := m.Called(userID, email, nome, privilegeLevel)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) TTL() time.Duration {
	return time.Hour
}

var authCfg = config.Auth{CookieName: "access_token", CookieSecure: true}

func usuario(t *testing.T, senha string, ativo bool) *storage.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	require.NoError(t, err)

	return &storage.Usuario{
		ID:             7,
		Nome:           "Ana Souza",
		Email:          "ana@registroos.local",
		SenhaHash:      string(hash),
		PrivilegeLevel: "SUPERVISOR",
		Ativo:          ativo,
	}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUsuarios)
	tokens := new(MockTokenIssuer)
	users.On("GetUsuarioByEmail", mock.Anything, "ana@registroos.local").Return(usuario(t, "segredo123", true), nil)
	tokens.On("Generate", int64(7), "ana@registroos.local", "Ana Souza", "SUPERVISOR").Return("signed.jwt.token", nil)

	rr := post(Login(slog.Default(), users, tokens, authCfg), `{"email":" Ana@RegistroOS.local ","senha":"segredo123"}`)

	require.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "access_token", cookies[0].Name)
	assert.Equal(t, "signed.jwt.token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	assert.NotContains(t, rr.Body.String(), "senha")
	var resp Response
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "SUPERVISOR", resp.Usuario.PrivilegeLevel)
	assert.Empty(t, resp.Usuario.SenhaHash)
}

func TestLogin_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, users *MockUsuarios)
	}{
		{"unknown email", func(t *testing.T, users *MockUsuarios) {
			users.On("GetUsuarioByEmail", mock.Anything, "ana@registroos.local").
				Return(nil, errors.Join(errors.New("storage.mysql.GetUsuarioByEmail"), storage.ErrNotFound))
		}},
		{"wrong password", func(t *testing.T, users *MockUsuarios) {
			users.On("GetUsuarioByEmail", mock.Anything, "ana@registroos.local").Return(usuario(t, "outra", true), nil)
		}},
		{"inactive", func(t *testing.T, users *MockUsuarios) {
			users.On("GetUsuarioByEmail", mock.Anything, "ana@registroos.local").Return(usuario(t, "segredo123", false), nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUsuarios)
			tokens := new(MockTokenIssuer)
			tt.setup(t, users)

			rr := post(Login(slog.Default(), users, tokens, authCfg), `{"email":"ana@registroos.local","senha":"segredo123"}`)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Empty(t, rr.Result().Cookies())
			var resp apperr.Response
			require.NoError(t, render.DecodeJSON(rr.Body, &resp))
			assert.Equal(t, storage.ErrInvalidCredentials.Error(), resp.Message)
			tokens.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestLogin_UnknownEmailStillComparesHash(t *testing.T) {
	var hashes [][]byte
	original := compareHash
	compareHash = func(hash, senha []byte) error {
		hashes = append(hashes, hash)
		return original(hash, senha)
	}
	t.Cleanup(func() { compareHash = original })

	users := new(MockUsuarios)
	tokens := new(MockTokenIssuer)
	users.On("GetUsuarioByEmail", mock.Anything, "ghost@registroos.local").Return(nil, storage.ErrNotFound)

	rr := post(Login(slog.Default(), users, tokens, authCfg), `{"email":"ghost@registroos.local","senha":"segredo123"}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Len(t, hashes, 1)
	assert.Equal(t, hashFicticio, hashes[0])
	cost, err := bcrypt.Cost(hashes[0])
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestLogin_InvalidBody(t *testing.T) {
	users := new(MockUsuarios)
	tokens := new(MockTokenIssuer)
	h := Login(slog.Default(), users, tokens, authCfg)

	for _, body := range []string{`{bad json`, `{"email":"not-an-email","senha":"x"}`, `{"email":"ana@registroos.local"}`} {
		rr := post(h, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
	users.AssertNotCalled(t, "GetUsuarioByEmail", mock.Anything, mock.Anything)
}
