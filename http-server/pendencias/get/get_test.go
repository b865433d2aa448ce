package get

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"registro-os/internal/storage"
)

type MockPendencias struct {
	mock.Mock
}

func (m *MockPendencias) GetOSByNumero(ctx context.Context, numero string) (*storage.OrdemServico, error) {
	args := m.Called(ctx, numero)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.OrdemServico), args.Error(1)
}

func (m *MockPendencias) ListPendenciasByOS(ctx context.Context, idOS int64, status string) ([]storage.Pendencia, error) {
	args := m.Called(ctx, idOS, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Pendencia), args.Error(1)
}

func serve(p Pendencias, path string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/api/os/{numero}/pendencias", GetPendencias(slog.Default(), p))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestGetPendencias_Success(t *testing.T) {
	p := new(MockPendencias)
	p.On("GetOSByNumero", mock.Anything, "15225").Return(&storage.OrdemServico{ID: 42, Numero: "15225"}, nil)
	p.On("ListPendenciasByOS", mock.Anything, int64(42), storage.PendenciaAberta).Return([]storage.Pendencia{
		{ID: 1, IDOS: 42, Descricao: "Retrabalho no rotor", Status: storage.PendenciaAberta},
	}, nil)

	rr := serve(p, "/api/os/15225/pendencias?status=aberta")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp Response
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "15225", resp.NumeroOS)
	require.Len(t, resp.Pendencias, 1)
	assert.Equal(t, "Retrabalho no rotor", resp.Pendencias[0].Descricao)
	p.AssertExpectations(t)
}

func TestGetPendencias_InvalidStatus(t *testing.T) {
	p := new(MockPendencias)

	rr := serve(p, "/api/os/15225/pendencias?status=pausada")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	p.AssertNotCalled(t, "GetOSByNumero", mock.Anything, mock.Anything)
}

func TestGetPendencias_OSNotFound(t *testing.T) {
	p := new(MockPendencias)
	p.On("GetOSByNumero", mock.Anything, "00000").
		Return(nil, fmt.Errorf("storage.mysql.GetOSByNumero: %w", storage.ErrNotFound))

	rr := serve(p, "/api/os/00000/pendencias")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	p.AssertNotCalled(t, "ListPendenciasByOS", mock.Anything, mock.Anything, mock.Anything)
}
