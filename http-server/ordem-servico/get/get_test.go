package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"registro-os/internal/lib/apperr"
	"registro-os/internal/storage"
)

type MockListOS struct {
	mock.Mock
}

func (m *MockListOS) ListOS(ctx context.Context, f storage.FiltroOS) (*storage.ListaOS, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ListaOS), args.Error(1)
}

func TestGetOrdens_Success(t *testing.T) {
	list := new(MockListOS)
	list.On("ListOS", mock.Anything, storage.FiltroOS{
		Status:  "EM ANDAMENTO",
		IDSetor: 2,
		Search:  "152",
		Limit:   20,
		Offset:  40,
	}).Return(&storage.ListaOS{
		Itens: []storage.OrdemServico{{ID: 1, Numero: "15225"}},
		Total: 41,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/os?status=em+andamento&setor_id=2&search=152&limit=20&offset=40", nil)
	rr := httptest.NewRecorder()
	GetOrdens(slog.Default(), list).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp Response
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, 41, resp.Total)
	assert.Equal(t, 20, resp.Limit)
	require.Len(t, resp.Itens, 1)
	assert.Equal(t, "15225", resp.Itens[0].Numero)
	list.AssertExpectations(t)
}

func TestGetOrdens_DefaultLimit(t *testing.T) {
	list := new(MockListOS)
	list.On("ListOS", mock.Anything, storage.FiltroOS{Limit: defaultLimit}).
		Return(&storage.ListaOS{Itens: []storage.OrdemServico{}}, nil)

	rr := httptest.NewRecorder()
	GetOrdens(slog.Default(), list).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/os", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	list.AssertExpectations(t)
}

func TestGetOrdens_InvalidQuery(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"limit above max", "/api/os?limit=500"},
		{"limit not a number", "/api/os?limit=abc"},
		{"negative offset", "/api/os?offset=-1"},
		{"bad setor", "/api/os?setor_id=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := new(MockListOS)
			rr := httptest.NewRecorder()
			GetOrdens(slog.Default(), list).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var resp apperr.Response
			require.NoError(t, render.DecodeJSON(rr.Body, &resp))
			assert.Equal(t, "VALIDATION_ERROR", resp.Error)
			list.AssertNotCalled(t, "ListOS", mock.Anything, mock.Anything)
		})
	}
}

func TestGetOrdens_StorageError(t *testing.T) {
	list := new(MockListOS)
	list.On("ListOS", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	rr := httptest.NewRecorder()
	GetOrdens(slog.Default(), list).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/os", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}
