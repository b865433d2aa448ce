package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"registro-os/internal/lib/apperr"
	"registro-os/internal/service/relatorio"
	"registro-os/internal/storage"
)

type MockRelatorioCompleto struct {
	mock.Mock
}

func (m *MockRelatorioCompleto) RelatorioCompleto(ctx context.Context, numero string) (*relatorio.RelatorioCompleto, error) {
	args := m.Called(ctx, numero)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*relatorio.RelatorioCompleto), args.Error(1)
}

func serve(t *testing.T, svc RelatorioCompleto, path string) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Get("/api/relatorio-completo/{numero}", GetRelatorioCompleto(slog.Default(), svc))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestGetRelatorioCompleto_Success(t *testing.T) {
	svc := new(MockRelatorioCompleto)
	svc.On("RelatorioCompleto", mock.Anything, "15225").Return(&relatorio.RelatorioCompleto{
		OS:       &storage.OrdemServico{ID: 42, Numero: "15225"},
		Metricas: relatorio.MetricasOS{HorasRealizadas: 12, PercentualDesvio: 20, PercentualAprovacao: 50},
		ResumoGerencial: relatorio.ResumoGerencial{
			NumeroOS:    "15225",
			StatusPrazo: relatorio.StatusAtencao,
			StatusGeral: relatorio.StatusCritico,
		},
	}, nil)

	rr := serve(t, svc, "/api/relatorio-completo/15225")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Metricas struct {
			HorasRealizadas  float64 `json:"horas_realizadas"`
			PercentualDesvio float64 `json:"percentual_desvio"`
		} `json:"metricas"`
		Resumo struct {
			StatusPrazo string `json:"status_prazo"`
		} `json:"resumo_gerencial"`
	}
	require.NoError(t, render.DecodeJSON(rr.Body, &body))
	assert.Equal(t, 12.0, body.Metricas.HorasRealizadas)
	assert.Equal(t, 20.0, body.Metricas.PercentualDesvio)
	assert.Equal(t, "ATENÇÃO", body.Resumo.StatusPrazo)

	svc.AssertExpectations(t)
}

func TestGetRelatorioCompleto_NotFound(t *testing.T) {
	svc := new(MockRelatorioCompleto)
	svc.On("RelatorioCompleto", mock.Anything, "00000").
		Return(nil, apperr.NotFound("OS 00000 não encontrada", storage.ErrNotFound))

	rr := serve(t, svc, "/api/relatorio-completo/00000")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	var resp apperr.Response
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "NOT_FOUND", resp.Error)
	assert.Equal(t, "OS 00000 não encontrada", resp.Message)
}

func TestGetRelatorioCompleto_InternalErrorHidesDetail(t *testing.T) {
	svc := new(MockRelatorioCompleto)
	svc.On("RelatorioCompleto", mock.Anything, "15225").
		Return(nil, apperr.Internal(errors.New("dial tcp 10.0.0.5:3306: connection refused")))

	rr := serve(t, svc, "/api/relatorio-completo/15225")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
}

func TestGetRelatorioCompleto_InvalidNumero(t *testing.T) {
	svc := new(MockRelatorioCompleto)

	rr := serve(t, svc, "/api/relatorio-completo/"+strings.Repeat("9", 40))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp apperr.Response
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error)
	svc.AssertNotCalled(t, "RelatorioCompleto", mock.Anything, mock.Anything)
}
