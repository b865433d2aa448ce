package relatorio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"registro-os/internal/lib/apperr"
	"registro-os/internal/metrics"
	"registro-os/internal/storage"
)

type Storage interface {
	GetOSByNumero(ctx context.Context, numero string) (*storage.OrdemServico, error)
	ListApontamentosByOS(ctx context.Context, idOS int64) ([]storage.Apontamento, error)
	ListResultadosByOS(ctx context.Context, idOS int64) ([]storage.ResultadoTeste, error)
	ListPendenciasByOS(ctx context.Context, idOS int64, status string) ([]storage.Pendencia, error)
	ListProgramacoesByOS(ctx context.Context, idOS int64) ([]storage.Programacao, error)
}

type Service struct {
	storage Storage
	now     func() time.Time
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage, now: time.Now}
}

type RelatorioCompleto struct {
	OS              *storage.OrdemServico    `json:"os"`
	Apontamentos    []storage.Apontamento    `json:"apontamentos"`
	ResultadosTeste []storage.ResultadoTeste `json:"resultados_teste"`
	Pendencias      []storage.Pendencia      `json:"pendencias"`
	Programacoes    []storage.Programacao    `json:"programacoes"`
	Metricas        MetricasOS               `json:"metricas"`
	DadosPorSetor   map[string]DadosSetor    `json:"dados_por_setor"`
	ResumoGerencial ResumoGerencial          `json:"resumo_gerencial"`
	GeradoEm        time.Time                `json:"gerado_em"`
}

// RelatorioCompleto monta o relatório de uma OS. Sem resultado parcial: qualquer falha aborta.
func (s *Service) RelatorioCompleto(ctx context.Context, numero string) (rel *RelatorioCompleto, err error) {
	const op = "service.relatorio.RelatorioCompleto"

	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = apperr.KindOf(err).String()
		}
		metrics.ObserveRelatorio(time.Since(start), result)
	}()

	ordem, err := s.storage.GetOSByNumero(ctx, numero)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("OS %s não encontrada", numero), err)
		}
		return nil, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	var (
		apontamentos []storage.Apontamento
		resultados   []storage.ResultadoTeste
		pendencias   []storage.Pendencia
		programacoes []storage.Programacao
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		apontamentos, err = s.storage.ListApontamentosByOS(gCtx, ordem.ID)
		if err != nil {
			return fmt.Errorf("apontamentos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		resultados, err = s.storage.ListResultadosByOS(gCtx, ordem.ID)
		if err != nil {
			return fmt.Errorf("resultados: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pendencias, err = s.storage.ListPendenciasByOS(gCtx, ordem.ID, "")
		if err != nil {
			return fmt.Errorf("pendencias: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		programacoes, err = s.storage.ListProgramacoesByOS(gCtx, ordem.ID)
		if err != nil {
			return fmt.Errorf("programacoes: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("%s: os %s: %w", op, numero, err))
	}

	m := CalcularMetricasOS(ordem, apontamentos, resultados, pendencias)
	setores := ConsolidarDadosPorSetor(apontamentos, resultados)

	return &RelatorioCompleto{
		OS:              ordem,
		Apontamentos:    apontamentos,
		ResultadosTeste: resultados,
		Pendencias:      pendencias,
		Programacoes:    programacoes,
		Metricas:        m,
		DadosPorSetor:   setores,
		ResumoGerencial: GerarResumoGerencial(ordem, m, setores),
		GeradoEm:        s.now(),
	}, nil
}
