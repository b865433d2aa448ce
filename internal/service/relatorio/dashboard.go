package relatorio

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"registro-os/internal/lib/apperr"
	"registro-os/internal/storage"
)

type DashboardStorage interface {
	CountOSByStatus(ctx context.Context) (map[string]int, error)
	SumHorasPorSetor(ctx context.Context) (map[string]float64, error)
	CountPendenciasAbertas(ctx context.Context) (int, error)
	CountResultadosSimples(ctx context.Context) (total, aprovados int, err error)
	ListResultadosEstruturados(ctx context.Context) ([]storage.ResultadoTeste, error)
}

type DashboardService struct {
	storage DashboardStorage
}

func NewDashboardService(storage DashboardStorage) *DashboardService {
	return &DashboardService{storage: storage}
}

// Dashboard consolida todas as OS. Os testes são classificados com a mesma regra do relatório por OS.
func (s *DashboardService) Dashboard(ctx context.Context) (*storage.Dashboard, error) {
	const op = "service.relatorio.Dashboard"

	var (
		porStatus  map[string]int
		porSetor   map[string]float64
		abertas    int
		simples    int
		aprovados  int
		resultados []storage.ResultadoTeste
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		porStatus, err = s.storage.CountOSByStatus(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		porSetor, err = s.storage.SumHorasPorSetor(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		abertas, err = s.storage.CountPendenciasAbertas(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		simples, aprovados, err = s.storage.CountResultadosSimples(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		resultados, err = s.storage.ListResultadosEstruturados(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	horas := make(map[string]float64, len(porSetor))
	for setor, h := range porSetor {
		if setor == "" {
			setor = SemSetor
		}
		horas[setor] += h
	}

	d := &storage.Dashboard{
		OSPorStatus:       porStatus,
		HorasPorSetor:     horas,
		PendenciasAbertas: abertas,
		TotalTestes:       simples,
		TestesAprovados:   aprovados,
	}
	for _, desfecho := range Desfechos(resultados) {
		d.TotalTestes++
		if desfecho.Classe == ClassAprovado {
			d.TestesAprovados++
		}
	}
	d.PercentualAprovacao = Arredondar(PercentualAprovacao(d.TestesAprovados, d.TotalTestes))

	return d, nil
}
