package relatorio

import (
	"encoding/json"
	"math"
	"strings"

	"registro-os/internal/storage"
)

const (
	ClassAprovado  = "APROVADO"
	ClassReprovado = "REPROVADO"
	ClassPendente  = "PENDENTE"
)

// SemSetor agrupa apontamentos sem setor vinculado.
const SemSetor = "SEM SETOR"

const palavraRetrabalho = "retrabalho"

type HorasPorEtapa struct {
	Inicial float64 `json:"inicial"`
	Parcial float64 `json:"parcial"`
	Final   float64 `json:"final"`
}

type MetricasOS struct {
	HorasOrcadas     float64            `json:"horas_orcadas"`
	HorasRealizadas  float64            `json:"horas_realizadas"`
	PercentualDesvio float64            `json:"percentual_desvio"`
	HorasPorEtapa    HorasPorEtapa      `json:"horas_por_etapa"`
	HorasPorSetor    map[string]float64 `json:"horas_por_setor"`

	TotalApontamentos      int `json:"total_apontamentos"`
	ApontamentosRetrabalho int `json:"apontamentos_retrabalho"`
	TecnicosEnvolvidos     int `json:"tecnicos_envolvidos"`

	TotalTestes         int     `json:"total_testes"`
	TestesAprovados     int     `json:"testes_aprovados"`
	TestesReprovados    int     `json:"testes_reprovados"`
	TestesPendentes     int     `json:"testes_pendentes"`
	PercentualAprovacao float64 `json:"percentual_aprovacao"`

	TotalPendencias      int `json:"total_pendencias"`
	PendenciasAbertas    int `json:"pendencias_abertas"`
	PendenciasRetrabalho int `json:"pendencias_retrabalho"`
}

// CalcularMetricasOS percorre apontamentos, testes e pendências uma única vez cada.
func CalcularMetricasOS(ordem *storage.OrdemServico, apontamentos []storage.Apontamento, resultados []storage.ResultadoTeste, pendencias []storage.Pendencia) MetricasOS {
	m := MetricasOS{
		HorasPorSetor:     make(map[string]float64),
		TotalApontamentos: len(apontamentos),
		TotalPendencias:   len(pendencias),
	}
	if ordem != nil {
		m.HorasOrcadas = ordem.HorasOrcadas
	}

	tecnicos := make(map[int64]struct{})
	for _, a := range apontamentos {
		horas := HorasApontamento(a)
		m.HorasRealizadas += horas
		m.HorasPorSetor[NomeSetor(a)] += horas

		if a.EtapaInicial.Marcada && a.EtapaInicial.Horas != nil {
			m.HorasPorEtapa.Inicial += *a.EtapaInicial.Horas
		}
		if a.EtapaParcial.Marcada && a.EtapaParcial.Horas != nil {
			m.HorasPorEtapa.Parcial += *a.EtapaParcial.Horas
		}
		if a.EtapaFinal.Marcada && a.EtapaFinal.Horas != nil {
			m.HorasPorEtapa.Final += *a.EtapaFinal.Horas
		}

		if a.FoiRetrabalho {
			m.ApontamentosRetrabalho++
		}
		tecnicos[a.IDUsuario] = struct{}{}
	}
	m.TecnicosEnvolvidos = len(tecnicos)

	for _, d := range Desfechos(resultados) {
		m.TotalTestes++
		switch d.Classe {
		case ClassAprovado:
			m.TestesAprovados++
		case ClassReprovado:
			m.TestesReprovados++
		default:
			m.TestesPendentes++
		}
	}

	for _, p := range pendencias {
		if strings.EqualFold(p.Status, storage.PendenciaAberta) {
			m.PendenciasAbertas++
		}
		if strings.Contains(strings.ToLower(p.Descricao), palavraRetrabalho) {
			m.PendenciasRetrabalho++
		}
	}

	m.PercentualDesvio = PercentualDesvio(m.HorasRealizadas, m.HorasOrcadas)
	m.PercentualAprovacao = PercentualAprovacao(m.TestesAprovados, m.TotalTestes)

	return m
}

func (m MetricasOS) MarshalJSON() ([]byte, error) {
	type alias MetricasOS
	a := alias(m)
	a.PercentualDesvio = Arredondar(a.PercentualDesvio)
	a.PercentualAprovacao = Arredondar(a.PercentualAprovacao)
	return json.Marshal(a)
}

// HorasApontamento devolve a duração em horas inteiras, truncando a fração.
// Apontamento ainda aberto (sem fim) conta zero.
func HorasApontamento(a storage.Apontamento) float64 {
	if a.DataHoraFim == nil {
		return 0
	}
	return math.Trunc(a.DataHoraFim.Sub(a.DataHoraInicio).Hours())
}

func NomeSetor(a storage.Apontamento) string {
	if a.Setor == "" {
		return SemSetor
	}
	return a.Setor
}

func PercentualDesvio(realizadas, orcadas float64) float64 {
	if orcadas <= 0 {
		return 0
	}
	return (realizadas - orcadas) / orcadas * 100
}

func PercentualAprovacao(aprovados, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(aprovados) / float64(total) * 100
}

// Desfecho é um resultado individual de teste já classificado.
type Desfecho struct {
	IDApontamento int64
	Nome          string
	Classe        string
}

// Desfechos expande resultados ESTRUTURADO em um desfecho por subteste.
// ESTRUTURADO sem subtestes vale pelo próprio resultado, como um SIMPLES.
func Desfechos(resultados []storage.ResultadoTeste) []Desfecho {
	desfechos := make([]Desfecho, 0, len(resultados))
	for _, r := range resultados {
		if r.Formato == storage.FormatoEstruturado && len(r.Subresultados) > 0 {
			for _, sub := range r.Subresultados {
				desfechos = append(desfechos, Desfecho{
					IDApontamento: r.IDApontamento,
					Nome:          sub.Nome,
					Classe:        Classificar(sub.Resultado),
				})
			}
			continue
		}

		desfechos = append(desfechos, Desfecho{
			IDApontamento: r.IDApontamento,
			Nome:          r.NomeTeste,
			Classe:        Classificar(r.Resultado),
		})
	}
	return desfechos
}

// Classificar considera pendente tudo que não for APROVADO ou REPROVADO (inclusive INCONCLUSIVO).
func Classificar(resultado string) string {
	switch strings.ToUpper(strings.TrimSpace(resultado)) {
	case storage.ResultadoAprovado:
		return ClassAprovado
	case storage.ResultadoReprovado:
		return ClassReprovado
	default:
		return ClassPendente
	}
}

// Arredondar deixa o percentual com duas casas para exibição. A classificação usa o valor bruto.
func Arredondar(v float64) float64 {
	return math.Round(v*100) / 100
}
