package relatorio

import (
	"encoding/json"
	"fmt"
	"sort"

	"registro-os/internal/storage"
)

const (
	StatusOK      = "OK"
	StatusAtencao = "ATENÇÃO"
	StatusCritico = "CRÍTICO"
)

// Faixas fixas; comparação estrita, então 20% exato ainda é ATENÇÃO e 80% exato é ATENÇÃO.
const (
	desvioAtencao    = 10.0
	desvioCritico    = 20.0
	aprovacaoCritico = 80.0
	aprovacaoAtencao = 90.0

	// absorve ruído de ponto flutuante, ex.: 2/10*100 = 20.000000000000004
	tolerancia = 1e-9
)

type ResumoGerencial struct {
	NumeroOS            string   `json:"os_numero"`
	StatusPrazo         string   `json:"status_prazo"`
	StatusQualidade     string   `json:"status_qualidade"`
	StatusGeral         string   `json:"status_geral"`
	PercentualDesvio    float64  `json:"percentual_desvio"`
	PercentualAprovacao float64  `json:"percentual_aprovacao"`
	SetorGargalo        string   `json:"setor_gargalo"`
	HorasGargalo        float64  `json:"horas_gargalo"`
	PendenciasAbertas   int      `json:"pendencias_abertas"`
	Alertas             []string `json:"alertas"`
}

func GerarResumoGerencial(ordem *storage.OrdemServico, m MetricasOS, setores map[string]DadosSetor) ResumoGerencial {
	r := ResumoGerencial{
		StatusPrazo:         StatusPrazo(m.PercentualDesvio),
		StatusQualidade:     StatusQualidade(m.PercentualAprovacao),
		PercentualDesvio:    m.PercentualDesvio,
		PercentualAprovacao: m.PercentualAprovacao,
		PendenciasAbertas:   m.PendenciasAbertas,
		Alertas:             []string{},
	}
	if ordem != nil {
		r.NumeroOS = ordem.Numero
	}

	r.StatusGeral = pior(r.StatusPrazo, r.StatusQualidade)
	r.SetorGargalo, r.HorasGargalo = SetorGargalo(setores)

	switch r.StatusPrazo {
	case StatusCritico:
		r.Alertas = append(r.Alertas, fmt.Sprintf("Prazo crítico: desvio de %.2f%% sobre as horas orçadas", m.PercentualDesvio))
	case StatusAtencao:
		r.Alertas = append(r.Alertas, fmt.Sprintf("Atenção ao prazo: desvio de %.2f%% sobre as horas orçadas", m.PercentualDesvio))
	}
	switch r.StatusQualidade {
	case StatusCritico:
		r.Alertas = append(r.Alertas, fmt.Sprintf("Qualidade crítica: aprovação de %.2f%% nos testes", m.PercentualAprovacao))
	case StatusAtencao:
		r.Alertas = append(r.Alertas, fmt.Sprintf("Atenção à qualidade: aprovação de %.2f%% nos testes", m.PercentualAprovacao))
	}
	if m.PendenciasAbertas > 0 {
		r.Alertas = append(r.Alertas, fmt.Sprintf("%d pendência(s) em aberto", m.PendenciasAbertas))
	}

	return r
}

func (r ResumoGerencial) MarshalJSON() ([]byte, error) {
	type alias ResumoGerencial
	a := alias(r)
	a.PercentualDesvio = Arredondar(a.PercentualDesvio)
	a.PercentualAprovacao = Arredondar(a.PercentualAprovacao)
	return json.Marshal(a)
}

func StatusPrazo(desvio float64) string {
	switch {
	case desvio > desvioCritico+tolerancia:
		return StatusCritico
	case desvio > desvioAtencao+tolerancia:
		return StatusAtencao
	default:
		return StatusOK
	}
}

// StatusQualidade segue a régua de aprovação; sem testes o percentual é 0 e cai em CRÍTICO.
func StatusQualidade(aprovacao float64) string {
	switch {
	case aprovacao < aprovacaoCritico-tolerancia:
		return StatusCritico
	case aprovacao < aprovacaoAtencao-tolerancia:
		return StatusAtencao
	default:
		return StatusOK
	}
}

// SetorGargalo escolhe o setor com mais horas; empate vai para o primeiro em ordem alfabética.
func SetorGargalo(setores map[string]DadosSetor) (string, float64) {
	nomes := make([]string, 0, len(setores))
	for nome := range setores {
		nomes = append(nomes, nome)
	}
	sort.Strings(nomes)

	gargalo := ""
	maxHoras := 0.0
	for _, nome := range nomes {
		horas := setores[nome].HorasTotal
		if gargalo == "" || horas > maxHoras {
			gargalo = nome
			maxHoras = horas
		}
	}

	return gargalo, maxHoras
}

func peso(status string) int {
	switch status {
	case StatusCritico:
		return 2
	case StatusAtencao:
		return 1
	default:
		return 0
	}
}

func pior(a, b string) string {
	if peso(b) > peso(a) {
		return b
	}
	return a
}
