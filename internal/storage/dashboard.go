package storage

type Dashboard struct {
	OSPorStatus         map[string]int     `json:"os_por_status"`
	HorasPorSetor       map[string]float64 `json:"horas_por_setor"`
	PendenciasAbertas   int                `json:"pendencias_abertas"`
	TotalTestes         int                `json:"total_testes"`
	TestesAprovados     int                `json:"testes_aprovados"`
	PercentualAprovacao float64            `json:"percentual_aprovacao"`
}
