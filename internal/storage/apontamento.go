package storage

import "time"

// Etapa guarda a marcação de uma etapa (inicial/parcial/final) do apontamento.
type Etapa struct {
	Marcada    bool     `json:"marcada"`
	Horas      *float64 `json:"horas"`
	Observacao *string  `json:"observacao"`
}

type Apontamento struct {
	ID             int64      `json:"id"`
	IDOS           int64      `json:"id_os"`
	IDUsuario      int64      `json:"id_usuario"`
	Tecnico        string     `json:"tecnico"`
	IDSetor        *int64     `json:"id_setor"`
	Setor          string     `json:"setor"`
	DataHoraInicio time.Time  `json:"data_hora_inicio"`
	DataHoraFim    *time.Time `json:"data_hora_fim"`
	Status         string     `json:"status_apontamento"`
	FoiRetrabalho  bool       `json:"foi_retrabalho"`
	Observacao     *string    `json:"observacao"`
	EtapaInicial   Etapa      `json:"etapa_inicial"`
	EtapaParcial   Etapa      `json:"etapa_parcial"`
	EtapaFinal     Etapa      `json:"etapa_final"`
}
