package storage

import "time"

const (
	PendenciaAberta  = "ABERTA"
	PendenciaFechada = "FECHADA"
)

type Pendencia struct {
	ID                  int64      `json:"id"`
	IDOS                int64      `json:"id_os"`
	IDApontamentoOrigem *int64     `json:"id_apontamento_origem"`
	Descricao           string     `json:"descricao_pendencia"`
	Status              string     `json:"status"`
	DataInicio          time.Time  `json:"data_inicio"`
	DataFechamento      *time.Time `json:"data_fechamento"`
	Responsavel         string     `json:"responsavel_inicio"`
}
