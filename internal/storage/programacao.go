package storage

import "time"

type Programacao struct {
	ID             int64     `json:"id"`
	IDOS           int64     `json:"id_os"`
	NumeroOS       string    `json:"os_numero"`
	ResponsavelID  int64     `json:"responsavel_id"`
	Responsavel    string    `json:"responsavel"`
	IDSetor        *int64    `json:"id_setor"`
	Setor          string    `json:"setor"`
	InicioPrevisto time.Time `json:"inicio_previsto"`
	FimPrevisto    time.Time `json:"fim_previsto"`
	Status         string    `json:"status"`
	Observacoes    *string   `json:"observacoes"`
}

type FiltroProgramacao struct {
	Inicio  time.Time
	Fim     time.Time
	Status  string
	IDSetor int64
}
