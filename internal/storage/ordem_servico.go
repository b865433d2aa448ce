package storage

import "time"

type OrdemServico struct {
	ID                    int64      `json:"id"`
	Numero                string     `json:"os_numero"`
	Status                string     `json:"status_os"`
	Prioridade            string     `json:"prioridade"`
	Descricao             string     `json:"descricao_maquina"`
	HorasOrcadas          float64    `json:"horas_orcadas"`
	IDCliente             *int64     `json:"id_cliente"`
	Cliente               string     `json:"cliente"`
	IDEquipamento         *int64     `json:"id_equipamento"`
	Equipamento           string     `json:"equipamento"`
	IDSetor               *int64     `json:"id_setor"`
	Setor                 string     `json:"setor"`
	IDDepartamento        *int64     `json:"id_departamento"`
	Departamento          string     `json:"departamento"`
	DataCriacao           time.Time  `json:"data_criacao"`
	DataUltimaAtualizacao *time.Time `json:"data_ultima_atualizacao"`
}

type FiltroOS struct {
	Status  string
	IDSetor int64
	Search  string
	Limit   int
	Offset  int
}

type ListaOS struct {
	Itens []OrdemServico `json:"itens"`
	Total int            `json:"total"`
}
