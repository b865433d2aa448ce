package storage

import "time"

const (
	FormatoSimples     = "SIMPLES"
	FormatoEstruturado = "ESTRUTURADO"
)

const (
	ResultadoAprovado     = "APROVADO"
	ResultadoReprovado    = "REPROVADO"
	ResultadoInconclusivo = "INCONCLUSIVO"
)

// ResultadoTeste é uma variante: SIMPLES usa Resultado; ESTRUTURADO usa Subresultados.
type ResultadoTeste struct {
	ID            int64          `json:"id"`
	IDApontamento int64          `json:"id_apontamento"`
	IDTeste       int64          `json:"id_teste"`
	NomeTeste     string         `json:"nome_teste"`
	Formato       string         `json:"formato"`
	Resultado     string         `json:"resultado"`
	Observacao    *string        `json:"observacao"`
	Subresultados []Subresultado `json:"subresultados,omitempty"`
	DataRegistro  time.Time      `json:"data_registro"`
}

type Subresultado struct {
	Nome       string `json:"nome"`
	Resultado  string `json:"resultado"`
	Observacao string `json:"observacao,omitempty"`
}
