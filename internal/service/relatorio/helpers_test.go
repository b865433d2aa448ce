package relatorio

import (
	"time"

	"registro-os/internal/storage"
)

var base = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func apontamento(id, idUsuario int64, tecnico, setor string, duracao time.Duration) storage.Apontamento {
	fim := base.Add(duracao)
	return storage.Apontamento{
		ID:             id,
		IDOS:           42,
		IDUsuario:      idUsuario,
		Tecnico:        tecnico,
		Setor:          setor,
		DataHoraInicio: base,
		DataHoraFim:    &fim,
	}
}

func simples(idApontamento int64, resultado string) storage.ResultadoTeste {
	return storage.ResultadoTeste{
		IDApontamento: idApontamento,
		NomeTeste:     "Isolação",
		Formato:       storage.FormatoSimples,
		Resultado:     resultado,
	}
}

func estruturado(idApontamento int64, resultados ...string) storage.ResultadoTeste {
	r := storage.ResultadoTeste{
		IDApontamento: idApontamento,
		NomeTeste:     "Ensaio elétrico",
		Formato:       storage.FormatoEstruturado,
	}
	for i, res := range resultados {
		r.Subresultados = append(r.Subresultados, storage.Subresultado{
			Nome:      string(rune('A' + i)),
			Resultado: res,
		})
	}
	return r
}

func horas(h float64) *float64 {
	return &h
}
