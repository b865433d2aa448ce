package relatorio

import (
	"sort"

	"registro-os/internal/storage"
)

type DadosSetor struct {
	HorasTotal        float64  `json:"horas_total"`
	TotalApontamentos int      `json:"total_apontamentos"`
	TotalTestes       int      `json:"total_testes"`
	Usuarios          []string `json:"usuarios"`
}

// ConsolidarDadosPorSetor agrupa por setor as horas, os testes e os técnicos distintos.
// Testes entram no setor do apontamento a que pertencem.
func ConsolidarDadosPorSetor(apontamentos []storage.Apontamento, resultados []storage.ResultadoTeste) map[string]DadosSetor {
	type acumulador struct {
		dados    DadosSetor
		usuarios map[string]struct{}
	}

	setores := make(map[string]*acumulador)
	get := func(nome string) *acumulador {
		acc, ok := setores[nome]
		if !ok {
			acc = &acumulador{usuarios: make(map[string]struct{})}
			setores[nome] = acc
		}
		return acc
	}

	setorDoApontamento := make(map[int64]string, len(apontamentos))
	for _, a := range apontamentos {
		nome := NomeSetor(a)
		setorDoApontamento[a.ID] = nome

		acc := get(nome)
		acc.dados.HorasTotal += HorasApontamento(a)
		acc.dados.TotalApontamentos++
		if a.Tecnico != "" {
			acc.usuarios[a.Tecnico] = struct{}{}
		}
	}

	for _, d := range Desfechos(resultados) {
		nome, ok := setorDoApontamento[d.IDApontamento]
		if !ok {
			nome = SemSetor
		}
		get(nome).dados.TotalTestes++
	}

	result := make(map[string]DadosSetor, len(setores))
	for nome, acc := range setores {
		usuarios := make([]string, 0, len(acc.usuarios))
		for u := range acc.usuarios {
			usuarios = append(usuarios, u)
		}
		sort.Strings(usuarios)

		acc.dados.Usuarios = usuarios
		result[nome] = acc.dados
	}

	return result
}
