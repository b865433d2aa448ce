package mysql

import (
	"context"
	"fmt"

	"registro-os/internal/storage"
)

func (s *Storage) ListApontamentosByOS(ctx context.Context, idOS int64) ([]storage.Apontamento, error) {
	const op = "storage.mysql.ListApontamentosByOS"

	// nome do setor vem sempre do join com tipo_setores, nunca de texto gravado no apontamento
	query := `
		SELECT
			a.id,
			a.id_os,
			a.id_usuario,
			COALESCE(u.nome_completo, ''),
			a.id_setor,
			COALESCE(s.nome, ''),
			a.data_hora_inicio,
			a.data_hora_fim,
			COALESCE(a.status_apontamento, ''),
			a.foi_retrabalho,
			a.observacao_os,
			a.etapa_inicial,
			a.horas_etapa_inicial,
			a.observacao_etapa_inicial,
			a.etapa_parcial,
			a.horas_etapa_parcial,
			a.observacao_etapa_parcial,
			a.etapa_final,
			a.horas_etapa_final,
			a.observacao_etapa_final
		FROM apontamentos_detalhados a
		LEFT JOIN tipo_usuarios u ON u.id = a.id_usuario
		LEFT JOIN tipo_setores s ON s.id = a.id_setor
		WHERE a.id_os = ?
		ORDER BY a.data_hora_inicio, a.id`

	rows, err := s.db.QueryContext(ctx, query, idOS)
	if err != nil {
		return nil, fmt.Errorf("%s: erro ao buscar apontamentos da os id=%d: %w", op, idOS, err)
	}
	defer rows.Close()

	apontamentos := []storage.Apontamento{}
	for rows.Next() {
		var a storage.Apontamento

		err := rows.Scan(
			&a.ID,
			&a.IDOS,
			&a.IDUsuario,
			&a.Tecnico,
			&a.IDSetor,
			&a.Setor,
			&a.DataHoraInicio,
			&a.DataHoraFim,
			&a.Status,
			&a.FoiRetrabalho,
			&a.Observacao,
			&a.EtapaInicial.Marcada,
			&a.EtapaInicial.Horas,
			&a.EtapaInicial.Observacao,
			&a.EtapaParcial.Marcada,
			&a.EtapaParcial.Horas,
			&a.EtapaParcial.Observacao,
			&a.EtapaFinal.Marcada,
			&a.EtapaFinal.Horas,
			&a.EtapaFinal.Observacao,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		apontamentos = append(apontamentos, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return apontamentos, nil
}

// SumHorasPorSetor soma as horas fechadas de todos os apontamentos, agrupadas pelo setor.
// TIMESTAMPDIFF(HOUR, ...) trunca igual ao cálculo do relatório.
func (s *Storage) SumHorasPorSetor(ctx context.Context) (map[string]float64, error) {
	const op = "storage.mysql.SumHorasPorSetor"

	query := `
		SELECT COALESCE(s.nome, ''), COALESCE(SUM(TIMESTAMPDIFF(HOUR, a.data_hora_inicio, a.data_hora_fim)), 0)
		FROM apontamentos_detalhados a
		LEFT JOIN tipo_setores s ON s.id = a.id_setor
		WHERE a.data_hora_fim IS NOT NULL
		GROUP BY s.nome`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make(map[string]float64)
	for rows.Next() {
		var setor string
		var horas float64
		if err := rows.Scan(&setor, &horas); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		result[setor] += horas
	}

	return result, rows.Err()
}
