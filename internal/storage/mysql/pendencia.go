package mysql

import (
	"context"
	"fmt"

	"registro-os/internal/storage"
)

func (s *Storage) ListPendenciasByOS(ctx context.Context, idOS int64, status string) ([]storage.Pendencia, error) {
	const op = "storage.mysql.ListPendenciasByOS"

	query := `
		SELECT
			p.id,
			p.id_os,
			p.id_apontamento_origem,
			p.descricao_pendencia,
			p.status,
			p.data_inicio,
			p.data_fechamento,
			COALESCE(u.nome_completo, '')
		FROM pendencias p
		LEFT JOIN tipo_usuarios u ON u.id = p.id_responsavel_inicio
		WHERE p.id_os = ?`
	args := []interface{}{idOS}

	if status != "" {
		query += ` AND p.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY p.data_inicio`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: erro ao buscar pendências da os id=%d: %w", op, idOS, err)
	}
	defer rows.Close()

	pendencias := []storage.Pendencia{}
	for rows.Next() {
		var p storage.Pendencia

		err := rows.Scan(
			&p.ID,
			&p.IDOS,
			&p.IDApontamentoOrigem,
			&p.Descricao,
			&p.Status,
			&p.DataInicio,
			&p.DataFechamento,
			&p.Responsavel,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		pendencias = append(pendencias, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return pendencias, nil
}

func (s *Storage) CountPendenciasAbertas(ctx context.Context) (int, error) {
	const op = "storage.mysql.CountPendenciasAbertas"

	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pendencias WHERE status = ?`, storage.PendenciaAberta).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}
