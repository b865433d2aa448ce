package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"registro-os/internal/storage"
)

func (s *Storage) ListResultadosByOS(ctx context.Context, idOS int64) ([]storage.ResultadoTeste, error) {
	const op = "storage.mysql.ListResultadosByOS"

	query := `
		SELECT
			r.id,
			r.id_apontamento,
			r.id_teste,
			COALESCE(t.nome, ''),
			r.formato,
			COALESCE(r.resultado, ''),
			r.observacao,
			r.subresultados,
			r.data_registro
		FROM resultados_teste r
		JOIN apontamentos_detalhados a ON a.id = r.id_apontamento
		LEFT JOIN tipos_teste t ON t.id = r.id_teste
		WHERE a.id_os = ?
		ORDER BY r.id`

	rows, err := s.db.QueryContext(ctx, query, idOS)
	if err != nil {
		return nil, fmt.Errorf("%s: erro ao buscar resultados da os id=%d: %w", op, idOS, err)
	}
	defer rows.Close()

	resultados := []storage.ResultadoTeste{}
	for rows.Next() {
		var r storage.ResultadoTeste
		var sub sql.NullString

		err := rows.Scan(
			&r.ID,
			&r.IDApontamento,
			&r.IDTeste,
			&r.NomeTeste,
			&r.Formato,
			&r.Resultado,
			&r.Observacao,
			&sub,
			&r.DataRegistro,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		if err := decodeSubresultados(&r, sub); err != nil {
			return nil, fmt.Errorf("%s: resultado id=%d: %w", op, r.ID, err)
		}

		resultados = append(resultados, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return resultados, nil
}

// CountResultadosSimples conta no banco os testes de resultado único. Inclui ESTRUTURADO sem subtestes,
// que vale pelo próprio resultado.
func (s *Storage) CountResultadosSimples(ctx context.Context) (total, aprovados int, err error) {
	const op = "storage.mysql.CountResultadosSimples"

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(UPPER(TRIM(COALESCE(resultado, ''))) = ?), 0)
		FROM resultados_teste
		WHERE formato <> ? OR subresultados IS NULL OR JSON_LENGTH(subresultados) = 0`

	err = s.db.QueryRowContext(ctx, query, storage.ResultadoAprovado, storage.FormatoEstruturado).Scan(&total, &aprovados)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, aprovados, nil
}

// ListResultadosEstruturados traz só as linhas com subtestes, que precisam ser expandidas em Go.
func (s *Storage) ListResultadosEstruturados(ctx context.Context) ([]storage.ResultadoTeste, error) {
	const op = "storage.mysql.ListResultadosEstruturados"

	query := `
		SELECT id, formato, COALESCE(resultado, ''), subresultados
		FROM resultados_teste
		WHERE formato = ? AND JSON_LENGTH(subresultados) > 0`

	rows, err := s.db.QueryContext(ctx, query, storage.FormatoEstruturado)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	resultados := []storage.ResultadoTeste{}
	for rows.Next() {
		var r storage.ResultadoTeste
		var sub sql.NullString

		if err := rows.Scan(&r.ID, &r.Formato, &r.Resultado, &sub); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if err := decodeSubresultados(&r, sub); err != nil {
			return nil, fmt.Errorf("%s: resultado id=%d: %w", op, r.ID, err)
		}

		resultados = append(resultados, r)
	}

	return resultados, rows.Err()
}

func decodeSubresultados(r *storage.ResultadoTeste, raw sql.NullString) error {
	if r.Formato != storage.FormatoEstruturado {
		return nil
	}
	if !raw.Valid || raw.String == "" {
		r.Subresultados = []storage.Subresultado{}
		return nil
	}

	if err := json.Unmarshal([]byte(raw.String), &r.Subresultados); err != nil {
		return fmt.Errorf("subresultados inválidos: %w", err)
	}

	return nil
}
