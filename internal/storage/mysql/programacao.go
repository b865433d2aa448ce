package mysql

import (
	"context"
	"fmt"
	"strings"

	"registro-os/internal/storage"
)

const selectProgramacao = `
	SELECT
		p.id,
		p.id_os,
		os.os_numero,
		p.responsavel_id,
		COALESCE(u.nome_completo, ''),
		p.id_setor,
		COALESCE(s.nome, ''),
		p.inicio_previsto,
		p.fim_previsto,
		p.status,
		p.observacoes
	FROM programacoes p
	JOIN ordens_servico os ON os.id = p.id_os
	LEFT JOIN tipo_usuarios u ON u.id = p.responsavel_id
	LEFT JOIN tipo_setores s ON s.id = p.id_setor`

func (s *Storage) ListProgramacoesByOS(ctx context.Context, idOS int64) ([]storage.Programacao, error) {
	const op = "storage.mysql.ListProgramacoesByOS"

	programacoes, err := s.queryProgramacoes(ctx, selectProgramacao+` WHERE p.id_os = ? ORDER BY p.inicio_previsto`, idOS)
	if err != nil {
		return nil, fmt.Errorf("%s: os id=%d: %w", op, idOS, err)
	}

	return programacoes, nil
}

// ListProgramacoes devolve as programações do PCP que cruzam a janela [Inicio, Fim).
func (s *Storage) ListProgramacoes(ctx context.Context, f storage.FiltroProgramacao) ([]storage.Programacao, error) {
	const op = "storage.mysql.ListProgramacoes"

	var conditions []string
	var args []interface{}

	if !f.Inicio.IsZero() {
		conditions = append(conditions, "p.fim_previsto >= ?")
		args = append(args, f.Inicio)
	}
	if !f.Fim.IsZero() {
		conditions = append(conditions, "p.inicio_previsto < ?")
		args = append(args, f.Fim)
	}
	if f.Status != "" {
		conditions = append(conditions, "p.status = ?")
		args = append(args, f.Status)
	}
	if f.IDSetor != 0 {
		conditions = append(conditions, "p.id_setor = ?")
		args = append(args, f.IDSetor)
	}

	query := selectProgramacao
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.inicio_previsto"

	programacoes, err := s.queryProgramacoes(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return programacoes, nil
}

func (s *Storage) queryProgramacoes(ctx context.Context, query string, args ...interface{}) ([]storage.Programacao, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programacoes := []storage.Programacao{}
	for rows.Next() {
		var p storage.Programacao

		err := rows.Scan(
			&p.ID,
			&p.IDOS,
			&p.NumeroOS,
			&p.ResponsavelID,
			&p.Responsavel,
			&p.IDSetor,
			&p.Setor,
			&p.InicioPrevisto,
			&p.FimPrevisto,
			&p.Status,
			&p.Observacoes,
		)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		programacoes = append(programacoes, p)
	}

	return programacoes, rows.Err()
}
