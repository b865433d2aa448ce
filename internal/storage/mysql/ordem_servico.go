package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"registro-os/internal/storage"
)

const selectOS = `
	SELECT
		os.id,
		os.os_numero,
		os.status_os,
		COALESCE(os.prioridade, ''),
		COALESCE(os.descricao_maquina, ''),
		COALESCE(os.horas_orcadas, 0),
		os.id_cliente,
		COALESCE(c.razao_social, ''),
		os.id_equipamento,
		COALESCE(e.descricao, ''),
		os.id_setor,
		COALESCE(s.nome, ''),
		os.id_departamento,
		COALESCE(d.nome_tipo, ''),
		os.data_criacao,
		os.data_ultima_atualizacao
	FROM ordens_servico os
	LEFT JOIN clientes c ON c.id = os.id_cliente
	LEFT JOIN equipamentos e ON e.id = os.id_equipamento
	LEFT JOIN tipo_setores s ON s.id = os.id_setor
	LEFT JOIN tipo_departamentos d ON d.id = os.id_departamento`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOS(row rowScanner, o *storage.OrdemServico) error {
	return row.Scan(
		&o.ID,
		&o.Numero,
		&o.Status,
		&o.Prioridade,
		&o.Descricao,
		&o.HorasOrcadas,
		&o.IDCliente,
		&o.Cliente,
		&o.IDEquipamento,
		&o.Equipamento,
		&o.IDSetor,
		&o.Setor,
		&o.IDDepartamento,
		&o.Departamento,
		&o.DataCriacao,
		&o.DataUltimaAtualizacao,
	)
}

func (s *Storage) GetOSByNumero(ctx context.Context, numero string) (*storage.OrdemServico, error) {
	const op = "storage.mysql.GetOSByNumero"

	var o storage.OrdemServico
	err := scanOS(s.db.QueryRowContext(ctx, selectOS+` WHERE os.os_numero = ?`, numero), &o)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: os %s: %w", op, numero, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: erro ao buscar os %s: %w", op, numero, err)
	}

	return &o, nil
}

func (s *Storage) ListOS(ctx context.Context, f storage.FiltroOS) (*storage.ListaOS, error) {
	const op = "storage.mysql.ListOS"

	var conditions []string
	var args []interface{}

	if f.Status != "" {
		conditions = append(conditions, "os.status_os = ?")
		args = append(args, f.Status)
	}
	if f.IDSetor != 0 {
		conditions = append(conditions, "os.id_setor = ?")
		args = append(args, f.IDSetor)
	}
	if f.Search != "" {
		conditions = append(conditions, "(os.os_numero LIKE ? OR c.razao_social LIKE ?)")
		args = append(args, "%"+f.Search+"%", "%"+f.Search+"%")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countStmt := `SELECT COUNT(*) FROM ordens_servico os LEFT JOIN clientes c ON c.id = os.id_cliente` + where
	if err := s.db.QueryRowContext(ctx, countStmt, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	stmt := selectOS + where + ` ORDER BY os.data_criacao DESC LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, stmt, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	lista := &storage.ListaOS{Itens: []storage.OrdemServico{}, Total: total}
	for rows.Next() {
		var o storage.OrdemServico
		if err := scanOS(rows, &o); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		lista.Itens = append(lista.Itens, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return lista, nil
}

func (s *Storage) CountOSByStatus(ctx context.Context) (map[string]int, error) {
	const op = "storage.mysql.CountOSByStatus"

	rows, err := s.db.QueryContext(ctx, `SELECT status_os, COUNT(*) FROM ordens_servico GROUP BY status_os`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		result[status] = count
	}

	return result, rows.Err()
}
