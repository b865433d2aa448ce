package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"registro-os/internal/storage"
)

func (s *Storage) GetUsuarioByEmail(ctx context.Context, email string) (*storage.Usuario, error) {
	const op = "storage.mysql.GetUsuarioByEmail"

	query := `
		SELECT u.id, u.nome_completo, u.email, u.senha_hash, u.privilege_level, u.id_setor, COALESCE(s.nome, ''), u.is_approved
		FROM tipo_usuarios u
		LEFT JOIN tipo_setores s ON s.id = u.id_setor
		WHERE u.email = ?`

	var u storage.Usuario
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID,
		&u.Nome,
		&u.Email,
		&u.SenhaHash,
		&u.PrivilegeLevel,
		&u.IDSetor,
		&u.Setor,
		&u.Ativo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &u, nil
}
