package mysql

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// InitSchema cria as tabelas que ainda não existem. Pode rodar em todo boot.
func (s *Storage) InitSchema(ctx context.Context) error {
	const op = "storage.mysql.InitSchema"

	for i, stmt := range schemaStatements(schemaSQL) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: statement %d: %w", op, i, err)
		}
	}

	return nil
}

func schemaStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		stmts = append(stmts, part)
	}
	return stmts
}
