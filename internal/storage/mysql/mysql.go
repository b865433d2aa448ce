package mysql

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"registro-os/internal/config"
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.DB) (*Storage, error) {
	const op = "storage.mysql.New"

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
