package mysql

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registro-os/internal/storage"
)

func TestStorage_GetUsuarioByEmail(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tipo_usuarios u")).
		WithArgs("ana@empresa.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome_completo", "email", "senha_hash", "privilege_level", "id_setor", "nome", "is_approved"}).
			AddRow(int64(5), "Ana Souza", "ana@empresa.com", "$2a$10$hash", "SUPERVISOR", int64(2), "MECANICA", true))

	u, err := s.GetUsuarioByEmail(context.Background(), "ana@empresa.com")
	require.NoError(t, err)
	assert.Equal(t, "SUPERVISOR", u.PrivilegeLevel)
	assert.Equal(t, "$2a$10$hash", u.SenhaHash)
	assert.True(t, u.Ativo)
}

func TestStorage_GetUsuarioByEmail_NotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tipo_usuarios u")).
		WithArgs("x@empresa.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetUsuarioByEmail(context.Background(), "x@empresa.com")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}
