package storage

import "errors"

var (
	ErrNotFound           = errors.New("registro não encontrado")
	ErrInvalidCredentials = errors.New("usuário ou senha inválidos")
)
