package storage

type Usuario struct {
	ID             int64  `json:"id"`
	Nome           string `json:"nome_completo"`
	Email          string `json:"email"`
	SenhaHash      string `json:"-"`
	PrivilegeLevel string `json:"privilege_level"`
	IDSetor        *int64 `json:"id_setor"`
	Setor          string `json:"setor"`
	Ativo          bool   `json:"is_approved"`
}
