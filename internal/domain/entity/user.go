package entity

import "time"

// Permissões válidas para User.
const (
	RoleAdmin        = "admin"
	RoleGestor       = "gestor"
	RoleOperador     = "operador"
	RoleVisualizador = "visualizador"
)

// IsValidRole indica se role é uma das quatro permissões conhecidas.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleGestor, RoleOperador, RoleVisualizador:
		return true
	}
	return false
}

// User representa um usuário do sistema.
type User struct {
	ID        string
	Nome      string
	Email     string
	SenhaHash string // bcrypt; nunca em texto plano depois de persistido
	Cargo     string
	Permissao string
	Ativo     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserSummary projeção pública de um usuário nas movimentações.
type UserSummary struct {
	ID    string
	Nome  string
	Email string
}

// Summary devolve a projeção pública do usuário.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Nome: u.Nome, Email: u.Email}
}
