package dto

import "time"

// CreateUserRequest entrada para criar um usuário (senha em texto, o caso de uso gera o hash).
type CreateUserRequest struct {
	Nome      string `json:"nome" validate:"required,min=1,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Senha     string `json:"senha" validate:"required,min=6"`
	Cargo     string `json:"cargo" validate:"max=100"`
	Permissao string `json:"permissao" validate:"required,oneof=admin gestor operador visualizador"`
	Ativo     *bool  `json:"ativo"`
}

// UpdateUserRequest entrada para atualizar um usuário. Senha vazia mantém a atual.
type UpdateUserRequest struct {
	Nome      *string `json:"nome" validate:"omitempty,min=1,max=200"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Senha     *string `json:"senha" validate:"omitempty,min=6"`
	Cargo     *string `json:"cargo" validate:"omitempty,max=100"`
	Permissao *string `json:"permissao" validate:"omitempty,oneof=admin gestor operador visualizador"`
	Ativo     *bool   `json:"ativo"`
}

// UserResponse saída de um usuário (sem senha).
type UserResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Cargo     string    `json:"cargo"`
	Permissao string    `json:"permissao"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary usuário aninhado em movimentações.
type UserSummary struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// LoginResponse token JWT e usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
