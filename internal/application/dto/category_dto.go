package dto

import "time"

// CreateCategoryRequest entrada para criar uma categoria.
type CreateCategoryRequest struct {
	Nome      string `json:"nome" validate:"required,min=1,max=100"`
	Descricao string `json:"descricao" validate:"max=500"`
	Icone     string `json:"icone" validate:"max=50"`
}

// UpdateCategoryRequest entrada para atualizar uma categoria.
type UpdateCategoryRequest struct {
	Nome      *string `json:"nome" validate:"omitempty,min=1,max=100"`
	Descricao *string `json:"descricao" validate:"omitempty,max=500"`
	Icone     *string `json:"icone" validate:"omitempty,max=50"`
}

// CategoryResponse saída de uma categoria.
type CategoryResponse struct {
	ID         string    `json:"id"`
	Nome       string    `json:"nome"`
	Descricao  string    `json:"descricao"`
	Icone      string    `json:"icone"`
	TotalItens int       `json:"totalItens"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
