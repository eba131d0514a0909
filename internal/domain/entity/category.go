package entity

import "time"

// Category agrupa itens (Notebooks, Monitores, Licenças...).
type Category struct {
	ID         string
	Nome       string // único
	Descricao  string
	Icone      string
	TotalItens int // projeção: quantidade de itens na categoria
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
