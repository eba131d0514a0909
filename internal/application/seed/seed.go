// Package seed cria o administrador padrão e as categorias iniciais. Pode ser executado várias vezes.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ti/internal/application/usecase"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
	"github.com/jhoicas/inventario-ti/pkg/logger"
)

// Credenciais do administrador padrão.
const (
	AdminEmail = "admin@cmoc.com"
	AdminSenha = "admin123"
)

// DefaultCategories categorias criadas na primeira execução.
var DefaultCategories = []entity.Category{
	{Nome: "Notebooks", Descricao: "Notebooks e laptops", Icone: "💻"},
	{Nome: "Desktops", Descricao: "Computadores de mesa", Icone: "🖥️"},
	{Nome: "Monitores", Descricao: "Monitores e displays", Icone: "🖥️"},
	{Nome: "Periféricos", Descricao: "Teclados, mouses, webcams", Icone: "⌨️"},
	{Nome: "Impressoras", Descricao: "Impressoras e multifuncionais", Icone: "🖨️"},
	{Nome: "Rede", Descricao: "Switches, roteadores, access points", Icone: "🌐"},
	{Nome: "Cabos", Descricao: "Cabos HDMI, USB, rede, energia", Icone: "🔌"},
	{Nome: "Componentes", Descricao: "RAM, HD, SSD, placas", Icone: "💾"},
	{Nome: "Licenças", Descricao: "Licenças de software", Icone: "🔑"},
	{Nome: "Acessórios", Descricao: "Diversos acessórios de TI", Icone: "🎧"},
}

// Result o que foi criado nesta execução.
type Result struct {
	AdminCreated      bool
	CategoriesCreated int
}

// Run cria o que ainda não existe; registros presentes (mesmo email ou nome) ficam intactos.
func Run(ctx context.Context, users repository.UserRepository, categories repository.CategoryRepository, log *logger.Logger) (Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("seed")
	var res Result
	now := time.Now().UTC()

	admin, err := users.GetByEmail(ctx, AdminEmail)
	if err != nil {
		return res, fmt.Errorf("seed: buscar admin: %w", err)
	}
	if admin == nil {
		hash, err := usecase.HashPassword(AdminSenha)
		if err != nil {
			return res, fmt.Errorf("seed: hash da senha: %w", err)
		}
		admin = &entity.User{
			ID:        uuid.New().String(),
			Nome:      "Administrador CMOC",
			Email:     AdminEmail,
			SenhaHash: hash,
			Cargo:     "Administrador de TI",
			Permissao: entity.RoleAdmin,
			Ativo:     true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := users.Create(ctx, admin); err != nil {
			return res, fmt.Errorf("seed: criar admin: %w", err)
		}
		res.AdminCreated = true
		log.Info().Str("email", AdminEmail).Msg("usuário admin criado")
	}

	for _, def := range DefaultCategories {
		existing, err := categories.GetByName(ctx, def.Nome)
		if err != nil {
			return res, fmt.Errorf("seed: buscar categoria %s: %w", def.Nome, err)
		}
		if existing != nil {
			continue
		}
		c := def
		c.ID = uuid.New().String()
		c.CreatedAt = now
		c.UpdatedAt = now
		if err := categories.Create(ctx, &c); err != nil {
			return res, fmt.Errorf("seed: criar categoria %s: %w", def.Nome, err)
		}
		res.CategoriesCreated++
	}
	log.Info().Int("categorias_criadas", res.CategoriesCreated).Msg("categorias padrão verificadas")
	return res, nil
}
