// seed cria o usuário administrador padrão e as categorias iniciais no PostgreSQL.
//
// Uso: go run ./cmd/seed
// Lê a mesma configuração da API (DATABASE_URL ou DB_*). Aplica as migrações antes, se DB_AUTO_MIGRATE.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/inventario-ti/internal/application/seed"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ti/pkg/config"
	"github.com/jhoicas/inventario-ti/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.App.StorageDriver == config.StorageDriverMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: a API já cria os dados padrão ao iniciar; nada a fazer")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexão a PostgreSQL")
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Error().Err(err).Msg("migrações")
			os.Exit(1)
		}
	}

	repos := postgres.NewRepos(pool)
	res, err := seed.Run(ctx, repos.Users, repos.Categories, log)
	if err != nil {
		log.Error().Err(err).Msg("seed falhou")
		os.Exit(1)
	}
	log.Info().
		Bool("admin_criado", res.AdminCreated).
		Int("categorias_criadas", res.CategoriesCreated).
		Str("login", seed.AdminEmail).
		Msg("seed concluído")
}
