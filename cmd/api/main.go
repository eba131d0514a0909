package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/inventario-ti/internal/application/analytics"
	"github.com/jhoicas/inventario-ti/internal/application/auth"
	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/application/inventory"
	"github.com/jhoicas/inventario-ti/internal/application/report"
	"github.com/jhoicas/inventario-ti/internal/application/seed"
	"github.com/jhoicas/inventario-ti/internal/application/usecase"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
	infraexcel "github.com/jhoicas/inventario-ti/internal/infrastructure/excel"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventario-ti/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventario-ti/internal/interfaces/http"
	"github.com/jhoicas/inventario-ti/pkg/config"
	"github.com/jhoicas/inventario-ti/pkg/logger"
)

// backend repositórios, runner de transação e indicadores do driver escolhido.
type backend struct {
	repos inventory.Repos
	tx    inventory.TxRunner
	stats repository.StatsRepository
	close func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.App.StorageDriver == config.StorageDriverMemory {
		store := memory.New()
		repos := store.Repos()
		// Sem banco não há cmd/seed: o admin e as categorias padrão são criados aqui.
		if _, err := seed.Run(ctx, repos.Users, repos.Categories, log); err != nil {
			return nil, err
		}
		log.Warn().Msg("armazenamento em memória: os dados serão perdidos ao encerrar")
		return &backend{repos: repos, tx: memory.NewTxRunner(store), stats: store.Stats(), close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migrações aplicadas")
	}
	return &backend{
		repos: postgres.NewRepos(pool),
		tx:    postgres.NewTxRunner(pool),
		stats: postgres.NewStatsRepository(pool),
		close: pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicação")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("storage", cfg.App.StorageDriver).Msg("inicializar armazenamento")
	}
	defer be.close()

	attachments, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxBytes())
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("diretório de uploads")
	}

	var m *metrics.Metrics
	engine := inventory.NewEngine(be.tx, be.repos, log)
	if cfg.Metrics.Enabled {
		m = metrics.New("inventario")
		engine.WithObserver(m)
	}

	authUC := auth.NewAuthUseCase(be.repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(be.repos.Users)
	categoryUC := usecase.NewCategoryUseCase(be.repos.Categories)
	itemUC := usecase.NewItemUseCase(be.repos.Items, be.repos.Categories, engine, attachments).WithLogger(log)
	dashboardUC := appanalytics.NewDashboardUseCase(be.stats, cfg.Dashboard.Days)
	reportUC := report.NewReportUseCase(itemUC, engine, infraexcel.NewWorkbookExporter(), infrapdf.NewExitReceiptGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Upload.MaxBytes())*httpRouter.MaxDefectPhotos + 1<<20,
		ErrorHandler: httpRouter.NewErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	var obs httpRouter.RequestObserver
	if m != nil {
		obs = m
	}
	app.Use(httpRouter.RequestLogger(log, obs))

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventário TI API",
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Storage: cfg.App.StorageDriver, Timestamp: time.Now().UTC()})
	})
	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}
	app.Static(storage.PublicPrefix, attachments.Dir())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		CategoryUC:  categoryUC,
		ItemUC:      itemUC,
		Engine:      engine,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		Attachments: attachments,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
