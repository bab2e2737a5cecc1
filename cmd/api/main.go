package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/application/notifier"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/bodega-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bodega-api/internal/infrastructure/telegram"
	httpRouter "github.com/jhoicas/bodega-api/internal/interfaces/http"
	"github.com/jhoicas/bodega-api/pkg/config"
	"github.com/jhoicas/bodega-api/pkg/logger"
	"github.com/jhoicas/bodega-api/pkg/numgen"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos atados al pool (lecturas y catálogos); el motor usa los suyos
	// atados a la tx vía TxRunner.
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewMeasurementUnitRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	statsRepo := postgres.NewStatisticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := ledger.NewEngine(
		txRunner, warehouseRepo, supplierRepo, productRepo,
		numgen.Generate, postgres.IsUniqueViolation,
	)

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	unitUC := usecase.NewMeasurementUnitUseCase(unitRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, unitRepo,
		numgen.Generate, postgres.IsUniqueViolation)
	userUC := usecase.NewUserUseCase(userRepo, warehouseRepo)

	pdfGenerator := infrapdf.NewDailyIncomePDFGenerator()
	statisticsUC := usecase.NewStatisticsUseCase(statsRepo, warehouseRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, warehouseRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, numgen.Generate, postgres.IsUniqueViolation)

	// Notificador de vencimientos: deshabilitado sin token de Telegram.
	if cfg.Telegram.BotToken != "" {
		messenger := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		expiryNotifier := notifier.New(statsRepo, messenger, log.Component("notifier"),
			cfg.Notifier.Interval, cfg.Notifier.WarningDays)
		expiryNotifier.Start(ctx)
		log.Info().
			Dur("interval", cfg.Notifier.Interval).
			Int("warning_days", cfg.Notifier.WarningDays).
			Msg("notificador de vencimientos iniciado")
	} else {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN vacío: notificador de vencimientos deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC:       warehouseUC,
		CategoryUC:        categoryUC,
		MeasurementUnitUC: unitUC,
		SupplierUC:        supplierUC,
		ProductUC:         productUC,
		UserUC:            userUC,
		StatisticsUC:      statisticsUC,
		Engine:            engine,
		AuthUC:            authUC,
		JWTSecret:         cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop() // detiene el notificador

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
