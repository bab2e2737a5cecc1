package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC       *usecase.WarehouseUseCase
	CategoryUC        *usecase.CategoryUseCase
	MeasurementUnitUC *usecase.MeasurementUnitUseCase
	SupplierUC        *usecase.SupplierUseCase
	ProductUC         *usecase.ProductUseCase
	UserUC            *usecase.UserUseCase
	StatisticsUC      *usecase.StatisticsUseCase
	Engine            *ledger.Engine
	AuthUC            *auth.AuthUseCase
	JWTSecret         string
}

// Router registra las rutas de la API.
//
// Política de roles: los catálogos se escriben con ADMIN o MANAGER; la
// administración de usuarios es solo ADMIN; las operaciones del libro y las
// lecturas las puede hacer cualquier usuario autenticado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	staffOnly := RequireRole(entity.RoleAdmin, entity.RoleManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", staffOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", staffOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", staffOnly, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", staffOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Measurement units
	units := protected.Group("/measurement-units")
	unitHandler := NewMeasurementUnitHandler(deps.MeasurementUnitUC)
	units.Post("/", staffOnly, unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Put("/:id", staffOnly, unitHandler.Update)
	units.Delete("/:id", adminOnly, unitHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", staffOnly, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", staffOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", staffOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", staffOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Users (solo ADMIN)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Transactions (motor de conciliación)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.Engine)
	transactions.Post("/income", transactionHandler.RecordIncome)
	transactions.Post("/sale", transactionHandler.RecordSale)
	transactions.Post("/:id/cancel", staffOnly, transactionHandler.Cancel)

	// Statistics
	statistics := protected.Group("/statistics")
	statisticsHandler := NewStatisticsHandler(deps.StatisticsUC)
	statistics.Get("/daily-income", statisticsHandler.DailyIncome)
	statistics.Get("/daily-income/pdf", statisticsHandler.DailyIncomePDF)
	statistics.Get("/daily-top-sales", statisticsHandler.DailyTopSales)
	statistics.Get("/expired-products", statisticsHandler.ExpiredProducts)
}
