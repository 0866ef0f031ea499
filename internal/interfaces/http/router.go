package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/report"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC  *usecase.CompanyUseCase
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	SaleUC     *sales.SaleUseCase
	ReportUC   *report.ReportUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: alta pública (onboarding); el resto protegido
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Get("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), companyHandler.List)
	companies.Put("/:id", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), companyHandler.Update)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products: lectura para todos, escritura para admin/gerente
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGerente), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleGerente), productHandler.Update)
	products.Post("/:id/stock", RequireRole(entity.RoleAdmin, entity.RoleGerente), productHandler.AdjustStock)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Sales: cualquier rol registra; anular requiere admin/gerente
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/void", RequireRole(entity.RoleAdmin, entity.RoleGerente), saleHandler.Void)

	// Reports: solo admin/gerente exportan
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/export", RequireRole(entity.RoleAdmin, entity.RoleGerente), reportHandler.Export)
}
