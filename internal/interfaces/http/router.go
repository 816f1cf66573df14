package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/catalog"
	"github.com/jhoicas/pos-backoffice/internal/application/orders"
	"github.com/jhoicas/pos-backoffice/internal/application/users"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC    *orders.OrderUseCase
	ProductUC  *catalog.ProductUseCase
	CategoryUC *catalog.CategoryUseCase
	ServiceUC  *catalog.ServiceUseCase
	ShopUC     *catalog.ShopUseCase
	UserUC     *users.UserUseCase
	IdemStore  orders.IdempotencyStore // nil deshabilita Idempotency-Key
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Orders (motor de órdenes)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.IdemStore)
	ordersGroup.Post("/", RequirePermission(PermOrdersCreate), orderHandler.Create)
	ordersGroup.Get("/", RequirePermission(PermOrdersView), orderHandler.List)
	ordersGroup.Get("/:id", RequirePermission(PermOrdersView), orderHandler.GetByID)
	ordersGroup.Post("/:id/cancel", RequirePermission(PermOrdersUpdate), orderHandler.Cancel)

	// Products (catálogo)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequirePermission(PermCatalogManage), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequirePermission(PermCatalogManage), productHandler.Update)
	products.Delete("/:id", RequirePermission(PermCatalogManage), productHandler.Delete)

	// Categories (catálogo)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", RequirePermission(PermCatalogManage), categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Delete("/:id", RequirePermission(PermCatalogManage), categoryHandler.Delete)

	// Services (catálogo, sin stock)
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services.Post("/", RequirePermission(PermCatalogManage), serviceHandler.Create)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Delete("/:id", RequirePermission(PermCatalogManage), serviceHandler.Delete)

	// Shops (solo admin)
	shops := protected.Group("/shops", RequirePermission(PermShopsManage))
	shopHandler := NewShopHandler(deps.ShopUC)
	shops.Post("/", shopHandler.Create)
	shops.Get("/", shopHandler.List)
	shops.Get("/:id", shopHandler.GetByID)

	// Users (solo admin)
	usersGroup := protected.Group("/users", RequirePermission(PermUsersManage))
	userHandler := NewUserHandler(deps.UserUC)
	usersGroup.Post("/", userHandler.Create)
	usersGroup.Get("/", userHandler.List)
	usersGroup.Get("/:id", userHandler.GetByID)
}
