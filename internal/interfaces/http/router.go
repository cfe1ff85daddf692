package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Requisiciones-api/internal/application/auth"
	"github.com/jhoicas/Requisiciones-api/internal/application/inventory"
	"github.com/jhoicas/Requisiciones-api/internal/application/requisition"
	"github.com/jhoicas/Requisiciones-api/internal/application/transfer"
	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
	"github.com/jhoicas/Requisiciones-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	InventoryUC   *inventory.InventoryUseCase
	RequisitionUC *requisition.RequisitionUseCase
	PackageUC     *requisition.PackageUseCase
	PDFUC         *requisition.PDFUseCase
	TransferUC    *transfer.TransferUseCase
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API. Las lecturas requieren sesión; las
// mutaciones de stock y las resoluciones requieren además rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	// Items (lectura autenticada, escritura admin)
	items := protected.Group("/items")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Log)
	items.Get("/", inventoryHandler.ListItems)
	items.Get("/:id", inventoryHandler.GetItem)
	items.Post("/", admin, inventoryHandler.CreateItem)
	items.Put("/:id/quantity", admin, inventoryHandler.SetQuantity)
	items.Delete("/:id", admin, inventoryHandler.DeleteItem)

	// Movements (solo admin)
	movements := protected.Group("/movements", admin)
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Post("/", inventoryHandler.RegisterMovement)

	// Requisitions (crear/consultar autenticado, resolver admin)
	requisitions := protected.Group("/requisitions")
	requisitionHandler := NewRequisitionHandler(deps.RequisitionUC, deps.PDFUC, deps.Log)
	requisitions.Post("/", requisitionHandler.Submit)
	requisitions.Get("/user/:userId", requisitionHandler.ListByUser)
	requisitions.Get("/pending", admin, requisitionHandler.Pending)
	requisitions.Get("/:id", requisitionHandler.GetByID)
	requisitions.Get("/:id/pdf", requisitionHandler.Voucher)
	requisitions.Post("/:id/approve", admin, requisitionHandler.Approve)
	requisitions.Post("/:id/reject", admin, requisitionHandler.Reject)

	// Packages (crear/consultar autenticado, resolver admin)
	packages := protected.Group("/packages")
	packageHandler := NewPackageHandler(deps.PackageUC, deps.Log)
	packages.Post("/", packageHandler.Submit)
	packages.Get("/user/:userId", packageHandler.ListByUser)
	packages.Get("/pending", admin, packageHandler.Pending)
	packages.Get("/:id", packageHandler.GetByID)
	packages.Get("/:id/items", packageHandler.Items)
	packages.Post("/:id/approve-all", admin, packageHandler.ApproveAll)
	packages.Post("/:id/reject-all", admin, packageHandler.RejectAll)
	packages.Post("/:id/items/:itemId/approve", admin, packageHandler.ApproveItem)
	packages.Post("/:id/items/:itemId/reject", admin, packageHandler.RejectItem)

	// Transfer (solo admin)
	transferGroup := protected.Group("/transfer", admin)
	transferHandler := NewTransferHandler(deps.TransferUC, deps.Log)
	transferGroup.Get("/export", transferHandler.Export)
	transferGroup.Post("/import", transferHandler.Import)
}
