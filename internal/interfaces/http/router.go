package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	ProductUC  *usecase.ProductUseCase
	CartUC     *usecase.CartUseCase
	FavoriteUC *usecase.FavoriteUseCase
	PurchaseUC *usecase.PurchaseUseCase
	CheckoutUC *checkout.CheckoutUseCase
	TicketUC   *checkout.TicketUseCase

	LoginRateLimit int // intentos por minuto e IP; 0 desactiva
}

// Router registra las rutas de la API y, al final, el 404 JSON.
func Router(app *fiber.App, deps RouterDeps) {
	requireAuth := AuthMiddleware(deps.AuthUC)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Usuarios
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	users := app.Group("/users")
	users.Post("/register", OptionalAuth(deps.AuthUC), authHandler.Register)
	users.Post("/login", loginLimiter(deps.LoginRateLimit), authHandler.Login)
	users.Get("/", requireAuth, adminOnly, authHandler.List)

	// Catálogo (lectura pública, escritura admin)
	productHandler := NewProductHandler(deps.ProductUC)
	app.Get("/ofertas", productHandler.Offers)
	products := app.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", requireAuth, adminOnly, productHandler.Create)
	products.Put("/:id", requireAuth, adminOnly, productHandler.Update)
	products.Delete("/:id", requireAuth, adminOnly, productHandler.Delete)

	// Carrito
	cartHandler := NewCartHandler(deps.CartUC)
	cart := app.Group("/carrito", requireAuth)
	cart.Get("/", cartHandler.Get)
	cart.Post("/agregar", cartHandler.Add)
	cart.Put("/actualizar/:detalleId", cartHandler.Update)
	cart.Delete("/eliminar/:detalleId", cartHandler.Remove)
	cart.Delete("/vaciar", cartHandler.Clear)

	// Compras
	purchaseHandler := NewPurchaseHandler(deps.CheckoutUC, deps.PurchaseUC)
	purchases := app.Group("/compras", requireAuth)
	purchases.Post("/finalizar", purchaseHandler.Checkout)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)

	// Tickets (públicos)
	ticketHandler := NewTicketHandler(deps.TicketUC)
	tickets := app.Group("/ticket")
	tickets.Get("/compra/:idCompra", ticketHandler.GetByPurchase)
	tickets.Get("/:numero", ticketHandler.Download)

	// Favoritos
	favoriteHandler := NewFavoriteHandler(deps.FavoriteUC)
	favorites := app.Group("/favoritos", requireAuth)
	favorites.Get("/", favoriteHandler.List)
	favorites.Post("/agregar", favoriteHandler.Add)
	favorites.Delete("/eliminar/:idProducto", favoriteHandler.Remove)
	favorites.Get("/verificar/:idProducto", favoriteHandler.Check)
	favorites.Delete("/vaciar", favoriteHandler.Clear)

	app.Use(NotFound)
}

func loginLimiter(max int) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "TOO_MANY_REQUESTS", Message: "demasiados intentos de login, espere un minuto"})
		},
	})
}
