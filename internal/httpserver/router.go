package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cartsvc "electroshop/internal/service/cart"
	ordersvc "electroshop/internal/service/order"
	productsvc "electroshop/internal/service/product"
)

// Deps carries the services and repositories the router needs.
type Deps struct {
	Sessions   sessionRepo
	CartSvc    *cartsvc.Service
	OrderSvc   *ordersvc.Service
	ProductSvc *productsvc.Service
	AddressSvc addressRepo
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api", authMiddleware(deps.Sessions))
	{
		api.POST("/carts/products/:productId/quantity/:quantity", addProductToCart(deps.CartSvc))
		api.GET("/carts/users/cart", getUserCart(deps.CartSvc))
		api.PUT("/cart/products/:productId/quantity/:operation", updateCartProduct(deps.CartSvc))
		api.DELETE("/carts/:cartId/product/:productId", deleteCartProduct(deps.CartSvc))

		api.POST("/order/users/payments/:paymentMethod", createOrder(deps.OrderSvc))
		api.GET("/user/orders", getUserOrders(deps.OrderSvc))

		api.GET("/addresses", getUserAddresses(deps.AddressSvc))
		api.GET("/products", listProducts(deps.ProductSvc))

		admin := api.Group("", requireAdmin())
		{
			admin.GET("/carts", getAllCarts(deps.CartSvc))
			admin.GET("/admin/orders", getAllOrders(deps.OrderSvc))
			admin.PUT("/admin/orders/:orderId/status", updateOrderStatus(deps.OrderSvc))
			admin.PUT("/admin/products/:productId/pricing", updateProductPricing(deps.ProductSvc))
		}
	}

	return router
}
