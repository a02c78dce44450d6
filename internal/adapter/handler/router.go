package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acruxa/storefront/internal/port"
)

// Router wires every handler into a gin engine. Catalog routes are public;
// everything else requires a session, and the backoffice additionally
// requires the admin role.
func Router(sessions port.SessionStore, catalog *CatalogHandler, cart *CartHandler,
	chk *CheckoutHandler, orders *OrderHandler, profile *ProfileHandler, admin *AdminHandler) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/products", catalog.ListProducts)
	api.GET("/products/featured", catalog.FeaturedProducts)
	api.GET("/products/:slug", catalog.GetProduct)
	api.GET("/categories", catalog.ListCategories)

	authed := api.Group("", RequireSession(sessions))
	{
		authed.GET("/cart", cart.GetCart)
		authed.POST("/cart/items", cart.AddItem)
		authed.PUT("/cart/items/:itemId", cart.UpdateItem)
		authed.DELETE("/cart/items/:itemId", cart.RemoveItem)
		authed.DELETE("/cart", cart.ClearCart)

		authed.GET("/checkout", chk.GetState)
		authed.POST("/checkout/address", chk.SelectAddress)
		authed.POST("/checkout/payment", chk.SelectPayment)
		authed.POST("/checkout/next", chk.Next)
		authed.POST("/checkout/back", chk.Back)
		authed.DELETE("/checkout", chk.Abandon)
		authed.POST("/checkout/place", chk.PlaceOrder)

		authed.GET("/orders", orders.ListOrders)
		authed.GET("/orders/:orderNumber", orders.GetOrder)

		authed.GET("/addresses", profile.ListAddresses)
		authed.POST("/addresses", profile.CreateAddress)
		authed.PUT("/addresses/:id", profile.UpdateAddress)
		authed.DELETE("/addresses/:id", profile.DeleteAddress)
		authed.POST("/addresses/:id/default", profile.SetDefaultAddress)

		authed.GET("/payment-methods", profile.ListPaymentMethods)
		authed.POST("/payment-methods", profile.CreatePaymentMethod)
		authed.DELETE("/payment-methods/:id", profile.DeletePaymentMethod)
		authed.POST("/payment-methods/:id/default", profile.SetDefaultPaymentMethod)
	}

	backoffice := api.Group("/admin", RequireSession(sessions), RequireAdmin())
	{
		backoffice.GET("/orders", admin.ListOrders)
		backoffice.GET("/orders/:id", admin.GetOrder)
		backoffice.PUT("/orders/:id/status", admin.UpdateOrderStatus)
		backoffice.PUT("/orders/:id/payment-status", admin.UpdatePaymentStatus)
		backoffice.PUT("/orders/:id/tracking", admin.SetTracking)

		backoffice.GET("/products", admin.ListProducts)
		backoffice.POST("/products", admin.CreateProduct)
		backoffice.GET("/products/:id", admin.GetProduct)
		backoffice.PUT("/products/:id", admin.UpdateProduct)
		backoffice.PUT("/products/:id/status", admin.SetProductStatus)
		backoffice.DELETE("/products/:id", admin.DeleteProduct)
	}

	return r
}
