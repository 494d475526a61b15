package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/controllers"
	"storefront/middleware"
)

// Controllers groups everything the router mounts.
type Controllers struct {
	Checkout *controllers.CheckoutController
	Cart     *controllers.CartController
	Orders   *controllers.OrderController
	Loyalty  *controllers.LoyaltyController
}

// Register mounts all storefront routes. Checkout and cart accept
// guests; loyalty and order history need an account; status actions
// are staff-only.
func Register(r *gin.Engine, ctl Controllers, jwtSecret string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// public tracking: the ticket is the credential
	r.GET("/track/:ticket", ctl.Orders.Track)

	guest := r.Group("/", middleware.OptionalAuth(jwtSecret))
	{
		guest.GET("/cart", ctl.Cart.Get)
		guest.POST("/cart/items", ctl.Cart.AddLine)
		guest.PATCH("/cart/items/:index", ctl.Cart.UpdateLine)
		guest.DELETE("/cart/items/:index", ctl.Cart.RemoveLine)
		guest.DELETE("/cart", ctl.Cart.Clear)

		guest.POST("/checkout/validate", ctl.Checkout.Validate)
		guest.POST("/checkout/calculate", ctl.Checkout.Calculate)
		guest.POST("/checkout", ctl.Checkout.Create)
	}

	user := r.Group("/", middleware.RequireAuth(jwtSecret))
	{
		user.GET("/orders", ctl.Orders.ListMine)
		user.GET("/orders/:id", ctl.Orders.GetMine)
		user.GET("/loyalty", ctl.Loyalty.Balance)
		user.POST("/loyalty/redeem", ctl.Loyalty.Redeem)
	}

	staff := r.Group("/admin", middleware.RequireAuth(jwtSecret), middleware.StaffOnly())
	{
		staff.GET("/orders", ctl.Orders.ListAll)
		staff.GET("/orders/:id", ctl.Orders.Get)
		staff.PATCH("/orders/:id/status", ctl.Orders.UpdateStatus)
		staff.POST("/orders/:id/cancel", ctl.Orders.Cancel)
		staff.POST("/orders/:id/refund", ctl.Orders.Refund)
	}
}
