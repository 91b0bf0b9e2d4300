package router

import (
	"myFashionHub/internal/middleware"
	"myFashionHub/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.ListProducts)
	products.GET("/:id", handler.GetProduct)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	categories := api.Group("/categories")

	categories.GET("", handler.ListCategories)
	categories.GET("/:id", handler.GetCategory)
	categories.GET("/:id/products", handler.GetCategoryProducts)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	products := api.Group("/products")

	products.GET("/:id/recommendations", handler.GetRecommendations, middleware.OptionalAuth())
	products.POST("/:id/view", handler.TrackView, middleware.AuthMiddleware())
}

func SetupBagRoutes(api *echo.Group, handler *rest.BagHandler) {
	bag := api.Group("/bag", middleware.AuthMiddleware())

	bag.POST("", handler.AddToBag)
	bag.GET("", handler.GetBag)
	bag.PUT("/:id", handler.UpdateItem)
	bag.DELETE("/:id", handler.RemoveItem)
}

func SetupWishlistRoutes(api *echo.Group, handler *rest.WishlistHandler) {
	wishlist := api.Group("/wishlist", middleware.AuthMiddleware())

	wishlist.POST("/toggle", handler.Toggle)
	wishlist.GET("", handler.GetWishlist)
	wishlist.GET("/check/:productId", handler.Check)
	wishlist.DELETE("/:productId", handler.RemoveItem)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler) {
	orders := api.Group("/orders", middleware.AuthMiddleware())

	orders.POST("", handler.PlaceOrder)
	orders.GET("", handler.GetUserOrders)
	orders.GET("/:id", handler.GetOrder)
	orders.PUT("/:id/status", handler.UpdateStatus, middleware.AdminOnly())
}

func SetupNotificationRoutes(api *echo.Group, handler *rest.NotificationHandler) {
	notifications := api.Group("/notifications", middleware.AuthMiddleware())

	notifications.POST("/register", handler.RegisterToken)
	notifications.DELETE("/unregister", handler.UnregisterToken)
	notifications.PUT("/preferences", handler.UpdatePreferences)
	notifications.GET("/tokens", handler.GetUserTokens)
	notifications.POST("/cart-reminder", handler.RemindCart)

	notifications.POST("/offers", handler.SendOffer, middleware.AdminOnly())
	notifications.POST("/cart-reminders/run", handler.RunCartReminders, middleware.AdminOnly())
}

func SetupTransactionRoutes(api *echo.Group, handler *rest.TransactionHandler) {
	transactions := api.Group("/transactions", middleware.AuthMiddleware())

	transactions.GET("", handler.ListTransactions)
	transactions.GET("/:id", handler.GetTransaction)
	transactions.POST("", handler.CreateTransaction)
	transactions.PUT("/:id/status", handler.UpdateStatus)
}

func SetupPaymentMethodRoutes(api *echo.Group, handler *rest.PaymentMethodHandler) {
	methods := api.Group("/payment-methods", middleware.AuthMiddleware())

	methods.POST("", handler.AddPaymentMethod)
	methods.GET("", handler.ListPaymentMethods)
	methods.PUT("/:id/default", handler.SetDefault)
	methods.DELETE("/:id", handler.RemovePaymentMethod)
}
