package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davronbek/resto-app/controllers"
	"github.com/davronbek/resto-app/middlewares"
	"github.com/davronbek/resto-app/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limit global per IP
	globalLimiter := middlewares.NewRateLimiter(100, 60)
	r.Use(globalLimiter.RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	foodCtrl := controllers.NewFoodController(db)
	orderCtrl := controllers.NewOrderController(db)
	shiftCtrl := controllers.NewShiftController(db)
	kitchenCtrl := controllers.NewKitchenController(db)
	paymentCtrl := controllers.NewPaymentController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.POST("/tables", middlewares.RequireRoles(), tableCtrl.CreateTable)
	auth.DELETE("/tables/:table_id", middlewares.RequireRoles(), tableCtrl.DeleteTable)

	// CATEGORIES
	auth.GET("/categories", categoryCtrl.GetAllCategories)
	auth.POST("/categories", middlewares.RequireRoles(), categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:cat_id", middlewares.RequireRoles(), categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", middlewares.RequireRoles(), categoryCtrl.DeleteCategory)

	// FOODS
	auth.GET("/foods", foodCtrl.GetAllFoods)
	auth.GET("/foods/by-category", foodCtrl.GetFoodsByCategory)
	auth.POST("/foods", middlewares.RequireRoles(), foodCtrl.CreateFood)
	auth.PATCH("/foods/:food_id", middlewares.RequireRoles(), foodCtrl.UpdateFood)
	auth.PATCH("/foods/:food_id/stop-list", middlewares.RequireRoles(models.RoleWaiter, models.RoleCook), foodCtrl.SetStopList)
	auth.DELETE("/foods/:food_id", middlewares.RequireRoles(), foodCtrl.DeleteFood)

	// ORDERS
	auth.GET("/orders", middlewares.RequireRoles(models.RoleWaiter, models.RoleCashier), orderCtrl.GetAllOrders)
	auth.POST("/orders", middlewares.RequireRoles(models.RoleWaiter), orderCtrl.CreateOrder)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.POST("/orders/:order_id/approve", middlewares.RequireRoles(models.RoleWaiter), orderCtrl.ApproveOrder)
	auth.POST("/orders/:order_id/items", middlewares.RequireRoles(models.RoleWaiter), orderCtrl.AddItems)
	auth.PATCH("/orders/:order_id/items/:item_id", middlewares.RequireRoles(models.RoleWaiter), orderCtrl.UpdateItemQuantity)
	auth.DELETE("/orders/:order_id/items/:item_id", middlewares.RequireRoles(models.RoleWaiter), orderCtrl.RemoveItem)
	auth.POST("/orders/:order_id/items/:item_id/cancel", middlewares.RequireRoles(models.RoleWaiter, models.RoleCook), orderCtrl.CancelItem)
	auth.POST("/orders/:order_id/items/:item_id/ready", middlewares.RequireRoles(models.RoleCook), orderCtrl.MarkItemReady)
	auth.POST("/orders/:order_id/items/:item_id/revert-ready", middlewares.RequireRoles(models.RoleCook), orderCtrl.RevertItemReady)
	auth.POST("/orders/:order_id/items/:item_id/serve", middlewares.RequireRoles(models.RoleWaiter), orderCtrl.MarkItemServed)
	auth.DELETE("/orders/:order_id", middlewares.RequireRoles(), orderCtrl.DeleteOrder)

	// SHIFTS
	auth.GET("/shifts", middlewares.RequireRoles(models.RoleCashier), shiftCtrl.GetAllShifts)
	auth.GET("/shifts/active", shiftCtrl.GetActiveShift)
	auth.GET("/shifts/:shift_id", middlewares.RequireRoles(models.RoleCashier), shiftCtrl.GetShiftByID)
	auth.POST("/shifts/open", middlewares.RequireRoles(models.RoleCashier), shiftCtrl.OpenShift)
	auth.POST("/shifts/close", middlewares.RequireRoles(models.RoleCashier), shiftCtrl.CloseShift)

	// PAYMENTS
	auth.POST("/orders/:order_id/pay", middlewares.RequireRoles(models.RoleCashier), paymentCtrl.ProcessPayment)
	auth.POST("/orders/:order_id/pay-partial", middlewares.RequireRoles(models.RoleCashier), paymentCtrl.ProcessPartialPayment)
	auth.GET("/orders/:order_id/payment-sessions", middlewares.RequireRoles(models.RoleCashier), paymentCtrl.GetPaymentSessions)

	// KITCHEN
	auth.GET("/kitchen/display", middlewares.RequireRoles(models.RoleCook, models.RoleWaiter), kitchenCtrl.GetKitchenDisplay)

	// WebSocket endpoint (token lewat query string)
	auth.GET("/ws", kitchenCtrl.WSHandler)

	return r
}
