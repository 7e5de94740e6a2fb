package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/repository"
	"backend/services"
	"backend/ws"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.Hub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	pageViewRepo := repository.NewPageViewRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	catalogSvc := services.NewCatalogService(catalogRepo)
	orderSvc := services.NewOrderService(db, orderRepo, catalogRepo, hub)
	statsSvc := services.NewStatsService(orderRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	menuCtrl := controllers.NewMenuController(catalogSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	adminCtrl := controllers.NewAdminController(orderSvc, statsSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	adminOnly := middlewares.AuthMiddleware(cfg.JWTSecret, "admin")
	track := middlewares.PageView(pageViewRepo)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", auth, authCtrl.Me)

	// Catalog (public)
	r.GET("/api/menu", menuCtrl.Menu)
	r.GET("/api/menu/update", menuCtrl.Menu)

	// Customer (any authenticated user)
	u := r.Group("/", auth, track)
	{
		u.POST("/order", orderCtrl.Create)
		u.GET("/order/:id", orderCtrl.Detail)
		u.GET("/api/user/orders/update", orderCtrl.ListForMe)
	}

	// Admin
	admin := r.Group("/", adminOnly, track)
	{
		admin.POST("/admin/order/:id/status", adminCtrl.UpdateStatus)
		admin.GET("/api/admin/orders/update", adminCtrl.ListOrders)
		admin.GET("/api/admin/stats", adminCtrl.GetStats)
	}

	// Real-time order events
	r.GET("/ws", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
