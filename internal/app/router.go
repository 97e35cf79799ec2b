// internal/app/router.go
package app

import (
	adminHandler "ead-service/internal/handlers/admin"
	authHandler "ead-service/internal/handlers/auth"
	certHandler "ead-service/internal/handlers/certificate"
	courseHandler "ead-service/internal/handlers/course"
	guardHandler "ead-service/internal/handlers/guard"
	inventoryHandler "ead-service/internal/handlers/inventory"
	playerHandler "ead-service/internal/handlers/player"
	profileHandler "ead-service/internal/handlers/profile"
	"ead-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	GuardHandler     *guardHandler.GuardHandler
	AuthHandler      *authHandler.AuthHandler
	ProfileHandler   *profileHandler.ProfileHandler
	CourseHandler    *courseHandler.CourseHandler
	PlayerHandler    *playerHandler.PlayerHandler
	StreamHandler    *playerHandler.StreamHandler
	CertHandler      *certHandler.CertificateHandler
	AdminHandler     *adminHandler.AdminHandler
	InventoryHandler *inventoryHandler.InventoryHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Public ====================
	api.GET("/validate/:code", h.CertHandler.Validate)
	api.POST("/auth/bootstrap", h.AuthHandler.Bootstrap)

	// Route resolution works for anonymous and identified callers alike.
	api.GET("/resolve", h.AuthMiddleware.OptionalAuth(), h.GuardHandler.Resolve)

	// ==================== WebSocket ====================
	r.GET("/ws/player", h.AuthMiddleware.Auth(), h.StreamHandler.Stream)

	// ==================== Profile ====================
	profile := api.Group("/profile")
	profile.Use(h.AuthMiddleware.Auth())
	{
		profile.POST("/register", h.ProfileHandler.Register)
		profile.GET("/me", h.ProfileHandler.Me)
		profile.POST("/sessions/start", h.ProfileHandler.StartSession)
		profile.POST("/sessions/end", h.ProfileHandler.EndSession)
		profile.GET("/sessions", h.ProfileHandler.Sessions)
	}

	// ==================== Courses (approved students) ====================
	courses := api.Group("/courses")
	courses.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireApproved())
	{
		courses.GET("", h.CourseHandler.ListCourses)
		courses.GET("/:id", h.CourseHandler.GetCourse)
		courses.GET("/:id/progress", h.CourseHandler.GetCourseProgress)
	}

	// ==================== Player ====================
	player := api.Group("/player")
	player.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireApproved())
	{
		player.POST("/:courseId/:lessonId/play", h.PlayerHandler.Play)
		player.POST("/:courseId/:lessonId/pause", h.PlayerHandler.Pause)
		player.GET("/:courseId/:lessonId/status", h.PlayerHandler.Status)
	}

	// ==================== Certificates ====================
	certs := api.Group("/certificates")
	certs.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireApproved())
	{
		certs.GET("/:courseId", h.CertHandler.ForCourse)
	}

	// ==================== Inventory (H2E) ====================
	inventory := api.Group("/h2e")
	inventory.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireApproved())
	{
		inventory.GET("/products", h.InventoryHandler.ListProducts)
		inventory.POST("/products", h.InventoryHandler.AddProduct)
		inventory.DELETE("/products/:id", h.InventoryHandler.DeleteProduct)
		inventory.POST("/withdrawals", h.InventoryHandler.Withdraw)
		inventory.GET("/withdrawals", h.InventoryHandler.History)
	}

	// ==================== Admin ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/approvals", h.AdminHandler.ListApprovals)
		admin.PUT("/approvals/:principal", h.AdminHandler.SetApproval)
		admin.PUT("/roles/:principal", h.AdminHandler.AssignRole)

		admin.POST("/courses", h.AdminHandler.CreateCourse)
		admin.DELETE("/courses/:id", h.AdminHandler.DeleteCourse)
		admin.POST("/courses/:id/modules", h.AdminHandler.AddModule)
		admin.DELETE("/courses/:id/modules/:moduleId", h.AdminHandler.DeleteModule)
		admin.POST("/courses/:id/modules/:moduleId/lessons", h.AdminHandler.AddLesson)
		admin.DELETE("/courses/:id/modules/:moduleId/lessons/:lessonId", h.AdminHandler.DeleteLesson)

		admin.DELETE("/certificates/:code", h.AdminHandler.RevokeCertificate)
	}
}
