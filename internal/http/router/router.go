package router

import (
	"github.com/gin-gonic/gin"

	"github.com/citywatch/complaints-backend/internal/config"
	"github.com/citywatch/complaints-backend/internal/http/handlers"
	"github.com/citywatch/complaints-backend/internal/http/middleware"
	"github.com/citywatch/complaints-backend/internal/service"
)

// SetupRouter собирает таблицу маршрутов. Порядок middleware на
// защищённых маршрутах фиксирован: сначала разрешение сессии, затем
// проверка роли.
func SetupRouter(
	cfg *config.Config,
	pageHandler *handlers.PageHandler,
	authHandler *handlers.AuthHandler,
	complaintHandler *handlers.ComplaintHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
	sessions *service.SessionManager,
	users middleware.UserResolver,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	if cfg.RateLimitEnabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	}

	r.GET("/health", healthHandler.Health)

	// Публичные маршруты
	r.GET("/", pageHandler.Root)
	r.GET("/signup", pageHandler.Signup)
	r.POST("/signup", authHandler.Signup)
	r.GET("/login", pageHandler.Login)
	r.POST("/login", authHandler.Login)

	// Маршруты под сессией
	authed := r.Group("/")
	authed.Use(middleware.RequireSession(sessions, users))
	{
		authed.GET("/home", pageHandler.Home)
		authed.GET("/logout", authHandler.Logout)
		authed.GET("/my-complaints/", complaintHandler.ListMine)
		authed.POST("/report", complaintHandler.Submit)
	}

	// Административные маршруты
	admin := r.Group("/")
	admin.Use(middleware.RequireSession(sessions, users), middleware.RequireAdmin())
	{
		admin.GET("/users", userHandler.List)
		admin.GET("/complaints", complaintHandler.ListAll)
		admin.GET("/report-approval", complaintHandler.ListAll)
		admin.PATCH("/approve/:id", complaintHandler.Approve)
	}

	return r
}
