package routes

import (
	"careercraft_backend/internal/handlers"
	"careercraft_backend/internal/middleware"
	"careercraft_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP route. Auth endpoints and the billing
// webhook are public; everything else requires a bearer token, and the
// admin group additionally requires the admin role.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	jwtSecret string,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.BillingHandler.RegisterRoutes(api)
	}

	protected := ginRouter.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(jwtSecret))
	{
		appHandlers.UserHandler.RegisterRoutes(protected)
		appHandlers.CreditHandler.RegisterRoutes(protected)
		appHandlers.ResumeHandler.RegisterRoutes(protected)
		appHandlers.DocumentHandler.RegisterRoutes(protected)
		appHandlers.InterviewHandler.RegisterRoutes(protected)
		appHandlers.AnalysisHandler.RegisterRoutes(protected)

		admin := protected.Group("")
		admin.Use(middleware.RoleMiddleware(models.UserRoleAdmin))
		{
			appHandlers.AdminHandler.RegisterRoutes(admin)
		}
	}
}
