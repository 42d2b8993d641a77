package router

import (
	"studio-api/core/middleware"
	"studio-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

// Setup registers auth routes.
func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public/auth")
	publicRoutes.POST("/register", r.AuthController.Register)
	publicRoutes.POST("/login", r.AuthController.Login)

	privateRoutes := v1.Group("/private/auth", mw.AuthMiddleware())
	privateRoutes.GET("/me", r.AuthController.GetMe)
	privateRoutes.PUT("/timezone", r.AuthController.UpdateTimezone)
}
