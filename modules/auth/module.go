package auth

import (
	"studio-api/core/database"
	"studio-api/core/middleware"
	"studio-api/modules/auth/controller"
	"studio-api/modules/auth/repository"
	"studio-api/modules/auth/router"
	"studio-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes. The returned
// service doubles as the host directory consumed by availability.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) service.AuthService {
	repo := repository.NewUserRepository(db)
	svc := service.NewAuthService(repo)
	ctrl := controller.NewAuthController(svc)

	router.NewAuthRouter(ctrl).Setup(e, mw)
	return svc
}
