package availability

import (
	"studio-api/core/cache"
	"studio-api/core/database"
	"studio-api/core/middleware"
	"studio-api/modules/availability/controller"
	"studio-api/modules/availability/repository"
	"studio-api/modules/availability/router"
	"studio-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes.
// It returns the repository so the booking module can share it.
func Init(e *echo.Echo, db database.IDatabase, c *cache.Cache, hosts service.HostDirectory, mw *middleware.Middleware) repository.AvailabilityRepository {
	repo := repository.NewAvailabilityRepository(db)
	gen := service.NewSlotGenerator()
	svc := service.NewAvailabilityService(repo, gen, hosts)
	query := service.NewAvailabilityQueryService(repo, c)
	ctrl := controller.NewAvailabilityController(svc, query)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
	return repo
}
