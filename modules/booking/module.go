package booking

import (
	"studio-api/core/cache"
	"studio-api/core/database"
	availrepo "studio-api/modules/availability/repository"
	"studio-api/modules/booking/controller"
	"studio-api/modules/booking/repository"
	"studio-api/modules/booking/router"
	"studio-api/modules/booking/service"
	meetingservice "studio-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// InitCoordinator builds the booking coordinator shared with the
// meeting module. Split from route registration because the meeting
// service both depends on the coordinator and serves the route.
func InitCoordinator(db database.IDatabase, availRepo availrepo.AvailabilityRepository, c *cache.Cache) service.BookingCoordinator {
	repo := repository.NewBookingRepository(db)
	return service.NewBookingCoordinator(repo, availRepo, c)
}

// InitRoutes registers the public scheduling endpoint.
func InitRoutes(e *echo.Echo, meetingSvc meetingservice.MeetingService) {
	ctrl := controller.NewBookingController(meetingSvc)
	router.NewBookingRouter(ctrl).Setup(e)
}
