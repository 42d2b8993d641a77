package meeting

import (
	"studio-api/core/database"
	"studio-api/core/middleware"
	availrepo "studio-api/modules/availability/repository"
	bookingservice "studio-api/modules/booking/service"
	"studio-api/modules/meeting/controller"
	"studio-api/modules/meeting/repository"
	"studio-api/modules/meeting/router"
	"studio-api/modules/meeting/service"
	notifservice "studio-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting module and registers routes. The
// returned service is consumed by the booking module's public
// scheduling endpoint.
func Init(
	e *echo.Echo,
	db database.IDatabase,
	availRepo availrepo.AvailabilityRepository,
	coordinator bookingservice.BookingCoordinator,
	notifier *notifservice.NotificationService,
	mw *middleware.Middleware,
) service.MeetingService {
	repo := repository.NewMeetingRepository(db)
	svc := service.NewMeetingService(repo, availRepo, coordinator, notifier)
	ctrl := controller.NewMeetingController(svc)
	rtr := router.NewMeetingRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
