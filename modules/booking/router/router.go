package router

import (
	"studio-api/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	BookingController *controller.BookingController
}

func NewBookingRouter(bookingController *controller.BookingController) *BookingRouter {
	return &BookingRouter{
		BookingController: bookingController,
	}
}

// Setup registers the public booking route. No auth middleware: guests
// book anonymously, the slot id alone identifies the target.
func (r *BookingRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/public/booking/schedule", r.BookingController.Schedule)
}
