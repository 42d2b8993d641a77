package router

import (
	"studio-api/core/middleware"
	"studio-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

func NewAvailabilityRouter(availabilityController *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		AvailabilityController: availabilityController,
	}
}

// Setup registers availability routes.
func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public read-only availability (viewer side)
	publicRoutes := v1.Group("/public/availability")
	publicRoutes.GET("/days", r.AvailabilityController.ListDays)
	publicRoutes.GET("/slots", r.AvailabilityController.ListSlots)

	// Host-side day/slot management
	privateRoutes := v1.Group("/private/availability", mw.AuthMiddleware())
	privateRoutes.POST("/days", r.AvailabilityController.CreateDay)
	privateRoutes.POST("/days/batch", r.AvailabilityController.CreateDaysBatch)
	privateRoutes.PUT("/days/:id", r.AvailabilityController.RegenerateDay)
	privateRoutes.DELETE("/days/:id", r.AvailabilityController.DeleteDay)
	privateRoutes.POST("/days/:id/slots", r.AvailabilityController.AddCustomSlot)
	privateRoutes.DELETE("/slots/:id", r.AvailabilityController.DeleteSlot)
}
