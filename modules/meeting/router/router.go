package router

import (
	"studio-api/core/middleware"
	"studio-api/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{
		MeetingController: meetingController,
	}
}

// Setup registers meeting routes.
func (r *MeetingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	meetingRoutes := v1.Group("/private/meetings", mw.AuthMiddleware())
	meetingRoutes.GET("", r.MeetingController.GetMyMeetings)
	meetingRoutes.GET("/:id", r.MeetingController.GetMeeting)
}
