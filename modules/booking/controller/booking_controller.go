package controller

import (
	"studio-api/core/controller"
	"studio-api/core/errors"
	meetingdto "studio-api/modules/meeting/dto"
	meetingservice "studio-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

type BookingController struct {
	controller.BaseController
	MeetingService meetingservice.MeetingService
}

func NewBookingController(meetingSvc meetingservice.MeetingService) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		MeetingService: meetingSvc,
	}
}

// Schedule is the public guest-side booking endpoint: a slot id plus
// contact details become a meeting pinned to that slot. A lost race
// returns 409 SLOT_ALREADY_BOOKED; the client should re-fetch
// availability and let the guest pick again.
// POST /api/v1/public/booking/schedule
func (ctl *BookingController) Schedule(c echo.Context) error {
	var req meetingdto.ScheduleMeetingRequest
	if err := c.Bind(&req); err != nil {
		return ctl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	meeting, err := ctl.MeetingService.ScheduleMeeting(c.Request().Context(), &req)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, meeting, "slot booked")
}
