package controller

import (
	"studio-api/core/controller"
	"studio-api/core/errors"
	"studio-api/core/middleware"
	"studio-api/modules/meeting/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type MeetingController struct {
	controller.BaseController
	Service service.MeetingService
}

func NewMeetingController(svc service.MeetingService) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		Service:        svc,
	}
}

// GetMyMeetings lists the authenticated host's meetings.
// GET /api/v1/private/meetings
func (ctl *MeetingController) GetMyMeetings(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	meetings, err := ctl.Service.GetMyMeetings(c.Request().Context(), token.UserID)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, meetings, "meetings")
}

// GetMeeting fetches one meeting owned by the host.
// GET /api/v1/private/meetings/:id
func (ctl *MeetingController) GetMeeting(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctl.BadRequest(errors.ErrInvalidInput, "invalid meeting id")
	}

	meeting, err := ctl.Service.GetMeeting(c.Request().Context(), token.UserID, meetingID)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, meeting, "meeting")
}
