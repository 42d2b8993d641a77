package controller

import (
	"strconv"
	"time"

	"studio-api/core/controller"
	"studio-api/core/errors"
	"studio-api/core/middleware"
	"studio-api/modules/availability/dto"
	"studio-api/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	controller.BaseController
	Service      service.AvailabilityService
	QueryService service.AvailabilityQueryService
}

func NewAvailabilityController(svc service.AvailabilityService, query service.AvailabilityQueryService) *AvailabilityController {
	return &AvailabilityController{
		BaseController: controller.NewBaseController(),
		Service:        svc,
		QueryService:   query,
	}
}

// CreateDay opens one day for the authenticated host.
// POST /api/v1/private/availability/days
func (ctl *AvailabilityController) CreateDay(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	var req dto.CreateDayRequest
	if err := c.Bind(&req); err != nil {
		return ctl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	day, err := ctl.Service.CreateDay(c.Request().Context(), token.UserID, &req)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, day, "availability day created")
}

// CreateDaysBatch opens several days with one shared window.
// POST /api/v1/private/availability/days/batch
func (ctl *AvailabilityController) CreateDaysBatch(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	var req dto.CreateDaysBatchRequest
	if err := c.Bind(&req); err != nil {
		return ctl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	results, err := ctl.Service.CreateDays(c.Request().Context(), token.UserID, &req)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, results, "batch day creation finished")
}

// RegenerateDay replaces a day's slots with a new window.
// PUT /api/v1/private/availability/days/:id
func (ctl *AvailabilityController) RegenerateDay(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	dayID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctl.BadRequest(errors.ErrInvalidInput, "invalid day id")
	}

	var req dto.RegenerateDayRequest
	if err := c.Bind(&req); err != nil {
		return ctl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	day, err := ctl.Service.RegenerateDay(c.Request().Context(), token.UserID, dayID, &req)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, day, "availability day regenerated")
}

// DeleteDay removes a day and its unbooked slots.
// DELETE /api/v1/private/availability/days/:id
func (ctl *AvailabilityController) DeleteDay(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	dayID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctl.BadRequest(errors.ErrInvalidInput, "invalid day id")
	}

	if err := ctl.Service.DeleteDay(c.Request().Context(), token.UserID, dayID); err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, nil, "availability day deleted")
}

// AddCustomSlot inserts one manual slot into a day.
// POST /api/v1/private/availability/days/:id/slots
func (ctl *AvailabilityController) AddCustomSlot(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	dayID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctl.BadRequest(errors.ErrInvalidInput, "invalid day id")
	}

	var req dto.AddCustomSlotRequest
	if err := c.Bind(&req); err != nil {
		return ctl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	slot, err := ctl.Service.AddCustomSlot(c.Request().Context(), token.UserID, dayID, &req)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, slot, "custom slot added")
}

// DeleteSlot removes an unbooked slot.
// DELETE /api/v1/private/availability/slots/:id
func (ctl *AvailabilityController) DeleteSlot(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctl.BadRequest(errors.ErrInvalidInput, "invalid slot id")
	}

	if err := ctl.Service.DeleteSlot(c.Request().Context(), token.UserID, slotID); err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, nil, "slot deleted")
}

// ListDays serves the public month view. Without a host_id the preview
// fixture is served instead of touching storage.
// GET /api/v1/public/availability/days?host_id=&year=&month=&tz=
func (ctl *AvailabilityController) ListDays(c echo.Context) error {
	hostParam := c.QueryParam("host_id")
	if hostParam == "" {
		slots, err := ctl.QueryService.PreviewSlots(c.QueryParam("tz"))
		if err != nil {
			return ctl.ErrorResponse(c, err)
		}
		return ctl.SuccessResponse(c, slots, "preview availability")
	}

	hostID, err := uuid.Parse(hostParam)
	if err != nil {
		return ctl.BadRequest(errors.ErrInvalidInput, "invalid host_id")
	}

	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 1970 {
		return ctl.BadRequest(errors.ErrInvalidInput, "invalid year")
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return ctl.BadRequest(errors.ErrInvalidInput, "invalid month")
	}

	days, err := ctl.QueryService.ListAvailableDays(c.Request().Context(), hostID, year, time.Month(month), c.QueryParam("tz"))
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, days, "available days")
}

// ListSlots serves the public day view; the no-host preview path
// mirrors ListDays.
// GET /api/v1/public/availability/slots?host_id=&date=&tz=
func (ctl *AvailabilityController) ListSlots(c echo.Context) error {
	hostParam := c.QueryParam("host_id")
	if hostParam == "" {
		slots, err := ctl.QueryService.PreviewSlots(c.QueryParam("tz"))
		if err != nil {
			return ctl.ErrorResponse(c, err)
		}
		return ctl.SuccessResponse(c, slots, "preview availability")
	}

	hostID, err := uuid.Parse(hostParam)
	if err != nil {
		return ctl.BadRequest(errors.ErrInvalidInput, "invalid host_id")
	}

	slots, err := ctl.QueryService.ListSlotsForDay(c.Request().Context(), hostID, c.QueryParam("date"), c.QueryParam("tz"))
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, slots, "available slots")
}
