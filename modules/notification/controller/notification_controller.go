package controller

import (
	"studio-api/core/controller"
	"studio-api/core/errors"
	"studio-api/core/middleware"
	"studio-api/core/params"
	"studio-api/modules/notification/dto"
	"studio-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	controller.BaseController
	Service *service.NotificationService
}

func NewNotificationController(svc *service.NotificationService) *NotificationController {
	return &NotificationController{
		BaseController: controller.NewBaseController(),
		Service:        svc,
	}
}

// GET /api/v1/private/notifications
func (ctl *NotificationController) GetMyNotifications(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	queryParams := params.NewQueryParams(c)
	page, err := ctl.Service.GetMyNotifications(c.Request().Context(), token.UserID, *queryParams)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, page, "notifications retrieved")
}

// GET /api/v1/private/notifications/unread-count
func (ctl *NotificationController) CountUnread(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	count, err := ctl.Service.CountUnread(c.Request().Context(), token.UserID)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, map[string]int{"unread_count": count}, "unread count retrieved")
}

// PUT /api/v1/private/notifications/mark-read
func (ctl *NotificationController) MarkAsRead(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	var req dto.MarkAsReadRequest
	if err := c.Bind(&req); err != nil {
		return ctl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	if err := ctl.Service.MarkAsRead(c.Request().Context(), token.UserID, req.IDs); err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, nil, "notifications marked as read")
}

// PUT /api/v1/private/notifications/mark-all-read
func (ctl *NotificationController) MarkAllAsRead(c echo.Context) error {
	token, ok := middleware.GetTokenData(c)
	if !ok {
		return ctl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	if err := ctl.Service.MarkAllAsRead(c.Request().Context(), token.UserID); err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, nil, "all notifications marked as read")
}
